package model

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Admin{}, &RevokedToken{},
		&Member{}, &MemberApplication{},
		&Donation{}, &Complaint{}, &GalleryItem{},
	}
}
