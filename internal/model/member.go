package model

import "time"

type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberApproved MemberStatus = "approved"
	MemberRejected MemberStatus = "rejected"
)

// MemberStatuses in display order.
var MemberStatuses = []string{string(MemberPending), string(MemberApproved), string(MemberRejected)}

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberPending, MemberApproved, MemberRejected:
		return true
	}
	return false
}

type Member struct {
	ID              uint64       `gorm:"primaryKey" json:"id"`
	MembershipID    string       `gorm:"uniqueIndex;size:32;not null" json:"membership_id"`
	Name            string       `gorm:"size:128;not null" json:"name"`
	Phone           string       `gorm:"size:20;index" json:"phone"`
	Email           string       `gorm:"size:128" json:"email"`
	Aadhaar         string       `gorm:"size:12" json:"aadhaar"`
	State           string       `gorm:"size:64;index" json:"state"`
	District        string       `gorm:"size:64;index" json:"district"`
	Mandal          string       `gorm:"size:64" json:"mandal"`
	Status          MemberStatus `gorm:"size:20;not null;index" json:"status"`
	IsActive        bool         `gorm:"not null" json:"is_active"`
	IDCardGenerated bool         `gorm:"not null" json:"id_card_generated"`
	ApplicationID   *uint64      `gorm:"index" json:"application_id,omitempty"`
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`
}

// MemberApplication public membership request; approval turns it into a Member.
type MemberApplication struct {
	ID                uint64       `gorm:"primaryKey" json:"id"`
	FullName          string       `gorm:"size:128;not null" json:"full_name"`
	FatherHusbandName string       `gorm:"size:128" json:"father_husband_name"`
	Gender            string       `gorm:"size:10" json:"gender"`
	DateOfBirth       time.Time    `gorm:"type:date" json:"date_of_birth"`
	Caste             string       `gorm:"size:64" json:"caste"`
	AadhaarNumber     string       `gorm:"size:12;not null" json:"aadhaar_number"`
	PhoneNumber       string       `gorm:"size:20;not null" json:"phone_number"`
	EmailAddress      string       `gorm:"size:128" json:"email_address"`
	State             string       `gorm:"size:64;index" json:"state"`
	District          string       `gorm:"size:64;index" json:"district"`
	Mandal            string       `gorm:"size:64" json:"mandal"`
	Village           string       `gorm:"size:64" json:"village"`
	FullAddress       string       `gorm:"type:text" json:"full_address"`
	PhotoURL          string       `gorm:"size:512" json:"photo_url"`
	Status            MemberStatus `gorm:"size:20;not null;index" json:"status"`
	MemberID          *uint64      `json:"member_id,omitempty"`
	CreatedAt         time.Time    `gorm:"index" json:"created_at"`
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)
