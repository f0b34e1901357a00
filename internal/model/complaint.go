package model

import "time"

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
)

var ComplaintStatuses = []string{
	string(ComplaintPending), string(ComplaintInProgress), string(ComplaintResolved), string(ComplaintClosed),
}

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved, ComplaintClosed:
		return true
	}
	return false
}

var ComplaintTypes = []string{"Healthcare", "Education", "Employment", "Infrastructure", "Social Welfare", "Other"}

type Complaint struct {
	ID                    uint64          `gorm:"primaryKey" json:"id"`
	ComplainantName       string          `gorm:"size:128;not null" json:"complainant_name"`
	Email                 string          `gorm:"size:128" json:"email"`
	Phone                 string          `gorm:"size:20;not null" json:"phone"`
	Address               string          `gorm:"type:text" json:"address"`
	Type                  string          `gorm:"size:32;not null;index" json:"type"`
	Subject               string          `gorm:"size:255;not null" json:"subject"`
	Description           string          `gorm:"type:text;not null" json:"description"`
	ReferenceID           string          `gorm:"uniqueIndex;size:32;not null" json:"reference_id"`
	SupportingDocumentURL string          `gorm:"size:512" json:"supporting_document_url"`
	Status                ComplaintStatus `gorm:"size:20;not null;index" json:"status"`
	AdminNotes            string          `gorm:"type:text" json:"admin_notes"`
	CreatedAt             time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
