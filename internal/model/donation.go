package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationPending      DonationStatus = "pending"
	DonationVerified     DonationStatus = "verified"
	DonationAcknowledged DonationStatus = "acknowledged"
	DonationFailed       DonationStatus = "failed"
)

var DonationStatuses = []string{
	string(DonationPending), string(DonationVerified), string(DonationAcknowledged), string(DonationFailed),
}

// PaymentMethods accepted on public donation forms.
var PaymentMethods = []string{"bank_transfer", "upi", "cash", "cheque", "online_payment"}

type Donation struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	DonorName     string          `gorm:"size:128;not null" json:"donor_name"`
	DonorEmail    string          `gorm:"size:128" json:"donor_email"`
	PhoneNumber   string          `gorm:"size:20" json:"phone_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:32;not null" json:"payment_method"`
	TransactionID string          `gorm:"size:128;index" json:"transaction_id"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        DonationStatus  `gorm:"size:20;not null;index" json:"status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
