package model

import "time"

type Product struct {
	ID                     string `gorm:"primaryKey;size:36;not null"`
	Name                   string `gorm:"size:255;not null"`
	Description            string `gorm:"type:text;not null"`
	PriceInCents           int64  `gorm:"not null"`
	FilePath               string `gorm:"size:512;not null"` // private asset location
	ImagePath              string `gorm:"size:512;not null"` // public asset location
	IsAvailableForPurchase bool   `gorm:"index;not null;default:false"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type User struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	Email     string `gorm:"size:320;uniqueIndex;not null"`
	Orders    []Order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is written once per successful charge and never updated.
type Order struct {
	ID               string  `gorm:"primaryKey;size:36;not null"`
	UserID           string  `gorm:"size:36;index;not null"`
	ProductID        string  `gorm:"size:36;index;not null"`
	PricePaidInCents int64   `gorm:"not null"`
	PaymentEventID   *string `gorm:"size:255;uniqueIndex"` // stripe event that created the order, nil for manual entries
	User             User    `gorm:"constraint:OnDelete:CASCADE"`
	Product          Product `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt        time.Time
}

type DownloadVerification struct {
	ID        string    `gorm:"primaryKey;size:36;not null"` // opaque token handed to the buyer
	ProductID string    `gorm:"size:36;index;not null"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// WebhookEvent is the processed-event ledger for stripe deliveries.
type WebhookEvent struct {
	EventID                string `gorm:"primaryKey;size:255;not null"`
	EventType              string `gorm:"size:64;index"`
	OrderID                string `gorm:"size:36"`
	DownloadVerificationID string `gorm:"size:36"`
	BuyerEmail             string `gorm:"size:320"`
	ProcessedAt            time.Time
	NotifiedAt             *time.Time
	CreatedAt              time.Time
}
