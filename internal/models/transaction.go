// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceType identifies which parser dialect produced a transaction.
type SourceType string

const (
	SourcePayPay SourceType = "paypay"
	SourceSMBC   SourceType = "smbc"
	SourceManual SourceType = "manual"
)

const (
	// DefaultCategory is assigned to transactions no rule has matched yet.
	// Category is never empty; absence of a category means this literal.
	DefaultCategory = "Uncategorized"

	// ManualEntrySource is the fixed source label of template imports.
	ManualEntrySource = "Manual Entry"

	// CardPaymentDescription is the fixed description of SMBC card rows.
	CardPaymentDescription = "Credit Card Payment"
)

// Transaction is the canonical transaction record. Amounts are signed
// integers in the smallest currency unit: positive = expense/outgoing,
// negative = income/refund.
type Transaction struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Date        time.Time  `json:"date" gorm:"type:date;not null;index"`
	Amount      int64      `json:"amount" gorm:"not null"`
	Merchant    string     `json:"merchant" gorm:"size:255"`
	Description string     `json:"description" gorm:"size:255"`
	Source      string     `json:"source" gorm:"size:255;not null"`
	SourceType  SourceType `json:"source_type" gorm:"size:16;not null"`
	RecordHash  string     `json:"record_hash" gorm:"size:64;uniqueIndex;not null"`
	Category    string     `json:"category" gorm:"size:255;not null"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName sets the table name for gorm.
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns the opaque id and enforces the category default.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	return nil
}

// CategoryRule maps a merchant keyword to a spending category. Rules are
// independent of transactions; a transaction's category is a snapshot of
// the best match at categorization time.
type CategoryRule struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Keyword   string    `json:"keyword" gorm:"size:255;not null"`
	Category  string    `json:"category" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for gorm.
func (CategoryRule) TableName() string {
	return "category_rules"
}

// BeforeCreate assigns the opaque id.
func (r *CategoryRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// UploadSummary reports the outcome of one file ingestion.
type UploadSummary struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}
