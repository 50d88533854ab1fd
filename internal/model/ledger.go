package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types accepted against a ledger entry.
const (
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank Transfer"
	PaymentCheque       = "Cheque"
)

// LedgerEntry tracks an amount owed by a client, settled over time by
// payments. An entry is cleared once the sum of its payments reaches the
// total.
type LedgerEntry struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientName  string          `gorm:"type:varchar(255);not null;index" json:"client_name"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Payments    []LedgerPayment `gorm:"foreignKey:LedgerEntryID" json:"payments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LedgerPayment is a single payment against a ledger entry.
type LedgerPayment struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	LedgerEntryID uint            `gorm:"not null;index" json:"ledger_entry_id"`
	PaymentType   string          `gorm:"type:varchar(30);not null" json:"payment_type"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

func (LedgerPayment) TableName() string {
	return "ledger_payments"
}
