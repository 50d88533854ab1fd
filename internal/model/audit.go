package model

import "time"

const (
	ActionCreateProduct = "CREATE_PRODUCT"
	ActionUpdateProduct = "UPDATE_PRODUCT"
	ActionDeleteProduct = "DELETE_PRODUCT"
	ActionCreateOrder   = "CREATE_ORDER"
	ActionDeleteOrder   = "DELETE_ORDER"
	ActionTruckEntry    = "TRUCK_ENTRY"
	ActionCreateLedger  = "CREATE_LEDGER_ENTRY"
	ActionLedgerPayment = "LEDGER_PAYMENT"
	ActionDeleteLedger  = "DELETE_LEDGER_ENTRY"
)

// AuditLog tracks what changed and when for stock and money movements.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
