package model

import "time"

// TruckEntry is a stock-in receipt: one truck arriving with boxes for one or
// more products. Quantities only ever add to inventory; the entry itself is
// the audit record for where the stock came from.
type TruckEntry struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckNumber string           `gorm:"type:varchar(30);not null" json:"truck_number"`
	EntryDate   time.Time        `gorm:"type:date;not null;index" json:"entry_date"`
	Items       []TruckEntryItem `gorm:"foreignKey:TruckEntryID" json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TruckEntryItem records the boxes received for a single product.
type TruckEntryItem struct {
	ID           uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckEntryID uint `gorm:"not null;index" json:"truck_entry_id"`
	ProductID    uint `gorm:"not null;index" json:"product_id"`
	Quantity     int  `gorm:"type:int;not null" json:"quantity"`
}

func (TruckEntry) TableName() string {
	return "inventory_in_entries"
}

func (TruckEntryItem) TableName() string {
	return "inventory_in_items"
}
