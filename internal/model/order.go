package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType enum constants
const (
	OrderTypeQuotation  = "quotation"
	OrderTypeTaxInvoice = "tax_invoice"
)

// GSTType enum constants. The value is derived from order type and buyer
// state, never set independently.
const (
	GSTNone     = "none"
	GSTIGST     = "igst"
	GSTCGSTSGST = "cgst_sgst"
)

// Order is a quotation or a tax invoice. Money fields are derived from the
// line items at creation time and persisted for audit and display; a tax
// invoice additionally consumes stock while a quotation never touches it.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo         string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_no"`
	OrderType       string          `gorm:"type:varchar(20);not null;index" json:"order_type"` // quotation, tax_invoice
	ClientName      string          `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientPhone     string          `gorm:"type:varchar(30)" json:"client_phone"`
	ClientAddress   string          `gorm:"type:text" json:"client_address"`
	ClientState     string          `gorm:"type:varchar(100);not null" json:"client_state"`
	ClientGST       string          `gorm:"column:client_gst;type:varchar(20)" json:"client_gst"`
	StateCode       string          `gorm:"type:varchar(5)" json:"state_code"`
	VehicleNo       string          `gorm:"type:varchar(30)" json:"vehicle_no"`
	EwayBill        string          `gorm:"type:varchar(30)" json:"eway_bill"`
	HSNCode         string          `gorm:"column:hsn_code;type:varchar(20)" json:"hsn_code"`
	IsReverseCharge bool            `gorm:"not null;default:false" json:"is_reverse_charge"`
	GSTType         string          `gorm:"column:gst_type;type:varchar(20);not null;default:'none'" json:"gst_type"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	IGSTRate        decimal.Decimal `gorm:"column:igst_rate;type:decimal(10,4);not null;default:0" json:"igst_rate"`
	IGSTAmount      decimal.Decimal `gorm:"column:igst_amount;type:decimal(18,4);not null;default:0" json:"igst_amount"`
	CGSTRate        decimal.Decimal `gorm:"column:cgst_rate;type:decimal(10,4);not null;default:0" json:"cgst_rate"`
	CGSTAmount      decimal.Decimal `gorm:"column:cgst_amount;type:decimal(18,4);not null;default:0" json:"cgst_amount"`
	SGSTRate        decimal.Decimal `gorm:"column:sgst_rate;type:decimal(10,4);not null;default:0" json:"sgst_rate"`
	SGSTAmount      decimal.Decimal `gorm:"column:sgst_amount;type:decimal(18,4);not null;default:0" json:"sgst_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	OrderDate       time.Time       `gorm:"type:date;not null;index" json:"order_date"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order. PricePerSqft is the effective rate
// snapshotted at creation, which may differ from the product's current
// catalog price when a per-box override was used. Items are created together
// with their order and deleted only with it.
type OrderItem struct {
	ItemID       uint            `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID;references:ProductID" json:"product_details,omitempty"`
	BoxesSold    int             `gorm:"type:int;not null" json:"boxes_sold"`
	PricePerSqft decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price_per_sqft"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (OrderItem) TableName() string {
	return "order_items"
}
