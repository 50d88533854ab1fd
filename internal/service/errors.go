package service

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrLedgerNotFound  = errors.New("ledger entry not found")

	// ErrProductInUse blocks deletion of a product that a tax invoice still
	// references. Products referenced only by quotations may be deleted.
	ErrProductInUse = errors.New("product is referenced by a tax invoice and cannot be deleted")
)

// InsufficientStockError reports an order line asking for more boxes than
// the product has on hand. It names the product and the quantity actually
// available so the caller can show a usable message.
type InsufficientStockError struct {
	ProductID uint
	Brand     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d boxes, only %d available",
		e.ProductID, e.Brand, e.Requested, e.Available)
}
