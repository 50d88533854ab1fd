package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ErrStockConflict is returned when a stock adjustment would take
// boxes_on_hand below zero. The conditional update refuses the write instead
// of letting two concurrent orders race past validation.
var ErrStockConflict = errors.New("stock adjustment would make boxes_on_hand negative")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error)
	AdjustStock(ctx context.Context, id uint, delta int) error
	ReferencedByTaxInvoice(ctx context.Context, id uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("product_id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
	if search != "" {
		db = db.Where("brand LIKE ? OR product_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("brand asc, product_name asc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// AdjustStock applies a signed delta to boxes_on_hand in a single guarded
// UPDATE. The WHERE clause both locates the row and rejects any change that
// would drive the counter negative, so concurrent decrements cannot race a
// read-then-write. Zero rows affected means either the product is gone or
// the stock was insufficient; callers distinguish by re-reading.
func (r *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	res := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("product_id = ? AND boxes_on_hand + ? >= 0", id, delta).
		UpdateColumn("boxes_on_hand", gorm.Expr("boxes_on_hand + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

// ReferencedByTaxInvoice reports whether any tax invoice line references the
// product. Quotation-only references do not count.
func (r *productRepository) ReferencedByTaxInvoice(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.order_type = ?", id, model.OrderTypeTaxInvoice).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
