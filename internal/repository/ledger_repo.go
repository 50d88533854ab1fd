package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	AddPayment(ctx context.Context, payment *model.LedgerPayment) error
	FindByID(ctx context.Context, id uint) (*model.LedgerEntry, error)
	List(ctx context.Context, page, limit int, client string) ([]model.LedgerEntry, int64, error)
	Delete(ctx context.Context, id uint) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *ledgerRepository) AddPayment(ctx context.Context, payment *model.LedgerPayment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *ledgerRepository) FindByID(ctx context.Context, id uint) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := GetDB(ctx, r.db).Preload("Payments").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) List(ctx context.Context, page, limit int, client string) ([]model.LedgerEntry, int64, error) {
	var entries []model.LedgerEntry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.LedgerEntry{})
	if client != "" {
		db = db.Where("client_name LIKE ?", "%"+client+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Payments").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *ledgerRepository) Delete(ctx context.Context, id uint) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("ledger_entry_id = ?", id).Delete(&model.LedgerPayment{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.LedgerEntry{}).Error
}
