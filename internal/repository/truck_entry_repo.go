package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type TruckEntryRepository interface {
	Create(ctx context.Context, entry *model.TruckEntry) error
	List(ctx context.Context, page, limit int) ([]model.TruckEntry, int64, error)
}

type truckEntryRepository struct {
	db *gorm.DB
}

func NewTruckEntryRepository(db *gorm.DB) TruckEntryRepository {
	return &truckEntryRepository{db: db}
}

func (r *truckEntryRepository) Create(ctx context.Context, entry *model.TruckEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *truckEntryRepository) List(ctx context.Context, page, limit int) ([]model.TruckEntry, int64, error) {
	var entries []model.TruckEntry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.TruckEntry{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Items").
		Order("entry_date DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
