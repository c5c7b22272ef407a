package gormrepo

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type InventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepo {
	return InventoryRepo{db: db}
}

func (r InventoryRepo) GetByUserID(ctx context.Context, userID string) (pet.Inventory, error) {
	var row inventoryRow
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Inventory{}, ports.ErrNotFound
		}
		return pet.Inventory{}, err
	}
	inv := pet.Inventory{
		UserID:      row.UserID,
		Background:  row.Background,
		Items:       []string(row.Items),
		Consumables: row.Consumables.Data(),
		Version:     row.Version,
	}
	if inv.Items == nil {
		inv.Items = []string{}
	}
	if inv.Consumables == nil {
		inv.Consumables = map[string]int{}
	}
	return inv, nil
}

func (r InventoryRepo) SaveWithVersion(ctx context.Context, inv pet.Inventory, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	items := inv.Items
	if items == nil {
		items = []string{}
	}
	consumables := inv.Consumables
	if consumables == nil {
		consumables = map[string]int{}
	}
	row := inventoryRow{
		UserID:      inv.UserID,
		Background:  inv.Background,
		Items:       datatypes.NewJSONSlice(items),
		Consumables: datatypes.NewJSONType(consumables),
		Version:     inv.Version,
	}
	if expectedVersion == 0 {
		if err := db.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&inventoryRow{}).
		Where("user_id = ? AND version = ?", inv.UserID, expectedVersion).
		Updates(map[string]any{
			"background":  row.Background,
			"items":       row.Items,
			"consumables": row.Consumables,
			"version":     row.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
