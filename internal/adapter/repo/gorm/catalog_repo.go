package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

// CatalogRepo loads shop items with their effect payloads already parsed into
// the typed variants, so action and purchase code never touches raw JSON.
type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db}
}

func (r CatalogRepo) GetByID(ctx context.Context, id string) (pet.ShopItem, error) {
	var row shopItemRow
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.ShopItem{}, ports.ErrNotFound
		}
		return pet.ShopItem{}, err
	}
	return itemFromRow(row)
}

func (r CatalogRepo) ListEnabled(ctx context.Context) ([]pet.ShopItem, error) {
	var rows []shopItemRow
	if err := getDBFromCtx(ctx, r.db).Where("enabled = ?", true).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsFromRows(rows)
}

func (r CatalogRepo) ListByIDs(ctx context.Context, ids []string) ([]pet.ShopItem, error) {
	if len(ids) == 0 {
		return []pet.ShopItem{}, nil
	}
	var rows []shopItemRow
	if err := getDBFromCtx(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsFromRows(rows)
}

func (r CatalogRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := getDBFromCtx(ctx, r.db).Model(&shopItemRow{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r CatalogRepo) Create(ctx context.Context, item pet.ShopItem) error {
	payload, err := json.Marshal(item.Effect)
	if err != nil {
		return err
	}
	row := shopItemRow{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		Type:        string(item.Type),
		Payload:     datatypes.JSON(payload),
		Enabled:     item.Enabled,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func itemFromRow(row shopItemRow) (pet.ShopItem, error) {
	effect, err := pet.ParseEffect(pet.ItemType(row.Type), []byte(row.Payload))
	if err != nil {
		return pet.ShopItem{}, err
	}
	return pet.ShopItem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		Type:        pet.ItemType(row.Type),
		Effect:      effect,
		Enabled:     row.Enabled,
	}, nil
}

func itemsFromRows(rows []shopItemRow) ([]pet.ShopItem, error) {
	out := make([]pet.ShopItem, 0, len(rows))
	for _, row := range rows {
		item, err := itemFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
