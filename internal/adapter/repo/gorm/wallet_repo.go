package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type WalletRepo struct {
	db *gorm.DB
}

func NewWalletRepo(db *gorm.DB) WalletRepo {
	return WalletRepo{db: db}
}

func (r WalletRepo) GetByUserID(ctx context.Context, userID string) (pet.Wallet, error) {
	var row walletRow
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Wallet{}, ports.ErrNotFound
		}
		return pet.Wallet{}, err
	}
	return pet.Wallet{
		UserID:    row.UserID,
		Coins:     row.Coins,
		UpdatedAt: row.UpdatedAt,
		Version:   row.Version,
	}, nil
}

func (r WalletRepo) SaveWithVersion(ctx context.Context, w pet.Wallet, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	row := walletRow{
		UserID:    w.UserID,
		Coins:     w.Coins,
		UpdatedAt: w.UpdatedAt,
		Version:   w.Version,
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

	res := db.Model(&walletRow{}).
		Where("user_id = ? AND version = ?", w.UserID, expectedVersion).
		Updates(map[string]any{
			"coins":      row.Coins,
			"updated_at": row.UpdatedAt,
			"version":    row.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
