package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Create(ctx context.Context, snap *ports.FinanceSnapshotRecord) error {
	row := financeSnapshotRow{
		UserID:      snap.UserID,
		Date:        snap.Date,
		Income:      snap.Income,
		Expenses:    snap.Expenses,
		Balance:     snap.Balance,
		SavingsRate: snap.SavingsRate,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		return err
	}
	snap.ID = row.ID
	return nil
}

func (r SnapshotRepo) LatestByUserID(ctx context.Context, userID string) (ports.FinanceSnapshotRecord, error) {
	var row financeSnapshotRow
	err := getDBFromCtx(ctx, r.db).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FinanceSnapshotRecord{}, ports.ErrNotFound
		}
		return ports.FinanceSnapshotRecord{}, err
	}
	return ports.FinanceSnapshotRecord{
		ID:          row.ID,
		UserID:      row.UserID,
		Date:        row.Date,
		Income:      row.Income,
		Expenses:    row.Expenses,
		Balance:     row.Balance,
		SavingsRate: row.SavingsRate,
	}, nil
}
