package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type StatusRepo struct {
	db *gorm.DB
}

func NewStatusRepo(db *gorm.DB) StatusRepo {
	return StatusRepo{db: db}
}

func (r StatusRepo) GetByUserID(ctx context.Context, userID string) (pet.PetStatus, error) {
	var row petStatusRow
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.PetStatus{}, ports.ErrNotFound
		}
		return pet.PetStatus{}, err
	}
	return pet.PetStatus{
		UserID:        row.UserID,
		Mood:          row.Mood,
		Satiety:       row.Satiety,
		Health:        row.Health,
		LastUpdatedAt: row.LastUpdatedAt,
		LastFedAt:     row.LastFedAt,
		LastPlayedAt:  row.LastPlayedAt,
		LastHealedAt:  row.LastHealedAt,
		Version:       row.Version,
	}, nil
}

func (r StatusRepo) SaveWithVersion(ctx context.Context, s pet.PetStatus, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	row := petStatusRow{
		UserID:        s.UserID,
		Mood:          s.Mood,
		Satiety:       s.Satiety,
		Health:        s.Health,
		LastUpdatedAt: s.LastUpdatedAt,
		LastFedAt:     s.LastFedAt,
		LastPlayedAt:  s.LastPlayedAt,
		LastHealedAt:  s.LastHealedAt,
		Version:       s.Version,
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

	res := db.Model(&petStatusRow{}).
		Where("user_id = ? AND version = ?", s.UserID, expectedVersion).
		Updates(map[string]any{
			"mood":            row.Mood,
			"satiety":         row.Satiety,
			"health":          row.Health,
			"last_updated_at": row.LastUpdatedAt,
			"last_fed_at":     row.LastFedAt,
			"last_played_at":  row.LastPlayedAt,
			"last_healed_at":  row.LastHealedAt,
			"version":         row.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
