package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/mission"
)

type ProgressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return ProgressRepo{db: db}
}

func (r ProgressRepo) GetByMissionAndUser(ctx context.Context, missionID int64, userID string) (mission.Progress, error) {
	var row missionProgressRow
	err := getDBFromCtx(ctx, r.db).
		Where("mission_id = ? AND user_id = ?", missionID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mission.Progress{}, ports.ErrNotFound
		}
		return mission.Progress{}, err
	}
	return progressFromRow(row), nil
}

func (r ProgressRepo) ListByUserID(ctx context.Context, userID string) ([]mission.Progress, error) {
	var rows []missionProgressRow
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).Order("mission_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]mission.Progress, 0, len(rows))
	for _, row := range rows {
		out = append(out, progressFromRow(row))
	}
	return out, nil
}

func (r ProgressRepo) SaveWithVersion(ctx context.Context, p mission.Progress, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	row := missionProgressRow{
		MissionID:     p.MissionID,
		UserID:        p.UserID,
		Status:        string(p.Status),
		Counter:       p.Counter,
		RewardClaimed: p.RewardClaimed,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
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

	res := db.Model(&missionProgressRow{}).
		Where("mission_id = ? AND user_id = ? AND version = ?", p.MissionID, p.UserID, expectedVersion).
		Updates(map[string]any{
			"status":         row.Status,
			"counter":        row.Counter,
			"reward_claimed": row.RewardClaimed,
			"updated_at":     row.UpdatedAt,
			"version":        row.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func progressFromRow(row missionProgressRow) mission.Progress {
	return mission.Progress{
		MissionID:     row.MissionID,
		UserID:        row.UserID,
		Status:        mission.Status(row.Status),
		Counter:       row.Counter,
		RewardClaimed: row.RewardClaimed,
		UpdatedAt:     row.UpdatedAt,
		Version:       row.Version,
	}
}
