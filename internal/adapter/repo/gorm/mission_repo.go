package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/mission"
)

type MissionRepo struct {
	db *gorm.DB
}

func NewMissionRepo(db *gorm.DB) MissionRepo {
	return MissionRepo{db: db}
}

func (r MissionRepo) GetByID(ctx context.Context, id int64) (mission.Mission, error) {
	var row missionRow
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mission.Mission{}, ports.ErrNotFound
		}
		return mission.Mission{}, err
	}
	return missionFromRow(row), nil
}

func (r MissionRepo) List(ctx context.Context) ([]mission.Mission, error) {
	var rows []missionRow
	if err := getDBFromCtx(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]mission.Mission, 0, len(rows))
	for _, row := range rows {
		out = append(out, missionFromRow(row))
	}
	return out, nil
}

func (r MissionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := getDBFromCtx(ctx, r.db).Model(&missionRow{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r MissionRepo) Create(ctx context.Context, m mission.Mission) error {
	row := missionRow{
		ID:          m.ID,
		Code:        m.Code,
		Title:       m.Title,
		Description: m.Description,
		ProductTag:  m.ProductTag,
		Target:      m.Target,
		Repeatable:  m.Repeatable,
		RewardCoins: m.RewardCoins,
		RewardXP:    m.RewardXP,
		RewardPetID: m.RewardPetID,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func missionFromRow(row missionRow) mission.Mission {
	return mission.Mission{
		ID:          row.ID,
		Code:        row.Code,
		Title:       row.Title,
		Description: row.Description,
		ProductTag:  row.ProductTag,
		Target:      row.Target,
		Repeatable:  row.Repeatable,
		RewardCoins: row.RewardCoins,
		RewardXP:    row.RewardXP,
		RewardPetID: row.RewardPetID,
	}
}
