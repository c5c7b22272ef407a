package gormrepo

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return ProfileRepo{db: db}
}

func (r ProfileRepo) GetByUserID(ctx context.Context, userID string) (pet.PetProfile, error) {
	var row petProfileRow
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.PetProfile{}, ports.ErrNotFound
		}
		return pet.PetProfile{}, err
	}
	profile := pet.PetProfile{
		UserID:        row.UserID,
		SelectedPetID: row.SelectedPetID,
		OwnedPetIDs:   []string(row.OwnedPetIDs),
		Version:       row.Version,
	}
	if profile.OwnedPetIDs == nil {
		profile.OwnedPetIDs = []string{}
	}
	return profile, nil
}

func (r ProfileRepo) SaveWithVersion(ctx context.Context, p pet.PetProfile, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	owned := p.OwnedPetIDs
	if owned == nil {
		owned = []string{}
	}
	row := petProfileRow{
		UserID:        p.UserID,
		SelectedPetID: p.SelectedPetID,
		OwnedPetIDs:   datatypes.NewJSONSlice(owned),
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

	res := db.Model(&petProfileRow{}).
		Where("user_id = ? AND version = ?", p.UserID, expectedVersion).
		Updates(map[string]any{
			"selected_pet_id": row.SelectedPetID,
			"owned_pet_ids":   row.OwnedPetIDs,
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
