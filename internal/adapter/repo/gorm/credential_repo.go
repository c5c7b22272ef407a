package gormrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
)

type CredentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return CredentialRepo{db: db}
}

func (r CredentialRepo) Create(ctx context.Context, cred ports.UserCredentialRecord) error {
	row := userCredentialRow{
		UserID:    cred.UserID,
		Nickname:  cred.Nickname,
		KeySalt:   cred.KeySalt,
		KeyHash:   cred.KeyHash,
		CreatedAt: cred.CreatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

// isUniqueViolation matches the driver's unique-index error by message. GORM
// only translates to ErrDuplicatedKey with TranslateError enabled, which the
// default config does not set.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func (r CredentialRepo) GetByNickname(ctx context.Context, nickname string) (ports.UserCredentialRecord, error) {
	var row userCredentialRow
	if err := getDBFromCtx(ctx, r.db).Where("nickname = ?", nickname).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserCredentialRecord{}, ports.ErrNotFound
		}
		return ports.UserCredentialRecord{}, err
	}
	return ports.UserCredentialRecord{
		UserID:    row.UserID,
		Nickname:  row.Nickname,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		CreatedAt: row.CreatedAt,
	}, nil
}
