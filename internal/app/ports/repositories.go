package ports

import (
	"context"
	"time"

	"finpet/internal/domain/mission"
	"finpet/internal/domain/pet"
)

type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (pet.Wallet, error)
	SaveWithVersion(ctx context.Context, w pet.Wallet, expectedVersion int64) error
}

type StatusRepository interface {
	GetByUserID(ctx context.Context, userID string) (pet.PetStatus, error)
	SaveWithVersion(ctx context.Context, s pet.PetStatus, expectedVersion int64) error
}

type InventoryRepository interface {
	GetByUserID(ctx context.Context, userID string) (pet.Inventory, error)
	SaveWithVersion(ctx context.Context, inv pet.Inventory, expectedVersion int64) error
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (pet.PetProfile, error)
	SaveWithVersion(ctx context.Context, p pet.PetProfile, expectedVersion int64) error
}

type MissionRepository interface {
	GetByID(ctx context.Context, id int64) (mission.Mission, error)
	List(ctx context.Context) ([]mission.Mission, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, m mission.Mission) error
}

type ProgressRepository interface {
	GetByMissionAndUser(ctx context.Context, missionID int64, userID string) (mission.Progress, error)
	ListByUserID(ctx context.Context, userID string) ([]mission.Progress, error)
	SaveWithVersion(ctx context.Context, p mission.Progress, expectedVersion int64) error
}

type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (pet.ShopItem, error)
	ListEnabled(ctx context.Context) ([]pet.ShopItem, error)
	ListByIDs(ctx context.Context, ids []string) ([]pet.ShopItem, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, item pet.ShopItem) error
}

type FinanceSnapshotRecord struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Date        time.Time `json:"date"`
	Income      float64   `json:"income"`
	Expenses    float64   `json:"expenses"`
	Balance     float64   `json:"balance"`
	SavingsRate float64   `json:"savings_rate"`
}

type SnapshotRepository interface {
	Create(ctx context.Context, snap *FinanceSnapshotRecord) error
	LatestByUserID(ctx context.Context, userID string) (FinanceSnapshotRecord, error)
}

type UserCredentialRecord struct {
	UserID    string
	Nickname  string
	KeySalt   []byte
	KeyHash   []byte
	CreatedAt time.Time
}

type UserCredentialRepository interface {
	Create(ctx context.Context, cred UserCredentialRecord) error
	GetByNickname(ctx context.Context, nickname string) (UserCredentialRecord, error)
}
