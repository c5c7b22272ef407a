package gormrepo

import (
	"time"

	"gorm.io/datatypes"
)

type walletRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Coins     int       `gorm:"column:coins"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Version   int64     `gorm:"column:version"`
}

func (walletRow) TableName() string { return "wallets" }

type petStatusRow struct {
	UserID        string     `gorm:"column:user_id;primaryKey"`
	Mood          int        `gorm:"column:mood"`
	Satiety       int        `gorm:"column:satiety"`
	Health        int        `gorm:"column:health"`
	LastUpdatedAt time.Time  `gorm:"column:last_updated_at"`
	LastFedAt     *time.Time `gorm:"column:last_fed_at"`
	LastPlayedAt  *time.Time `gorm:"column:last_played_at"`
	LastHealedAt  *time.Time `gorm:"column:last_healed_at"`
	Version       int64      `gorm:"column:version"`
}

func (petStatusRow) TableName() string { return "pet_statuses" }

type inventoryRow struct {
	UserID      string                             `gorm:"column:user_id;primaryKey"`
	Background  string                             `gorm:"column:background"`
	Items       datatypes.JSONSlice[string]        `gorm:"column:items"`
	Consumables datatypes.JSONType[map[string]int] `gorm:"column:consumables"`
	Version     int64                              `gorm:"column:version"`
}

func (inventoryRow) TableName() string { return "inventories" }

type petProfileRow struct {
	UserID        string                      `gorm:"column:user_id;primaryKey"`
	SelectedPetID string                      `gorm:"column:selected_pet_id"`
	OwnedPetIDs   datatypes.JSONSlice[string] `gorm:"column:owned_pet_ids"`
	Version       int64                       `gorm:"column:version"`
}

func (petProfileRow) TableName() string { return "pet_profiles" }

type missionRow struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Code        string `gorm:"column:code"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`
	ProductTag  string `gorm:"column:product_tag"`
	Target      int    `gorm:"column:target"`
	Repeatable  bool   `gorm:"column:repeatable"`
	RewardCoins int    `gorm:"column:reward_coins"`
	RewardXP    int    `gorm:"column:reward_xp"`
	RewardPetID string `gorm:"column:reward_pet_id"`
}

func (missionRow) TableName() string { return "missions" }

type missionProgressRow struct {
	MissionID     int64     `gorm:"column:mission_id;primaryKey"`
	UserID        string    `gorm:"column:user_id;primaryKey"`
	Status        string    `gorm:"column:status"`
	Counter       int       `gorm:"column:counter"`
	RewardClaimed bool      `gorm:"column:reward_claimed"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	Version       int64     `gorm:"column:version"`
}

func (missionProgressRow) TableName() string { return "mission_progress" }

type shopItemRow struct {
	ID          string         `gorm:"column:id;primaryKey"`
	Title       string         `gorm:"column:title"`
	Description string         `gorm:"column:description"`
	Price       int            `gorm:"column:price"`
	Type        string         `gorm:"column:type"`
	Payload     datatypes.JSON `gorm:"column:payload"`
	Enabled     bool           `gorm:"column:enabled"`
}

func (shopItemRow) TableName() string { return "shop_items" }

type financeSnapshotRow struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;index"`
	Date        time.Time `gorm:"column:date"`
	Income      float64   `gorm:"column:income"`
	Expenses    float64   `gorm:"column:expenses"`
	Balance     float64   `gorm:"column:balance"`
	SavingsRate float64   `gorm:"column:savings_rate"`
}

func (financeSnapshotRow) TableName() string { return "finance_snapshots" }

type userCredentialRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Nickname  string    `gorm:"column:nickname;uniqueIndex"`
	KeySalt   []byte    `gorm:"column:key_salt"`
	KeyHash   []byte    `gorm:"column:key_hash"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userCredentialRow) TableName() string { return "user_credentials" }
