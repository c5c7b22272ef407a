package pet

import "time"

type Wallet struct {
	UserID    string    `json:"user_id"`
	Coins     int       `json:"coins"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

type PetStatus struct {
	UserID        string     `json:"user_id"`
	Mood          int        `json:"mood"`
	Satiety       int        `json:"satiety"`
	Health        int        `json:"health"`
	LastUpdatedAt time.Time  `json:"last_updated_at"`
	LastFedAt     *time.Time `json:"last_fed_at,omitempty"`
	LastPlayedAt  *time.Time `json:"last_played_at,omitempty"`
	LastHealedAt  *time.Time `json:"last_healed_at,omitempty"`
	Version       int64      `json:"version"`
}

type Inventory struct {
	UserID      string         `json:"user_id"`
	Background  string         `json:"background"`
	Items       []string       `json:"items"`
	Consumables map[string]int `json:"consumables"`
	Version     int64          `json:"version"`
}

type PetProfile struct {
	UserID        string   `json:"user_id"`
	SelectedPetID string   `json:"selected_pet_id"`
	OwnedPetIDs   []string `json:"owned_pet_ids"`
	Version       int64    `json:"version"`
}

// FinanceSignal is the slice of a user's latest financial snapshot the pet
// domain cares about when deriving the display mood.
type FinanceSignal struct {
	Income      float64
	Expenses    float64
	SavingsRate float64
}

func NewWallet(userID string, now time.Time) Wallet {
	return Wallet{UserID: userID, Coins: StartingCoins, UpdatedAt: now, Version: 1}
}

func NewStatus(userID string, now time.Time) PetStatus {
	return PetStatus{
		UserID:        userID,
		Mood:          DefaultMood,
		Satiety:       DefaultSatiety,
		Health:        DefaultHealth,
		LastUpdatedAt: now,
		Version:       1,
	}
}

func NewInventory(userID string) Inventory {
	return Inventory{
		UserID:      userID,
		Background:  DefaultBackground,
		Items:       []string{},
		Consumables: map[string]int{},
		Version:     1,
	}
}

func NewProfile(userID string) PetProfile {
	return PetProfile{
		UserID:        userID,
		SelectedPetID: DefaultPetID,
		OwnedPetIDs:   []string{DefaultPetID},
		Version:       1,
	}
}
