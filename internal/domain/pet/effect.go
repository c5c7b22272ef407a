package pet

import (
	"encoding/json"
	"errors"
)

type ItemType string

const (
	ItemTypeFood       ItemType = "food"
	ItemTypeMedicine   ItemType = "medicine"
	ItemTypeBackground ItemType = "bg"
	ItemTypeCosmetic   ItemType = "item"
	ItemTypePet        ItemType = "pet"
)

var (
	ErrUnknownItemType = errors.New("unknown item type")
	ErrMalformedEffect = errors.New("malformed effect payload")
)

// Effect is the parsed form of a shop item's payload. The shape is fixed per
// item type, so payloads are decoded once at catalog load instead of at every
// action.
type Effect interface{ isEffect() }

type FoodEffect struct {
	Satiety int `json:"satiety"`
	Mood    int `json:"mood"`
	Health  int `json:"health"`
}

type MedicineEffect struct {
	Satiety int `json:"satiety"`
	Mood    int `json:"mood"`
	Health  int `json:"health"`
}

type BackgroundEffect struct {
	ID string `json:"background"`
}

type CosmeticEffect struct {
	ID string `json:"item"`
}

type PetUnlockEffect struct {
	PetID string `json:"petId"`
}

func (FoodEffect) isEffect()       {}
func (MedicineEffect) isEffect()   {}
func (BackgroundEffect) isEffect() {}
func (CosmeticEffect) isEffect()   {}
func (PetUnlockEffect) isEffect()  {}

type ShopItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"`
	Type        ItemType `json:"type"`
	Effect      Effect   `json:"effect,omitempty"`
	Enabled     bool     `json:"enabled"`
}

// ParseEffect decodes a raw payload into the variant for the given item type.
// An empty payload yields the zero effect for stat items and an error for
// items whose payload carries the target id.
func ParseEffect(itemType ItemType, payload []byte) (Effect, error) {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	switch itemType {
	case ItemTypeFood:
		var e FoodEffect
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, ErrMalformedEffect
		}
		return e, nil
	case ItemTypeMedicine:
		var e MedicineEffect
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, ErrMalformedEffect
		}
		return e, nil
	case ItemTypeBackground:
		var e BackgroundEffect
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, ErrMalformedEffect
		}
		if e.ID == "" {
			return nil, ErrMalformedEffect
		}
		return e, nil
	case ItemTypeCosmetic:
		var e CosmeticEffect
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, ErrMalformedEffect
		}
		if e.ID == "" {
			return nil, ErrMalformedEffect
		}
		return e, nil
	case ItemTypePet:
		var e PetUnlockEffect
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, ErrMalformedEffect
		}
		if e.PetID == "" {
			return nil, ErrMalformedEffect
		}
		return e, nil
	default:
		return nil, ErrUnknownItemType
	}
}
