package stateview

import (
	"testing"

	"finpet/internal/app/ports"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/pet"
)

func sampleState() userstate.State {
	return userstate.State{
		Wallet: pet.Wallet{UserID: "u-1", Coins: 95},
		Status: pet.PetStatus{UserID: "u-1", Mood: 70, Satiety: 50, Health: 100},
		Inventory: pet.Inventory{
			UserID:      "u-1",
			Background:  "sky",
			Items:       []string{"ball"},
			Consumables: map[string]int{"food_small": 2, "medkit": 1},
		},
		Profile: pet.PetProfile{UserID: "u-1", SelectedPetID: "dog", OwnedPetIDs: []string{"dog", "cat"}},
	}
}

func TestDerive_NoSnapshotKeepsStoredMood(t *testing.T) {
	view := Derive(sampleState(), nil, nil)
	if view.Mood != 70 {
		t.Fatalf("mood = %d, want 70", view.Mood)
	}
	if view.Coins != 95 || view.Background != "sky" || view.SelectedPetID != "dog" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestDerive_SnapshotShiftsMoodOnly(t *testing.T) {
	st := sampleState()
	snap := &ports.FinanceSnapshotRecord{UserID: "u-1", Income: 1000, Expenses: 1300, SavingsRate: -0.3}

	view := Derive(st, snap, nil)
	if view.Mood != 60 {
		t.Fatalf("mood = %d, want 60 on overspend", view.Mood)
	}
	if st.Status.Mood != 70 {
		t.Fatalf("stored mood = %d, derive must not mutate state", st.Status.Mood)
	}
	if view.Satiety != 50 || view.Health != 100 {
		t.Fatalf("satiety/health shifted: %+v", view)
	}
}

func TestDerive_ConsumablesResolvedAndSorted(t *testing.T) {
	catalog := map[string]pet.ShopItem{
		"food_small": {ID: "food_small", Title: "Snack", Type: pet.ItemTypeFood},
	}

	view := Derive(sampleState(), nil, catalog)
	if len(view.Consumables) != 2 {
		t.Fatalf("consumables = %v, want 2 entries", view.Consumables)
	}
	first := view.Consumables[0]
	if first.ItemID != "food_small" || first.Title != "Snack" || first.Type != "food" || first.Count != 2 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := view.Consumables[1]
	if second.ItemID != "medkit" || second.Title != "medkit" || second.Type != "unknown" {
		t.Fatalf("unexpected placeholder entry: %+v", second)
	}
}

func TestDerive_NilSlicesBecomeEmpty(t *testing.T) {
	st := userstate.State{
		Status:  pet.PetStatus{Mood: 50, Satiety: 50, Health: 50},
		Profile: pet.PetProfile{SelectedPetID: "dog"},
	}

	view := Derive(st, nil, nil)
	if view.Items == nil || view.OwnedPetIDs == nil {
		t.Fatalf("expected empty slices, got items=%v owned=%v", view.Items, view.OwnedPetIDs)
	}
	if len(view.Consumables) != 0 {
		t.Fatalf("consumables = %v, want none", view.Consumables)
	}
}

func TestConsumableIDs_SortedStable(t *testing.T) {
	ids := ConsumableIDs(map[string]int{"b": 1, "a": 2, "c": 3})
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("ids = %v, want sorted", ids)
	}
}
