package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"finpet/internal/adapter/metrics/inmemory"
	"finpet/internal/adapter/repo/memory"
	"finpet/internal/app/petstate"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/pet"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	metrics *inmemory.Recorder
	uc      UseCase
}

func newFixture(now time.Time) fixture {
	store := memory.NewStore()
	repos := userstate.Repos{
		Wallets:     memory.NewWalletRepo(store),
		Statuses:    memory.NewStatusRepo(store),
		Inventories: memory.NewInventoryRepo(store),
		Profiles:    memory.NewProfileRepo(store),
	}
	catalog := memory.NewCatalogRepo(store)
	nowFn := func() time.Time { return now }
	metrics := inmemory.NewRecorder()
	return fixture{
		store:   store,
		metrics: metrics,
		uc: UseCase{
			TxManager: memory.NewTxManager(store),
			Repos:     repos,
			Catalog:   catalog,
			PetState: petstate.UseCase{
				TxManager: memory.NewTxManager(store),
				Repos:     repos,
				Snapshots: memory.NewSnapshotRepo(store),
				Catalog:   catalog,
				Now:       nowFn,
			},
			Metrics: metrics,
			Now:     nowFn,
		},
	}
}

func (f fixture) seedFedState(consumables map[string]int) {
	f.store.SeedWallet(pet.Wallet{UserID: "u-1", Coins: 100, UpdatedAt: baseTime, Version: 1})
	f.store.SeedStatus(pet.PetStatus{UserID: "u-1", Mood: 70, Satiety: 50, Health: 60, LastUpdatedAt: baseTime, Version: 1})
	inv := pet.NewInventory("u-1")
	for id, count := range consumables {
		inv.AddConsumable(id, count)
	}
	f.store.SeedInventory(inv)
	f.store.SeedProfile(pet.NewProfile("u-1"))
}

func TestExecute_FeedConsumesAndApplies(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(map[string]int{"food_small": 2})
	f.store.SeedItem(pet.ShopItem{
		ID: "food_small", Title: "Snack", Type: pet.ItemTypeFood, Price: 5, Enabled: true,
		Effect: pet.FoodEffect{Satiety: 15, Mood: 2},
	})

	view, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameFeed, ItemID: "food_small"})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if view.Satiety != 65 {
		t.Fatalf("satiety = %d, want 65", view.Satiety)
	}
	if view.Mood != 72 {
		t.Fatalf("mood = %d, want 72", view.Mood)
	}
	if len(view.Consumables) != 1 || view.Consumables[0].Count != 1 {
		t.Fatalf("consumables = %v, want food_small x1", view.Consumables)
	}

	status, err := f.uc.Repos.Statuses.GetByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("status lookup: %v", err)
	}
	if status.LastFedAt == nil || !status.LastFedAt.Equal(baseTime) {
		t.Fatalf("expected LastFedAt set to action time, got %v", status.LastFedAt)
	}

	snap := f.metrics.Snapshot()
	if snap.ActionSuccess != 1 || snap.ActionFailure != 0 || snap.ByAction[NameFeed] != 1 {
		t.Fatalf("metrics = %+v, want one feed success", snap)
	}
}

func TestExecute_FeedWithoutStock(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(nil)
	f.store.SeedItem(pet.ShopItem{
		ID: "food_small", Type: pet.ItemTypeFood, Enabled: true,
		Effect: pet.FoodEffect{Satiety: 15},
	})

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameFeed, ItemID: "food_small"})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	// The rejection leaves the status untouched.
	status, _ := f.uc.Repos.Statuses.GetByUserID(context.Background(), "u-1")
	if status.Satiety != 50 || status.LastFedAt != nil {
		t.Fatalf("expected status untouched, got satiety=%d fedAt=%v", status.Satiety, status.LastFedAt)
	}

	snap := f.metrics.Snapshot()
	if snap.ActionFailure != 1 {
		t.Fatalf("metrics = %+v, want one failure", snap)
	}
}

func TestExecute_FeedRequiresSelection(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(nil)

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameFeed})
	if !errors.Is(err, ErrMissingSelection) {
		t.Fatalf("expected ErrMissingSelection, got %v", err)
	}
}

func TestExecute_FeedRejectsWrongItemType(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(map[string]int{"medkit": 1})
	f.store.SeedItem(pet.ShopItem{
		ID: "medkit", Type: pet.ItemTypeMedicine, Enabled: true,
		Effect: pet.MedicineEffect{Health: 25},
	})

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameFeed, ItemID: "medkit"})
	if !errors.Is(err, ErrWrongItemType) {
		t.Fatalf("expected ErrWrongItemType, got %v", err)
	}
}

func TestExecute_FeedRejectsItemWithoutEffect(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(map[string]int{"food_dud": 1})
	f.store.SeedItem(pet.ShopItem{
		ID: "food_dud", Type: pet.ItemTypeFood, Enabled: true,
		Effect: pet.FoodEffect{},
	})

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameFeed, ItemID: "food_dud"})
	if !errors.Is(err, ErrNoEffect) {
		t.Fatalf("expected ErrNoEffect, got %v", err)
	}

	// The dud stays in the ledger.
	inv, _ := f.uc.Repos.Inventories.GetByUserID(context.Background(), "u-1")
	if inv.Consumables["food_dud"] != 1 {
		t.Fatalf("expected consumable untouched, got %v", inv.Consumables)
	}
}

func TestExecute_HealAppliesMedicine(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(map[string]int{"medkit": 1})
	f.store.SeedItem(pet.ShopItem{
		ID: "medkit", Type: pet.ItemTypeMedicine, Enabled: true,
		Effect: pet.MedicineEffect{Health: 25},
	})

	view, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NameHeal, ItemID: "medkit"})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if view.Health != 85 {
		t.Fatalf("health = %d, want 85", view.Health)
	}
	if len(view.Consumables) != 0 {
		t.Fatalf("expected medkit consumed, got %v", view.Consumables)
	}

	status, _ := f.uc.Repos.Statuses.GetByUserID(context.Background(), "u-1")
	if status.LastHealedAt == nil {
		t.Fatalf("expected LastHealedAt set")
	}
}

func TestExecute_PlayTradesSatietyForMood(t *testing.T) {
	f := newFixture(baseTime)
	f.seedFedState(nil)

	view, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NamePlay})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if view.Satiety != 44 {
		t.Fatalf("satiety = %d, want 44", view.Satiety)
	}
	if view.Mood != 82 {
		t.Fatalf("mood = %d, want 82", view.Mood)
	}

	status, _ := f.uc.Repos.Statuses.GetByUserID(context.Background(), "u-1")
	if status.LastPlayedAt == nil {
		t.Fatalf("expected LastPlayedAt set")
	}
}

func TestExecute_PlayRequiresSatiety(t *testing.T) {
	f := newFixture(baseTime)
	f.store.SeedStatus(pet.PetStatus{UserID: "u-1", Mood: 50, Satiety: 10, Health: 100, LastUpdatedAt: baseTime, Version: 1})

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NamePlay})
	if !errors.Is(err, ErrInsufficientSatiety) {
		t.Fatalf("expected ErrInsufficientSatiety, got %v", err)
	}
}

func TestExecute_SettlesTimeBeforeValidation(t *testing.T) {
	// Satiety 14 at rest drops below the play threshold after two decay
	// steps, so the hour-later play is rejected on the settled value.
	f := newFixture(baseTime.Add(time.Hour))
	f.store.SeedStatus(pet.PetStatus{UserID: "u-1", Mood: 50, Satiety: 14, Health: 100, LastUpdatedAt: baseTime, Version: 1})

	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: NamePlay})
	if !errors.Is(err, ErrInsufficientSatiety) {
		t.Fatalf("expected ErrInsufficientSatiety after decay, got %v", err)
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	f := newFixture(baseTime)
	_, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: "dance"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestExecute_RejectsEmptyFields(t *testing.T) {
	f := newFixture(baseTime)
	if _, err := f.uc.Execute(context.Background(), Request{UserID: "", Name: NamePlay}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := f.uc.Execute(context.Background(), Request{UserID: "u-1", Name: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
