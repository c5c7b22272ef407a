package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finpet/internal/app/ports"
	"finpet/internal/domain/mission"
	"finpet/internal/domain/pet"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

var (
	_ ports.WalletRepository         = WalletRepo{}
	_ ports.StatusRepository         = StatusRepo{}
	_ ports.InventoryRepository      = InventoryRepo{}
	_ ports.ProfileRepository        = ProfileRepo{}
	_ ports.MissionRepository        = MissionRepo{}
	_ ports.ProgressRepository       = ProgressRepo{}
	_ ports.CatalogRepository        = CatalogRepo{}
	_ ports.SnapshotRepository       = SnapshotRepo{}
	_ ports.UserCredentialRepository = CredentialRepo{}
	_ ports.TxManager                = TxManager{}
)

func TestWalletRepo_VersionCheck(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store)
	ctx := context.Background()

	if _, err := repo.GetByUserID(ctx, "u-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	w := pet.NewWallet("u-1", baseTime)
	if err := repo.SaveWithVersion(ctx, w, 0); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	// A second insert attempt for the same user is a conflict.
	if err := repo.SaveWithVersion(ctx, w, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on repeated insert, got %v", err)
	}

	w.Coins = 120
	w.Version = 2
	if err := repo.SaveWithVersion(ctx, w, 1); err != nil {
		t.Fatalf("versioned update: %v", err)
	}

	// A writer holding the stale version loses.
	stale := w
	stale.Version = 2
	if err := repo.SaveWithVersion(ctx, stale, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on stale version, got %v", err)
	}

	got, err := repo.GetByUserID(ctx, "u-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Coins != 120 || got.Version != 2 {
		t.Fatalf("wallet = %+v, want coins 120 at v2", got)
	}
}

func TestInventoryRepo_ClonesOnReadAndWrite(t *testing.T) {
	store := NewStore()
	repo := NewInventoryRepo(store)
	ctx := context.Background()

	inv := pet.NewInventory("u-1")
	inv.AddConsumable("food_small", 1)
	if err := repo.SaveWithVersion(ctx, inv, 0); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's copy after save must not leak into the store.
	inv.Consumables["food_small"] = 99
	inv.Items = append(inv.Items, "ball")

	got, err := repo.GetByUserID(ctx, "u-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Consumables["food_small"] != 1 || len(got.Items) != 0 {
		t.Fatalf("stored inventory aliased caller state: %+v", got)
	}

	// And mutating a read copy must not leak either.
	got.Consumables["food_small"] = 50
	again, _ := repo.GetByUserID(ctx, "u-1")
	if again.Consumables["food_small"] != 1 {
		t.Fatalf("read copy aliased store state: %+v", again)
	}
}

func TestProgressRepo_KeyedByMissionAndUser(t *testing.T) {
	store := NewStore()
	repo := NewProgressRepo(store)
	ctx := context.Background()

	for _, p := range []mission.Progress{
		mission.NewProgress(1, "u-1", baseTime),
		mission.NewProgress(2, "u-1", baseTime),
		mission.NewProgress(1, "u-2", baseTime),
	} {
		if err := repo.SaveWithVersion(ctx, p, 0); err != nil {
			t.Fatalf("save %d/%s: %v", p.MissionID, p.UserID, err)
		}
	}

	rows, err := repo.ListByUserID(ctx, "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].MissionID != 1 || rows[1].MissionID != 2 {
		t.Fatalf("rows = %+v, want u-1 rows sorted by mission", rows)
	}

	if _, err := repo.GetByMissionAndUser(ctx, 2, "u-2"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown pair, got %v", err)
	}
}

func TestSnapshotRepo_LatestByDateThenID(t *testing.T) {
	store := NewStore()
	repo := NewSnapshotRepo(store)
	ctx := context.Background()

	day := baseTime
	for _, rec := range []ports.FinanceSnapshotRecord{
		{UserID: "u-1", Date: day, Income: 100},
		{UserID: "u-1", Date: day.AddDate(0, 0, 1), Income: 200},
		{UserID: "u-1", Date: day.AddDate(0, 0, 1), Income: 300},
	} {
		r := rec
		if err := repo.Create(ctx, &r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	latest, err := repo.LatestByUserID(ctx, "u-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	// Same-day snapshots tie-break on insertion order.
	if latest.Income != 300 {
		t.Fatalf("latest = %+v, want the last same-day row", latest)
	}
}

func TestCatalogRepo_ListByIDsSkipsUnknown(t *testing.T) {
	store := NewStore()
	repo := NewCatalogRepo(store)
	ctx := context.Background()

	store.SeedItem(pet.ShopItem{ID: "food_small", Type: pet.ItemTypeFood, Enabled: true})

	items, err := repo.ListByIDs(ctx, []string{"food_small", "ghost"})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(items) != 1 || items[0].ID != "food_small" {
		t.Fatalf("items = %v, want only the known id", items)
	}
}

func TestCredentialRepo_DuplicateNickname(t *testing.T) {
	store := NewStore()
	repo := NewCredentialRepo(store)
	ctx := context.Background()

	cred := ports.UserCredentialRecord{UserID: "u-1", Nickname: "alice", CreatedAt: baseTime}
	if err := repo.Create(ctx, cred); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, cred); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
