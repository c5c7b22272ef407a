package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	httpadapter "finpet/internal/adapter/http"
	metricsinmem "finpet/internal/adapter/metrics/inmemory"
	gormrepo "finpet/internal/adapter/repo/gorm"
	"finpet/internal/app/action"
	"finpet/internal/app/auth"
	"finpet/internal/app/finance"
	"finpet/internal/app/missions"
	"finpet/internal/app/petstate"
	"finpet/internal/app/ports"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/app/shop"
	"finpet/internal/domain/mission"
	"finpet/internal/domain/pet"
)

func main() {
	dsn := os.Getenv("FINPET_DB_DSN")
	if dsn == "" {
		log.Fatal("FINPET_DB_DSN is required")
	}
	secret := strings.TrimSpace(os.Getenv("FINPET_JWT_SECRET"))
	if len(secret) < 32 {
		log.Fatal("FINPET_JWT_SECRET must be at least 32 bytes")
	}
	addr := strEnv("FINPET_HTTP_ADDR", ":8080")
	migrationsDir := strEnv("FINPET_MIGRATIONS_DIR", "./migrations")

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	repos := userstate.Repos{
		Wallets:     gormrepo.NewWalletRepo(db),
		Statuses:    gormrepo.NewStatusRepo(db),
		Inventories: gormrepo.NewInventoryRepo(db),
		Profiles:    gormrepo.NewProfileRepo(db),
	}
	missionRepo := gormrepo.NewMissionRepo(db)
	progressRepo := gormrepo.NewProgressRepo(db)
	catalogRepo := gormrepo.NewCatalogRepo(db)
	snapshotRepo := gormrepo.NewSnapshotRepo(db)
	credentialRepo := gormrepo.NewCredentialRepo(db)
	txManager := gormrepo.NewTxManager(db)

	if err := seedCatalogs(context.Background(), missionRepo, catalogRepo); err != nil {
		log.Fatalf("seed catalogs: %v", err)
	}

	kpiRecorder := metricsinmem.NewRecorder()
	petStateUC := petstate.UseCase{
		TxManager: txManager,
		Repos:     repos,
		Snapshots: snapshotRepo,
		Catalog:   catalogRepo,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		AuthUC: auth.UseCase{
			Credentials: credentialRepo,
			TxManager:   txManager,
			Secret:      []byte(secret),
			Now:         time.Now,
		},
		PetStateUC: petStateUC,
		ActionUC: action.UseCase{
			TxManager: txManager,
			Repos:     repos,
			Catalog:   catalogRepo,
			PetState:  petStateUC,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		MissionsUC: missions.UseCase{
			TxManager: txManager,
			Missions:  missionRepo,
			Progress:  progressRepo,
			Repos:     repos,
			Now:       time.Now,
		},
		ShopUC: shop.UseCase{
			TxManager: txManager,
			Catalog:   catalogRepo,
			Repos:     repos,
			PetState:  petStateUC,
			Now:       time.Now,
		},
		FinanceUC: finance.UseCase{
			Snapshots: snapshotRepo,
			Now:       time.Now,
		},
		KPI: kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("finpet server listening on %s", addr)
	s.Spin()
}

// seedCatalogs loads the default mission and shop catalogs on an empty
// database so a fresh install is playable without manual inserts.
func seedCatalogs(ctx context.Context, missionRepo ports.MissionRepository, catalogRepo ports.CatalogRepository) error {
	count, err := missionRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, m := range defaultMissions() {
			if err := missionRepo.Create(ctx, m); err != nil {
				return err
			}
		}
	}

	count, err = catalogRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, item := range defaultShopItems() {
			if err := catalogRepo.Create(ctx, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func defaultMissions() []mission.Mission {
	return []mission.Mission{
		{
			ID:          1,
			Code:        "FIRST_SNAPSHOT",
			Title:       "Запишите первый бюджет",
			Description: "Зафиксируйте доходы и расходы за месяц",
			ProductTag:  "budget",
			Target:      1,
			RewardCoins: 50,
			RewardXP:    10,
		},
		{
			ID:          2,
			Code:        "SAVINGS_STREAK",
			Title:       "Откладывайте три раза",
			Description: "Пополните накопительный счёт три раза",
			ProductTag:  "savings",
			Target:      3,
			Repeatable:  true,
			RewardCoins: 30,
			RewardXP:    15,
		},
		{
			ID:          3,
			Code:        "ANTIFRAUD_TUTORIAL",
			Title:       "Пройдите урок безопасности",
			Description: "Изучите правила защиты от мошенников",
			ProductTag:  "security",
			Target:      1,
			RewardCoins: 100,
			RewardXP:    25,
			RewardPetID: "cat",
		},
	}
}

func defaultShopItems() []pet.ShopItem {
	return []pet.ShopItem{
		{
			ID:      "food_small",
			Title:   "Корм",
			Price:   5,
			Type:    pet.ItemTypeFood,
			Effect:  pet.FoodEffect{Satiety: 15, Mood: 2},
			Enabled: true,
		},
		{
			ID:      "food_big",
			Title:   "Праздничный обед",
			Price:   12,
			Type:    pet.ItemTypeFood,
			Effect:  pet.FoodEffect{Satiety: 35, Mood: 6},
			Enabled: true,
		},
		{
			ID:      "medkit",
			Title:   "Аптечка",
			Price:   20,
			Type:    pet.ItemTypeMedicine,
			Effect:  pet.MedicineEffect{Health: 25},
			Enabled: true,
		},
		{
			ID:      "bg_sky",
			Title:   "Фон «Небо»",
			Price:   40,
			Type:    pet.ItemTypeBackground,
			Effect:  pet.BackgroundEffect{ID: "sky"},
			Enabled: true,
		},
		{
			ID:      "toy_ball",
			Title:   "Мячик",
			Price:   15,
			Type:    pet.ItemTypeCosmetic,
			Effect:  pet.CosmeticEffect{ID: "ball"},
			Enabled: true,
		},
		{
			ID:      "pet_parrot",
			Title:   "Попугай",
			Price:   200,
			Type:    pet.ItemTypePet,
			Effect:  pet.PetUnlockEffect{PetID: "parrot"},
			Enabled: true,
		},
	}
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
