package memory

import (
	"fmt"
	"sync"

	"finpet/internal/app/ports"
	"finpet/internal/domain/mission"
	"finpet/internal/domain/pet"
)

// Store backs the in-memory repositories used by unit tests. TxManager holds
// the store mutex for the span of a RunInTx callback, but repo methods invoked
// outside RunInTx do not lock, so Store is not safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	wallets     map[string]pet.Wallet
	statuses    map[string]pet.PetStatus
	inventories map[string]pet.Inventory
	profiles    map[string]pet.PetProfile
	missions    map[int64]mission.Mission
	progress    map[string]mission.Progress
	items       map[string]pet.ShopItem
	snapshots   map[string][]ports.FinanceSnapshotRecord
	credentials map[string]ports.UserCredentialRecord
	snapshotSeq int64
}

func NewStore() *Store {
	return &Store{
		wallets:     make(map[string]pet.Wallet),
		statuses:    make(map[string]pet.PetStatus),
		inventories: make(map[string]pet.Inventory),
		profiles:    make(map[string]pet.PetProfile),
		missions:    make(map[int64]mission.Mission),
		progress:    make(map[string]mission.Progress),
		items:       make(map[string]pet.ShopItem),
		snapshots:   make(map[string][]ports.FinanceSnapshotRecord),
		credentials: make(map[string]ports.UserCredentialRecord),
	}
}

func progressKey(missionID int64, userID string) string {
	return fmt.Sprintf("%d::%s", missionID, userID)
}

func (s *Store) SeedWallet(w pet.Wallet) {
	s.wallets[w.UserID] = w
}

func (s *Store) SeedStatus(st pet.PetStatus) {
	s.statuses[st.UserID] = st
}

func (s *Store) SeedInventory(inv pet.Inventory) {
	s.inventories[inv.UserID] = inv
}

func (s *Store) SeedProfile(p pet.PetProfile) {
	s.profiles[p.UserID] = p
}

func (s *Store) SeedMission(m mission.Mission) {
	s.missions[m.ID] = m
}

func (s *Store) SeedItem(item pet.ShopItem) {
	s.items[item.ID] = item
}
