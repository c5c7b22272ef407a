package stateview

import (
	"sort"

	"finpet/internal/app/ports"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/pet"
)

type ConsumableEntry struct {
	ItemID string `json:"item_id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Count  int    `json:"count"`
}

type View struct {
	Mood          int               `json:"mood"`
	Satiety       int               `json:"satiety"`
	Health        int               `json:"health"`
	Coins         int               `json:"coins"`
	Background    string            `json:"background"`
	Items         []string          `json:"items"`
	Consumables   []ConsumableEntry `json:"consumables"`
	SelectedPetID string            `json:"selected_pet_id"`
	OwnedPetIDs   []string          `json:"owned_pet_ids"`
}

const unknownItemType = "unknown"

// Derive assembles the read view: stored stats, the finance-adjusted display
// mood, and ledger entries resolved against the catalog. The financial signal
// only shapes the returned mood; stored state is left untouched.
func Derive(st userstate.State, snap *ports.FinanceSnapshotRecord, catalog map[string]pet.ShopItem) View {
	var sig *pet.FinanceSignal
	if snap != nil {
		sig = &pet.FinanceSignal{
			Income:      snap.Income,
			Expenses:    snap.Expenses,
			SavingsRate: snap.SavingsRate,
		}
	}

	view := View{
		Mood:          pet.DisplayMood(st.Status.Mood, sig),
		Satiety:       pet.ClampStat(st.Status.Satiety),
		Health:        pet.ClampStat(st.Status.Health),
		Coins:         st.Wallet.Coins,
		Background:    st.Inventory.Background,
		Items:         st.Inventory.Items,
		Consumables:   deriveConsumables(st.Inventory.Consumables, catalog),
		SelectedPetID: st.Profile.SelectedPetID,
		OwnedPetIDs:   st.Profile.OwnedPetIDs,
	}
	if view.Items == nil {
		view.Items = []string{}
	}
	if view.OwnedPetIDs == nil {
		view.OwnedPetIDs = []string{}
	}
	return view
}

// ConsumableIDs lists the ledger's item ids in stable order, for catalog
// resolution.
func ConsumableIDs(consumables map[string]int) []string {
	ids := make([]string, 0, len(consumables))
	for id := range consumables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func deriveConsumables(consumables map[string]int, catalog map[string]pet.ShopItem) []ConsumableEntry {
	entries := make([]ConsumableEntry, 0, len(consumables))
	for _, id := range ConsumableIDs(consumables) {
		count := consumables[id]
		if count <= 0 {
			continue
		}
		entry := ConsumableEntry{ItemID: id, Title: id, Type: unknownItemType, Count: count}
		if item, ok := catalog[id]; ok {
			entry.Title = item.Title
			entry.Type = string(item.Type)
		}
		entries = append(entries, entry)
	}
	return entries
}
