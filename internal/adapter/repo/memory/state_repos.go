package memory

import (
	"context"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type WalletRepo struct {
	store *Store
}

func NewWalletRepo(store *Store) WalletRepo {
	return WalletRepo{store: store}
}

func (r WalletRepo) GetByUserID(_ context.Context, userID string) (pet.Wallet, error) {
	w, ok := r.store.wallets[userID]
	if !ok {
		return pet.Wallet{}, ports.ErrNotFound
	}
	return w, nil
}

func (r WalletRepo) SaveWithVersion(_ context.Context, w pet.Wallet, expectedVersion int64) error {
	current, ok := r.store.wallets[w.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.wallets[w.UserID] = w
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.wallets[w.UserID] = w
	return nil
}

type StatusRepo struct {
	store *Store
}

func NewStatusRepo(store *Store) StatusRepo {
	return StatusRepo{store: store}
}

func (r StatusRepo) GetByUserID(_ context.Context, userID string) (pet.PetStatus, error) {
	s, ok := r.store.statuses[userID]
	if !ok {
		return pet.PetStatus{}, ports.ErrNotFound
	}
	return s, nil
}

func (r StatusRepo) SaveWithVersion(_ context.Context, s pet.PetStatus, expectedVersion int64) error {
	current, ok := r.store.statuses[s.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.statuses[s.UserID] = s
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.statuses[s.UserID] = s
	return nil
}

type InventoryRepo struct {
	store *Store
}

func NewInventoryRepo(store *Store) InventoryRepo {
	return InventoryRepo{store: store}
}

func (r InventoryRepo) GetByUserID(_ context.Context, userID string) (pet.Inventory, error) {
	inv, ok := r.store.inventories[userID]
	if !ok {
		return pet.Inventory{}, ports.ErrNotFound
	}
	return cloneInventory(inv), nil
}

func (r InventoryRepo) SaveWithVersion(_ context.Context, inv pet.Inventory, expectedVersion int64) error {
	current, ok := r.store.inventories[inv.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.inventories[inv.UserID] = cloneInventory(inv)
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.inventories[inv.UserID] = cloneInventory(inv)
	return nil
}

type ProfileRepo struct {
	store *Store
}

func NewProfileRepo(store *Store) ProfileRepo {
	return ProfileRepo{store: store}
}

func (r ProfileRepo) GetByUserID(_ context.Context, userID string) (pet.PetProfile, error) {
	p, ok := r.store.profiles[userID]
	if !ok {
		return pet.PetProfile{}, ports.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r ProfileRepo) SaveWithVersion(_ context.Context, p pet.PetProfile, expectedVersion int64) error {
	current, ok := r.store.profiles[p.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.profiles[p.UserID] = cloneProfile(p)
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func cloneInventory(inv pet.Inventory) pet.Inventory {
	out := inv
	out.Items = append([]string(nil), inv.Items...)
	out.Consumables = make(map[string]int, len(inv.Consumables))
	for k, v := range inv.Consumables {
		out.Consumables[k] = v
	}
	return out
}

func cloneProfile(p pet.PetProfile) pet.PetProfile {
	out := p
	out.OwnedPetIDs = append([]string(nil), p.OwnedPetIDs...)
	return out
}
