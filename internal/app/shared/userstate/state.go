package userstate

import (
	"context"
	"errors"
	"time"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type Repos struct {
	Wallets     ports.WalletRepository
	Statuses    ports.StatusRepository
	Inventories ports.InventoryRepository
	Profiles    ports.ProfileRepository
}

// State is the full per-user aggregate set every engine operation works on.
type State struct {
	Wallet    pet.Wallet
	Status    pet.PetStatus
	Inventory pet.Inventory
	Profile   pet.PetProfile
}

// Ensure loads the four per-user aggregates, creating any that are missing
// with their defaults. Callers are expected to run it inside a transaction so
// a first request never observes a partially initialized user.
func Ensure(ctx context.Context, r Repos, userID string, now time.Time) (State, error) {
	var st State

	wallet, err := r.Wallets.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		st.Wallet = wallet
	case errors.Is(err, ports.ErrNotFound):
		st.Wallet = pet.NewWallet(userID, now)
		if err := r.Wallets.SaveWithVersion(ctx, st.Wallet, 0); err != nil {
			return State{}, err
		}
	default:
		return State{}, err
	}

	status, err := r.Statuses.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		st.Status = status
	case errors.Is(err, ports.ErrNotFound):
		st.Status = pet.NewStatus(userID, now)
		if err := r.Statuses.SaveWithVersion(ctx, st.Status, 0); err != nil {
			return State{}, err
		}
	default:
		return State{}, err
	}

	inventory, err := r.Inventories.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		st.Inventory = inventory
	case errors.Is(err, ports.ErrNotFound):
		st.Inventory = pet.NewInventory(userID)
		if err := r.Inventories.SaveWithVersion(ctx, st.Inventory, 0); err != nil {
			return State{}, err
		}
	default:
		return State{}, err
	}

	profile, err := r.Profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		st.Profile = profile
	case errors.Is(err, ports.ErrNotFound):
		st.Profile = pet.NewProfile(userID)
		if err := r.Profiles.SaveWithVersion(ctx, st.Profile, 0); err != nil {
			return State{}, err
		}
	default:
		return State{}, err
	}

	return st, nil
}

// CatchUp settles elapsed wall-clock time against the wallet and status and
// persists whichever of the two actually changed.
func CatchUp(ctx context.Context, r Repos, st *State, now time.Time) error {
	if pet.RegenerateWallet(&st.Wallet, now) {
		if err := SaveWallet(ctx, r, &st.Wallet); err != nil {
			return err
		}
	}
	if pet.DecayStatus(&st.Status, now) {
		if err := SaveStatus(ctx, r, &st.Status); err != nil {
			return err
		}
	}
	return nil
}

func SaveWallet(ctx context.Context, r Repos, w *pet.Wallet) error {
	prev := w.Version
	w.Version++
	return r.Wallets.SaveWithVersion(ctx, *w, prev)
}

func SaveStatus(ctx context.Context, r Repos, s *pet.PetStatus) error {
	prev := s.Version
	s.Version++
	return r.Statuses.SaveWithVersion(ctx, *s, prev)
}

func SaveInventory(ctx context.Context, r Repos, inv *pet.Inventory) error {
	prev := inv.Version
	inv.Version++
	return r.Inventories.SaveWithVersion(ctx, *inv, prev)
}

func SaveProfile(ctx context.Context, r Repos, p *pet.PetProfile) error {
	prev := p.Version
	p.Version++
	return r.Profiles.SaveWithVersion(ctx, *p, prev)
}
