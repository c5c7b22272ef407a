package petstate

import (
	"context"
	"errors"
	"strings"
	"time"

	"finpet/internal/app/ports"
	"finpet/internal/app/shared/stateview"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/pet"
)

var (
	ErrInvalidRequest = errors.New("invalid pet state request")
	ErrPetNotOwned    = errors.New("pet not owned")
)

type UseCase struct {
	TxManager ports.TxManager
	Repos     userstate.Repos
	Snapshots ports.SnapshotRepository
	Catalog   ports.CatalogRepository
	Now       func() time.Time
}

// EnsureUserState creates the user's wallet, status, inventory and profile on
// first access. Idempotent.
func (u UseCase) EnsureUserState(ctx context.Context, userID string) (userstate.State, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return userstate.State{}, ErrInvalidRequest
	}
	now := u.now()
	var st userstate.State
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		st, err = userstate.Ensure(txCtx, u.Repos, userID, now)
		return err
	})
	if err != nil {
		return userstate.State{}, err
	}
	return st, nil
}

// BuildState settles elapsed time, blends in the latest financial snapshot
// and resolves the consumable ledger against the catalog.
func (u UseCase) BuildState(ctx context.Context, userID string) (stateview.View, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return stateview.View{}, ErrInvalidRequest
	}
	now := u.now()
	var view stateview.View
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		st, err := userstate.Ensure(txCtx, u.Repos, userID, now)
		if err != nil {
			return err
		}
		if err := userstate.CatchUp(txCtx, u.Repos, &st, now); err != nil {
			return err
		}
		view, err = u.assembleView(txCtx, st)
		return err
	})
	if err != nil {
		return stateview.View{}, err
	}
	return view, nil
}

// SelectPet switches the active pet. The pet must already be owned.
func (u UseCase) SelectPet(ctx context.Context, userID, petID string) error {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return ErrInvalidRequest
	}
	now := u.now()
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		st, err := userstate.Ensure(txCtx, u.Repos, userID, now)
		if err != nil {
			return err
		}
		if !st.Profile.Owns(petID) {
			return ErrPetNotOwned
		}
		if st.Profile.SelectedPetID == petID {
			return nil
		}
		st.Profile.SelectedPetID = petID
		return userstate.SaveProfile(txCtx, u.Repos, &st.Profile)
	})
}

// AssembleView builds the read view for an already loaded and settled state.
// Must run inside the caller's transaction.
func (u UseCase) AssembleView(ctx context.Context, st userstate.State) (stateview.View, error) {
	return u.assembleView(ctx, st)
}

func (u UseCase) assembleView(ctx context.Context, st userstate.State) (stateview.View, error) {
	var snap *ports.FinanceSnapshotRecord
	latest, err := u.Snapshots.LatestByUserID(ctx, st.Wallet.UserID)
	switch {
	case err == nil:
		snap = &latest
	case errors.Is(err, ports.ErrNotFound):
	default:
		return stateview.View{}, err
	}

	catalog := map[string]pet.ShopItem{}
	if ids := stateview.ConsumableIDs(st.Inventory.Consumables); len(ids) > 0 {
		items, err := u.Catalog.ListByIDs(ctx, ids)
		if err != nil {
			return stateview.View{}, err
		}
		for _, item := range items {
			catalog[item.ID] = item
		}
	}

	return stateview.Derive(st, snap, catalog), nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
