package action

import (
	"context"
	"errors"
	"strings"
	"time"

	"finpet/internal/app/petstate"
	"finpet/internal/app/ports"
	"finpet/internal/app/shared/stateview"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/pet"
)

const (
	NamePlay = "play"
	NameFeed = "feed"
	NameHeal = "heal"
)

var (
	ErrInvalidRequest      = errors.New("invalid action request")
	ErrUnknownAction       = errors.New("unknown action")
	ErrMissingSelection    = errors.New("item selection required")
	ErrInsufficientSatiety = errors.New("satiety too low to play")
	ErrOutOfStock          = errors.New("item out of stock")
	ErrWrongItemType       = errors.New("wrong item type for action")
	ErrNoEffect            = errors.New("item has no usable effect")
)

type Request struct {
	UserID string
	Name   string
	ItemID string
}

type UseCase struct {
	TxManager ports.TxManager
	Repos     userstate.Repos
	Catalog   ports.CatalogRepository
	PetState  petstate.UseCase
	Metrics   ports.ActionMetrics
	Now       func() time.Time
}

// Execute settles elapsed time, then applies one player action. Validation
// failures roll the whole transaction back, so a rejected action never leaves
// a partial write behind.
func (u UseCase) Execute(ctx context.Context, req Request) (stateview.View, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Name = strings.TrimSpace(req.Name)
	req.ItemID = strings.TrimSpace(req.ItemID)
	if req.UserID == "" || req.Name == "" {
		return stateview.View{}, ErrInvalidRequest
	}

	now := u.now()
	var view stateview.View
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		st, err := userstate.Ensure(txCtx, u.Repos, req.UserID, now)
		if err != nil {
			return err
		}
		if err := userstate.CatchUp(txCtx, u.Repos, &st, now); err != nil {
			return err
		}

		switch req.Name {
		case NamePlay:
			err = u.play(&st, now)
		case NameFeed:
			err = u.feed(txCtx, &st, req.ItemID, now)
		case NameHeal:
			err = u.heal(txCtx, &st, req.ItemID, now)
		default:
			err = ErrUnknownAction
		}
		if err != nil {
			return err
		}

		if err := userstate.SaveStatus(txCtx, u.Repos, &st.Status); err != nil {
			return err
		}
		view, err = u.PetState.AssembleView(txCtx, st)
		return err
	})
	if err != nil {
		u.recordFailure(err)
		return stateview.View{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(req.Name)
	}
	return view, nil
}

func (u UseCase) play(st *userstate.State, now time.Time) error {
	if st.Status.Satiety <= pet.PlayMinSatiety {
		return ErrInsufficientSatiety
	}
	st.Status.ApplyDeltas(-pet.PlaySatietyCost, pet.PlayMoodGain, 0)
	playedAt := now
	st.Status.LastPlayedAt = &playedAt
	return nil
}

func (u UseCase) feed(ctx context.Context, st *userstate.State, itemID string, now time.Time) error {
	effect, err := u.resolveConsumable(ctx, st, itemID, pet.ItemTypeFood)
	if err != nil {
		return err
	}
	food, ok := effect.(pet.FoodEffect)
	if !ok || food.Satiety == 0 {
		return ErrNoEffect
	}
	st.Status.ApplyDeltas(food.Satiety, food.Mood, food.Health)
	fedAt := now
	st.Status.LastFedAt = &fedAt
	st.Inventory.Consume(itemID)
	return userstate.SaveInventory(ctx, u.Repos, &st.Inventory)
}

func (u UseCase) heal(ctx context.Context, st *userstate.State, itemID string, now time.Time) error {
	effect, err := u.resolveConsumable(ctx, st, itemID, pet.ItemTypeMedicine)
	if err != nil {
		return err
	}
	medicine, ok := effect.(pet.MedicineEffect)
	if !ok || medicine.Health == 0 {
		return ErrNoEffect
	}
	st.Status.ApplyDeltas(medicine.Satiety, medicine.Mood, medicine.Health)
	healedAt := now
	st.Status.LastHealedAt = &healedAt
	st.Inventory.Consume(itemID)
	return userstate.SaveInventory(ctx, u.Repos, &st.Inventory)
}

func (u UseCase) resolveConsumable(ctx context.Context, st *userstate.State, itemID string, want pet.ItemType) (pet.Effect, error) {
	if itemID == "" {
		return nil, ErrMissingSelection
	}
	if !st.Inventory.HasStock(itemID) {
		return nil, ErrOutOfStock
	}
	item, err := u.Catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Type != want {
		return nil, ErrWrongItemType
	}
	return item.Effect, nil
}

func (u UseCase) recordFailure(err error) {
	if u.Metrics == nil {
		return
	}
	if errors.Is(err, ports.ErrConflict) {
		u.Metrics.RecordConflict()
		return
	}
	u.Metrics.RecordFailure()
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
