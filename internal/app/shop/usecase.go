package shop

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

var (
	ErrInvalidRequest = errors.New("invalid shop request")
	ErrNotEnoughCoins = errors.New("not enough coins")
)

type UseCase struct {
	TxManager ports.TxManager
	Catalog   ports.CatalogRepository
	Repos     userstate.Repos
	PetState  petstate.UseCase
	Now       func() time.Time
}

// ListItems returns the enabled catalog.
func (u UseCase) ListItems(ctx context.Context) ([]pet.ShopItem, error) {
	return u.Catalog.ListEnabled(ctx)
}

// Purchase debits the wallet and applies the item by type: food and medicine
// stack a consumable, backgrounds and cosmetics unlock instantly, pets join
// the owned set. The refreshed read view is returned, matching /pet/state.
func (u UseCase) Purchase(ctx context.Context, userID, itemID string) (stateview.View, error) {
	userID = strings.TrimSpace(userID)
	itemID = strings.TrimSpace(itemID)
	if userID == "" || itemID == "" {
		return stateview.View{}, ErrInvalidRequest
	}

	now := u.now()
	var view stateview.View
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := u.Catalog.GetByID(txCtx, itemID)
		if err != nil {
			return err
		}
		if !item.Enabled {
			return ports.ErrNotFound
		}

		st, err := userstate.Ensure(txCtx, u.Repos, userID, now)
		if err != nil {
			return err
		}
		if err := userstate.CatchUp(txCtx, u.Repos, &st, now); err != nil {
			return err
		}
		if st.Wallet.Coins < item.Price {
			return ErrNotEnoughCoins
		}
		st.Wallet.Coins = pet.ClampCoins(st.Wallet.Coins - item.Price)

		switch item.Type {
		case pet.ItemTypeFood, pet.ItemTypeMedicine:
			st.Inventory.AddConsumable(item.ID, 1)
			if err := userstate.SaveInventory(txCtx, u.Repos, &st.Inventory); err != nil {
				return err
			}
		case pet.ItemTypeBackground:
			effect, ok := item.Effect.(pet.BackgroundEffect)
			if !ok {
				return pet.ErrMalformedEffect
			}
			st.Inventory.Background = effect.ID
			if err := userstate.SaveInventory(txCtx, u.Repos, &st.Inventory); err != nil {
				return err
			}
		case pet.ItemTypeCosmetic:
			effect, ok := item.Effect.(pet.CosmeticEffect)
			if !ok {
				return pet.ErrMalformedEffect
			}
			st.Inventory.AddItem(effect.ID)
			if err := userstate.SaveInventory(txCtx, u.Repos, &st.Inventory); err != nil {
				return err
			}
		case pet.ItemTypePet:
			effect, ok := item.Effect.(pet.PetUnlockEffect)
			if !ok {
				return pet.ErrMalformedEffect
			}
			if !st.Profile.Owns(effect.PetID) {
				st.Profile.Unlock(effect.PetID)
				if err := userstate.SaveProfile(txCtx, u.Repos, &st.Profile); err != nil {
					return err
				}
			}
		default:
			return pet.ErrUnknownItemType
		}

		if err := userstate.SaveWallet(txCtx, u.Repos, &st.Wallet); err != nil {
			return err
		}
		view, err = u.PetState.AssembleView(txCtx, st)
		return err
	})
	if err != nil {
		return stateview.View{}, err
	}
	return view, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
