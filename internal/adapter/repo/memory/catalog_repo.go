package memory

import (
	"context"
	"sort"

	"finpet/internal/app/ports"
	"finpet/internal/domain/pet"
)

type CatalogRepo struct {
	store *Store
}

func NewCatalogRepo(store *Store) CatalogRepo {
	return CatalogRepo{store: store}
}

func (r CatalogRepo) GetByID(_ context.Context, id string) (pet.ShopItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return pet.ShopItem{}, ports.ErrNotFound
	}
	return item, nil
}

func (r CatalogRepo) ListEnabled(_ context.Context) ([]pet.ShopItem, error) {
	out := make([]pet.ShopItem, 0, len(r.store.items))
	for _, item := range r.store.items {
		if item.Enabled {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r CatalogRepo) ListByIDs(_ context.Context, ids []string) ([]pet.ShopItem, error) {
	out := make([]pet.ShopItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.store.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r CatalogRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.items)), nil
}

func (r CatalogRepo) Create(_ context.Context, item pet.ShopItem) error {
	if _, ok := r.store.items[item.ID]; ok {
		return ports.ErrConflict
	}
	r.store.items[item.ID] = item
	return nil
}
