package memory

import (
	"context"
	"sort"

	"finpet/internal/app/ports"
	"finpet/internal/domain/mission"
)

type MissionRepo struct {
	store *Store
}

func NewMissionRepo(store *Store) MissionRepo {
	return MissionRepo{store: store}
}

func (r MissionRepo) GetByID(_ context.Context, id int64) (mission.Mission, error) {
	m, ok := r.store.missions[id]
	if !ok {
		return mission.Mission{}, ports.ErrNotFound
	}
	return m, nil
}

func (r MissionRepo) List(_ context.Context) ([]mission.Mission, error) {
	out := make([]mission.Mission, 0, len(r.store.missions))
	for _, m := range r.store.missions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r MissionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.missions)), nil
}

func (r MissionRepo) Create(_ context.Context, m mission.Mission) error {
	if _, ok := r.store.missions[m.ID]; ok {
		return ports.ErrConflict
	}
	r.store.missions[m.ID] = m
	return nil
}

type ProgressRepo struct {
	store *Store
}

func NewProgressRepo(store *Store) ProgressRepo {
	return ProgressRepo{store: store}
}

func (r ProgressRepo) GetByMissionAndUser(_ context.Context, missionID int64, userID string) (mission.Progress, error) {
	p, ok := r.store.progress[progressKey(missionID, userID)]
	if !ok {
		return mission.Progress{}, ports.ErrNotFound
	}
	return p, nil
}

func (r ProgressRepo) ListByUserID(_ context.Context, userID string) ([]mission.Progress, error) {
	out := make([]mission.Progress, 0)
	for _, p := range r.store.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MissionID < out[j].MissionID })
	return out, nil
}

func (r ProgressRepo) SaveWithVersion(_ context.Context, p mission.Progress, expectedVersion int64) error {
	key := progressKey(p.MissionID, p.UserID)
	current, ok := r.store.progress[key]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.progress[key] = p
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.progress[key] = p
	return nil
}
