package memory

import (
	"context"

	"finpet/internal/app/ports"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Create(_ context.Context, snap *ports.FinanceSnapshotRecord) error {
	r.store.snapshotSeq++
	snap.ID = r.store.snapshotSeq
	r.store.snapshots[snap.UserID] = append(r.store.snapshots[snap.UserID], *snap)
	return nil
}

func (r SnapshotRepo) LatestByUserID(_ context.Context, userID string) (ports.FinanceSnapshotRecord, error) {
	rows := r.store.snapshots[userID]
	if len(rows) == 0 {
		return ports.FinanceSnapshotRecord{}, ports.ErrNotFound
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.Date.After(latest.Date) || (row.Date.Equal(latest.Date) && row.ID > latest.ID) {
			latest = row
		}
	}
	return latest, nil
}

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(_ context.Context, cred ports.UserCredentialRecord) error {
	if _, ok := r.store.credentials[cred.Nickname]; ok {
		return ports.ErrConflict
	}
	r.store.credentials[cred.Nickname] = cred
	return nil
}

func (r CredentialRepo) GetByNickname(_ context.Context, nickname string) (ports.UserCredentialRecord, error) {
	cred, ok := r.store.credentials[nickname]
	if !ok {
		return ports.UserCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
