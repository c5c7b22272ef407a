package finance

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"finpet/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid finance request")

type SnapshotRequest struct {
	UserID      string
	Date        time.Time
	Income      float64
	Expenses    float64
	Balance     float64
	SavingsRate float64
}

type UseCase struct {
	Snapshots ports.SnapshotRepository
	Now       func() time.Time
}

// RecordSnapshot stores one budget snapshot. When the caller did not supply a
// savings rate it is derived as (income-expenses)/income, rounded to four
// decimal places.
func (u UseCase) RecordSnapshot(ctx context.Context, req SnapshotRequest) (ports.FinanceSnapshotRecord, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || req.Income < 0 || req.Expenses < 0 {
		return ports.FinanceSnapshotRecord{}, ErrInvalidRequest
	}
	if req.Date.IsZero() {
		req.Date = u.now()
	}
	if req.SavingsRate == 0 && req.Income > 0 {
		req.SavingsRate = round4((req.Income - req.Expenses) / req.Income)
	}

	record := ports.FinanceSnapshotRecord{
		UserID:      req.UserID,
		Date:        req.Date,
		Income:      req.Income,
		Expenses:    req.Expenses,
		Balance:     req.Balance,
		SavingsRate: req.SavingsRate,
	}
	if err := u.Snapshots.Create(ctx, &record); err != nil {
		return ports.FinanceSnapshotRecord{}, err
	}
	return record, nil
}

// Latest returns the user's most recent snapshot, ports.ErrNotFound when none
// exists yet.
func (u UseCase) Latest(ctx context.Context, userID string) (ports.FinanceSnapshotRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ports.FinanceSnapshotRecord{}, ErrInvalidRequest
	}
	return u.Snapshots.LatestByUserID(ctx, userID)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
