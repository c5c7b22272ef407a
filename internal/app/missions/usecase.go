package missions

import (
	"context"
	"errors"
	"strings"
	"time"

	"finpet/internal/app/ports"
	"finpet/internal/app/shared/userstate"
	"finpet/internal/domain/mission"
	"finpet/internal/domain/pet"
)

var (
	ErrInvalidRequest   = errors.New("invalid mission request")
	ErrAlreadyCompleted = errors.New("mission already completed")
	ErrNotCompleted     = errors.New("mission not completed")
	ErrAlreadyClaimed   = errors.New("mission reward already claimed")
)

type UseCase struct {
	TxManager ports.TxManager
	Missions  ports.MissionRepository
	Progress  ports.ProgressRepository
	Repos     userstate.Repos
	Now       func() time.Time
}

// List returns the mission catalog joined with the caller's progress. Missions
// the user never stepped surface with a fresh zero progress.
func (u UseCase) List(ctx context.Context, userID string) ([]ListEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	catalog, err := u.Missions.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := u.Progress.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byMission := make(map[int64]mission.Progress, len(rows))
	for _, p := range rows {
		byMission[p.MissionID] = p
	}

	entries := make([]ListEntry, 0, len(catalog))
	for _, m := range catalog {
		p, ok := byMission[m.ID]
		if !ok {
			p = mission.Progress{MissionID: m.ID, UserID: userID, Status: mission.StatusNew}
		}
		entries = append(entries, ListEntry{
			ID:          m.ID,
			Code:        m.Code,
			Title:       m.Title,
			Description: m.Description,
			ProductTag:  m.ProductTag,
			Repeatable:  m.Repeatable,
			Reward:      Reward{Coins: m.RewardCoins, XP: m.RewardXP, PetID: m.RewardPetID},
			Progress: ProgressEntry{
				Counter: p.Counter,
				Target:  m.Target,
				Status:  string(p.Status),
			},
		})
	}
	return entries, nil
}

// Step records one qualifying action toward a mission, creating the progress
// row on first touch.
func (u UseCase) Step(ctx context.Context, missionID int64, userID string) (StepResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || missionID <= 0 {
		return StepResponse{}, ErrInvalidRequest
	}
	now := u.now()
	var resp StepResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Missions.GetByID(txCtx, missionID)
		if err != nil {
			return err
		}

		created := false
		p, err := u.Progress.GetByMissionAndUser(txCtx, missionID, userID)
		switch {
		case err == nil:
		case errors.Is(err, ports.ErrNotFound):
			p = mission.NewProgress(missionID, userID, now)
			created = true
		default:
			return err
		}

		if p.Status == mission.StatusDone && !m.Repeatable {
			return ErrAlreadyCompleted
		}

		p.Advance(m.Target, now)
		if created {
			if err := u.Progress.SaveWithVersion(txCtx, p, 0); err != nil {
				return err
			}
		} else {
			prev := p.Version
			p.Version++
			if err := u.Progress.SaveWithVersion(txCtx, p, prev); err != nil {
				return err
			}
		}

		resp = StepResponse{Counter: p.Counter, Target: m.Target, Status: string(p.Status)}
		return nil
	})
	if err != nil {
		return StepResponse{}, err
	}
	return resp, nil
}

// Claim grants a completed mission's reward: coins, an optional pet unlock,
// and either a cycle reset (repeatable) or a permanent claimed mark.
func (u UseCase) Claim(ctx context.Context, missionID int64, userID string) (ClaimResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || missionID <= 0 {
		return ClaimResponse{}, ErrInvalidRequest
	}
	now := u.now()
	var resp ClaimResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Missions.GetByID(txCtx, missionID)
		if err != nil {
			return err
		}

		p, err := u.Progress.GetByMissionAndUser(txCtx, missionID, userID)
		if errors.Is(err, ports.ErrNotFound) {
			return ErrNotCompleted
		}
		if err != nil {
			return err
		}
		if p.Status != mission.StatusDone {
			return ErrNotCompleted
		}
		if p.RewardClaimed && !m.Repeatable {
			return ErrAlreadyClaimed
		}

		st, err := userstate.Ensure(txCtx, u.Repos, userID, now)
		if err != nil {
			return err
		}
		st.Wallet.Coins = pet.ClampCoins(st.Wallet.Coins + m.RewardCoins)
		if err := userstate.SaveWallet(txCtx, u.Repos, &st.Wallet); err != nil {
			return err
		}
		if m.RewardPetID != "" && !st.Profile.Owns(m.RewardPetID) {
			st.Profile.Unlock(m.RewardPetID)
			if err := userstate.SaveProfile(txCtx, u.Repos, &st.Profile); err != nil {
				return err
			}
		}

		if m.Repeatable {
			p.ResetCycle(now)
		} else {
			p.MarkClaimed(now)
		}
		prev := p.Version
		p.Version++
		if err := u.Progress.SaveWithVersion(txCtx, p, prev); err != nil {
			return err
		}

		resp = ClaimResponse{
			Coins:      m.RewardCoins,
			XP:         m.RewardXP,
			PetID:      m.RewardPetID,
			Repeatable: m.Repeatable,
		}
		return nil
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	return resp, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
