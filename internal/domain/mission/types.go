package mission

import "time"

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

type Mission struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductTag  string `json:"product_tag"`
	Target      int    `json:"target"`
	Repeatable  bool   `json:"repeatable"`
	RewardCoins int    `json:"reward_coins"`
	RewardXP    int    `json:"reward_xp"`
	RewardPetID string `json:"reward_pet_id,omitempty"`
}

type Progress struct {
	MissionID     int64     `json:"mission_id"`
	UserID        string    `json:"user_id"`
	Status        Status    `json:"status"`
	Counter       int       `json:"counter"`
	RewardClaimed bool      `json:"reward_claimed"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int64     `json:"version"`
}

func NewProgress(missionID int64, userID string, now time.Time) Progress {
	return Progress{
		MissionID: missionID,
		UserID:    userID,
		Status:    StatusNew,
		Counter:   0,
		UpdatedAt: now,
		Version:   1,
	}
}

// Advance records one qualifying step. While the mission is not done the
// claimed flag is forced back to false so a stale flag from a prior
// repeatable cycle can never block the next claim.
func (p *Progress) Advance(target int, now time.Time) {
	p.Counter++
	if p.Counter >= target {
		p.Status = StatusDone
	} else {
		p.Status = StatusInProgress
		p.RewardClaimed = false
	}
	p.UpdatedAt = now
}

// ResetCycle rearms a repeatable mission after a successful claim.
func (p *Progress) ResetCycle(now time.Time) {
	p.Counter = 0
	p.Status = StatusNew
	p.RewardClaimed = false
	p.UpdatedAt = now
}

func (p *Progress) MarkClaimed(now time.Time) {
	p.RewardClaimed = true
	p.UpdatedAt = now
}
