package inmemory

import "sync"

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByAction       map[string]uint64 `json:"by_action"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	byAction map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[actionName]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.conflict + r.failure,
		ByAction:       make(map[string]uint64, len(r.byAction)),
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
