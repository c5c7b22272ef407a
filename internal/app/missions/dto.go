package missions

type Reward struct {
	Coins int    `json:"coins"`
	XP    int    `json:"xp"`
	PetID string `json:"pet_id,omitempty"`
}

type ProgressEntry struct {
	Counter int    `json:"counter"`
	Target  int    `json:"target"`
	Status  string `json:"status"`
}

type ListEntry struct {
	ID          int64         `json:"id"`
	Code        string        `json:"code"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ProductTag  string        `json:"product_tag"`
	Repeatable  bool          `json:"repeatable"`
	Reward      Reward        `json:"reward"`
	Progress    ProgressEntry `json:"progress"`
}

type StepResponse struct {
	Counter int    `json:"counter"`
	Target  int    `json:"target"`
	Status  string `json:"status"`
}

type ClaimResponse struct {
	Coins      int    `json:"coins"`
	XP         int    `json:"xp"`
	PetID      string `json:"pet_id,omitempty"`
	Repeatable bool   `json:"repeatable"`
}
