package pet

import "time"

func ClampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

func ClampCoins(v int) int {
	if v < 0 {
		return 0
	}
	if v > CoinsMax {
		return CoinsMax
	}
	return v
}

// RegenerateWallet catches the wallet up with elapsed wall-clock time: one
// coin per started 5-minute interval, at most 40 per catch-up. It reports
// whether the coin balance actually changed.
func RegenerateWallet(w *Wallet, now time.Time) bool {
	if !now.After(w.UpdatedAt) {
		return false
	}
	elapsed := int(now.Sub(w.UpdatedAt).Minutes())
	if elapsed < RegenIntervalMinutes {
		return false
	}
	gained := elapsed / RegenIntervalMinutes
	if gained > RegenMaxIncrements {
		gained = RegenMaxIncrements
	}
	before := w.Coins
	w.Coins = ClampCoins(w.Coins + gained)
	w.UpdatedAt = now
	return w.Coins != before
}

// DecayStatus applies one 30-minute decay step per elapsed quantum. Steps run
// sequentially: the health penalty depends on the satiety value before that
// step's decrement, so a closed-form jump would change the outcome.
func DecayStatus(s *PetStatus, now time.Time) bool {
	if !now.After(s.LastUpdatedAt) {
		return false
	}
	steps := int(now.Sub(s.LastUpdatedAt).Minutes()) / DecayStepMinutes
	if steps <= 0 {
		return false
	}
	changed := false
	for i := 0; i < steps; i++ {
		satietyBefore := s.Satiety
		if s.Satiety > 0 {
			s.Satiety = ClampStat(s.Satiety - DecaySatietyPerStep)
			changed = true
		}
		if s.Mood > 0 {
			s.Mood = ClampStat(s.Mood - DecayMoodPerStep)
			changed = true
		}
		if satietyBefore < DecayHungryThreshold && s.Health > 0 {
			s.Health = ClampStat(s.Health - DecayHealthPerStep)
			changed = true
		}
	}
	s.LastUpdatedAt = now
	return changed
}

func (s *PetStatus) ApplyDeltas(satiety, mood, health int) {
	s.Satiety = ClampStat(s.Satiety + satiety)
	s.Mood = ClampStat(s.Mood + mood)
	s.Health = ClampStat(s.Health + health)
}

// DisplayMood blends the latest financial signal into the stored mood at
// read time. The stored value is never modified.
func DisplayMood(mood int, sig *FinanceSignal) int {
	if sig == nil {
		return ClampStat(mood)
	}
	switch {
	case sig.SavingsRate >= HighSavingsRate:
		return ClampStat(mood + MoodBoostHighSavings)
	case sig.SavingsRate >= ModestSavingsRate:
		return ClampStat(mood + MoodBoostModestSavings)
	case sig.Expenses > sig.Income:
		return ClampStat(mood - MoodPenaltyOverspend)
	}
	return ClampStat(mood)
}

func (inv *Inventory) HasStock(itemID string) bool {
	return inv.Consumables[itemID] > 0
}

// Consume removes one unit of a consumable. Entries never stay at zero.
func (inv *Inventory) Consume(itemID string) {
	count, ok := inv.Consumables[itemID]
	if !ok {
		return
	}
	if count <= 1 {
		delete(inv.Consumables, itemID)
		return
	}
	inv.Consumables[itemID] = count - 1
}

func (inv *Inventory) AddConsumable(itemID string, amount int) {
	if amount <= 0 || itemID == "" {
		return
	}
	if inv.Consumables == nil {
		inv.Consumables = map[string]int{}
	}
	inv.Consumables[itemID] += amount
}

func (inv *Inventory) AddItem(item string) {
	if item == "" {
		return
	}
	for _, existing := range inv.Items {
		if existing == item {
			return
		}
	}
	inv.Items = append(inv.Items, item)
}

func (p *PetProfile) Owns(petID string) bool {
	for _, id := range p.OwnedPetIDs {
		if id == petID {
			return true
		}
	}
	return false
}

func (p *PetProfile) Unlock(petID string) {
	if petID == "" || p.Owns(petID) {
		return
	}
	p.OwnedPetIDs = append(p.OwnedPetIDs, petID)
}
