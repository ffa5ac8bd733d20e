package models

import "time"

// Competitor is an individual who scores, assists and collects progress.
type Competitor struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CompetitorStats struct {
	Scored            int `json:"scored" db:"scored"`
	Assisted          int `json:"assisted" db:"assisted"`
	CardsMinor        int `json:"cards_minor" db:"cards_minor"`
	CardsMajor        int `json:"cards_major" db:"cards_major"`
	GamesPlayed       int `json:"games_played" db:"games_played"`
	Wins              int `json:"wins" db:"wins"`
	PenaltiesScored   int `json:"penalties_scored" db:"penalties_scored"`
	FreeActionsScored int `json:"free_actions_scored" db:"free_actions_scored"`
}

type CompetitorProgress struct {
	CompetitorID int             `json:"competitor_id" db:"competitor_id"`
	Stats        CompetitorStats `json:"stats"`
	XP           int             `json:"xp" db:"xp"`
	XPDebt       int             `json:"xp_debt" db:"xp_debt"`
	Achievements []string        `json:"achievements" db:"achievements"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

func (p *CompetitorProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (p *CompetitorProgress) RemoveAchievement(id string) {
	kept := p.Achievements[:0]
	for _, a := range p.Achievements {
		if a != id {
			kept = append(kept, a)
		}
	}
	p.Achievements = kept
}

// AddXP applies delta and returns the part that counts on the ledger.
// Credits pay off XPDebt before they raise XP. Penalties are floored at zero
// and only the absorbed part is returned.
func (p *CompetitorProgress) AddXP(delta int) int {
	if delta >= 0 {
		paid := min(p.XPDebt, delta)
		p.XPDebt -= paid
		p.XP += delta - paid
		return delta
	}
	before := p.XP
	p.XP = max(p.XP+delta, 0)
	return p.XP - before
}

// RevertXP undoes a ledger delta previously returned by AddXP. Taking back a
// credit that XP can no longer cover leaves the shortfall as XPDebt, so XP
// minus XPDebt always equals the sum of the remaining ledger.
func (p *CompetitorProgress) RevertXP(applied int) {
	if applied <= 0 {
		p.AddXP(-applied)
		return
	}
	p.XP -= applied
	if p.XP < 0 {
		p.XPDebt -= p.XP
		p.XP = 0
	}
}
