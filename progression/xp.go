package progression

import "github.com/Dosada05/tournament-progression/models"

// XP granted per action. Negative values are penalties.
const (
	XPNormalScore     = 30
	XPPenaltyScore    = 20
	XPFreeActionScore = 40
	XPOwnAction       = -10
	XPAssist          = 20
	XPMinorCard       = -5
	XPMajorCard       = -20
	XPWin             = 50
	XPDraw            = 20
	XPLoss            = 10
)

// ScoreXP returns the XP the scorer of an event of the given kind earns.
func ScoreXP(kind models.EventKind) int {
	switch kind {
	case models.EventPenalty:
		return XPPenaltyScore
	case models.EventFreeAction:
		return XPFreeActionScore
	case models.EventOwnAction:
		return XPOwnAction
	default:
		return XPNormalScore
	}
}

func CardXP(severity models.CardSeverity) int {
	if severity == models.CardMajor {
		return XPMajorCard
	}
	return XPMinorCard
}

// ResultXP is granted to every roster member once a match is finalized.
func ResultXP(won, drew bool) int {
	switch {
	case won:
		return XPWin
	case drew:
		return XPDraw
	default:
		return XPLoss
	}
}
