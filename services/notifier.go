package services

// Notifier pushes competition updates to subscribers. It is called after a
// transaction commits and must not block.
type Notifier interface {
	Publish(competitionID int, eventType string, payload interface{})
}

const (
	EventScheduleGenerated = "schedule_generated"
	EventMatchFinalized    = "match_finalized"
	EventByesAdvanced      = "byes_advanced"
	EventKnockoutSeeded    = "knockout_seeded"
	EventScoreRecorded     = "score_recorded"
	EventScoreReversed     = "score_reversed"
	EventCardRecorded      = "card_recorded"
	EventCardReversed      = "card_reversed"
	EventCompetitionWon    = "competition_won"
)

type nopNotifier struct{}

func (nopNotifier) Publish(int, string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
