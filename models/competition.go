package models

import "time"

type CompetitionFormat string

const (
	FormatRoundRobin         CompetitionFormat = "round_robin"
	FormatSingleElimination  CompetitionFormat = "single_elimination"
	FormatGroupStageKnockout CompetitionFormat = "group_stage_knockout"
)

func (f CompetitionFormat) IsValid() bool {
	switch f {
	case FormatRoundRobin, FormatSingleElimination, FormatGroupStageKnockout:
		return true
	}
	return false
}

// HasKnockout reports whether the format ends in an elimination bracket.
func (f CompetitionFormat) HasKnockout() bool {
	return f == FormatSingleElimination || f == FormatGroupStageKnockout
}

type CompetitionStatus string

const (
	CompetitionDraft     CompetitionStatus = "draft"
	CompetitionActive    CompetitionStatus = "active"
	CompetitionCompleted CompetitionStatus = "completed"
	CompetitionCanceled  CompetitionStatus = "canceled"
)

// ScoringRule holds the points a participant earns per outcome.
type ScoringRule struct {
	PointsWin    int  `json:"points_win"`
	PointsDraw   int  `json:"points_draw"`
	PointsLoss   int  `json:"points_loss"`
	DrawsAllowed bool `json:"draws_allowed"`
}

// DefaultScoringRule is the classic 3/1/0 table.
func DefaultScoringRule() ScoringRule {
	return ScoringRule{PointsWin: 3, PointsDraw: 1, PointsLoss: 0, DrawsAllowed: true}
}

// GroupSettings only applies to FormatGroupStageKnockout.
type GroupSettings struct {
	GroupCount         int `json:"group_count"`
	QualifiersPerGroup int `json:"qualifiers_per_group"`
}

type Competition struct {
	ID                    int               `json:"id" db:"id"`
	Name                  string            `json:"name" db:"name"`
	Format                CompetitionFormat `json:"format" db:"format"`
	Status                CompetitionStatus `json:"status" db:"status"`
	Rule                  ScoringRule       `json:"scoring_rule" db:"-"`
	Groups                GroupSettings     `json:"group_settings" db:"-"`
	TotalRounds           int               `json:"total_rounds" db:"total_rounds"`
	ScheduleGeneratedAt   *time.Time        `json:"schedule_generated_at,omitempty" db:"schedule_generated_at"`
	ChampionParticipantID *int              `json:"champion_participant_id,omitempty" db:"champion_participant_id"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
}

func (c *Competition) ScheduleGenerated() bool {
	return c.ScheduleGeneratedAt != nil
}
