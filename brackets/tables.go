package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-progression/models"
)

// TableRow is one line of a group table.
type TableRow struct {
	ParticipantID int `json:"participant_id"`
	Played        int `json:"played"`
	Points        int `json:"points"`
	ScoreFor      int `json:"score_for"`
	ScoreAgainst  int `json:"score_against"`
}

func (r TableRow) Difference() int {
	return r.ScoreFor - r.ScoreAgainst
}

// GroupTables builds the ranked table of every group from its matches.
// Only finished matches count towards the table.
func GroupTables(matches []*models.Match, rule models.ScoringRule) map[string][]TableRow {
	rows := make(map[string]map[int]*TableRow)
	row := func(stage string, id int) *TableRow {
		if rows[stage] == nil {
			rows[stage] = make(map[int]*TableRow)
		}
		if rows[stage][id] == nil {
			rows[stage][id] = &TableRow{ParticipantID: id}
		}
		return rows[stage][id]
	}

	for _, m := range matches {
		if !m.IsGroupStage() || !m.HasBothSlots() {
			continue
		}
		a, b := row(m.Stage, *m.SlotA), row(m.Stage, *m.SlotB)
		if m.Status != models.MatchFinished || m.ScoreA == nil || m.ScoreB == nil {
			continue
		}
		sa, sb := *m.ScoreA, *m.ScoreB
		a.Played++
		b.Played++
		a.ScoreFor += sa
		a.ScoreAgainst += sb
		b.ScoreFor += sb
		b.ScoreAgainst += sa
		switch {
		case sa > sb:
			a.Points += rule.PointsWin
			b.Points += rule.PointsLoss
		case sb > sa:
			b.Points += rule.PointsWin
			a.Points += rule.PointsLoss
		default:
			a.Points += rule.PointsDraw
			b.Points += rule.PointsDraw
		}
	}

	tables := make(map[string][]TableRow, len(rows))
	for stage, byID := range rows {
		table := make([]TableRow, 0, len(byID))
		for _, r := range byID {
			table = append(table, *r)
		}
		SortTable(table)
		tables[stage] = table
	}
	return tables
}

// SortTable orders rows by points, score difference, score for, then id.
func SortTable(table []TableRow) {
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Difference() != b.Difference() {
			return a.Difference() > b.Difference()
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return a.ParticipantID < b.ParticipantID
	})
}

// QualifierOrder takes the top perGroup of each table and interleaves them
// by placement: winners of A, B, ... then runners-up of A, B, ...
func QualifierOrder(tables map[string][]TableRow, groupCount, perGroup int) []int {
	out := make([]int, 0, groupCount*perGroup)
	for place := 0; place < perGroup; place++ {
		for gi := 0; gi < groupCount; gi++ {
			table := tables[GroupLabel(gi)]
			if place < len(table) {
				out = append(out, table[place].ParticipantID)
			}
		}
	}
	return out
}

// SeedLayout arranges qualifiers for sequential pairing so that the best
// meets the worst: q0-q(n-1), q1-q(n-2)... With an odd count the middle
// qualifier is placed last and receives the bye.
func SeedLayout(qualifiers []int) []int {
	n := len(qualifiers)
	out := make([]int, 0, n)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		out = append(out, qualifiers[i], qualifiers[j])
	}
	if n%2 == 1 {
		out = append(out, qualifiers[n/2])
	}
	return out
}
