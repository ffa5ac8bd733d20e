package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-progression/docs"
	"github.com/Dosada05/tournament-progression/handlers"
	"github.com/Dosada05/tournament-progression/middleware"
	"github.com/Dosada05/tournament-progression/realtime"
	"github.com/Dosada05/tournament-progression/repositories/memstore"
	"github.com/Dosada05/tournament-progression/services"
	"github.com/go-chi/chi/v5"
)

const testSecret = "routes-test-secret"

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newRouter() *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	hub := realtime.NewHub(logger)

	competitions := services.NewCompetitionService(store, logger)
	schedules := services.NewScheduleService(store, hub, logger)
	matches := services.NewMatchService(store, hub, logger)
	scoring := services.NewScoringService(store, hub, logger)
	progression := services.NewProgressionService(store, logger)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Competitions: handlers.NewCompetitionHandler(competitions, schedules, matches),
		Matches:      handlers.NewMatchHandler(matches, scoring, logger),
		Progression:  handlers.NewProgressionHandler(progression),
		WebSocket:    handlers.NewWebSocketHandler(hub, competitions, []string{"*"}, logger),
	}, Options{JWTSecret: testSecret, AllowedOrigins: []string{"*"}})
	return router
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	server := httptest.NewServer(newRouter())
	t.Cleanup(server.Close)

	token, err := middleware.NewToken(testSecret, "organizer-1", middleware.RoleOrganizer, nil)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	return &apiClient{t: t, server: server, token: token}
}

// do sends body as JSON and decodes the response into out when non-nil.
func (c *apiClient) do(method, path string, body interface{}, authed bool, out interface{}) int {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("NewRequest: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestCompetitionLifecycleOverHTTP(t *testing.T) {
	api := newAPI(t)

	input := map[string]interface{}{"name": "City League", "format": "round_robin"}
	if status := api.do(http.MethodPost, "/api/competitions", input, false, nil); status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create = %d, want 401", status)
	}

	var created struct {
		Competition struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		} `json:"competition"`
	}
	if status := api.do(http.MethodPost, "/api/competitions", input, true, &created); status != http.StatusCreated {
		t.Fatalf("create = %d, want 201", status)
	}
	id := created.Competition.ID
	if created.Competition.Status != "draft" {
		t.Fatalf("status = %q, want draft", created.Competition.Status)
	}

	base := fmt.Sprintf("/api/competitions/%d", id)
	if status := api.do(http.MethodPost, base+"/schedule", nil, true, nil); status != http.StatusBadRequest {
		t.Fatalf("schedule without participants = %d, want 400", status)
	}
	for _, name := range []string{"North", "South"} {
		if status := api.do(http.MethodPost, base+"/participants", map[string]string{"name": name}, true, nil); status != http.StatusCreated {
			t.Fatalf("add participant = %d, want 201", status)
		}
	}

	var schedule services.ScheduleResult
	if status := api.do(http.MethodPost, base+"/schedule", nil, true, &schedule); status != http.StatusCreated {
		t.Fatalf("schedule = %d, want 201", status)
	}
	if len(schedule.Matches) != 1 || schedule.TotalRounds != 1 {
		t.Fatalf("schedule = %+v, want one match", schedule)
	}
	if status := api.do(http.MethodPost, base+"/schedule", nil, true, nil); status != http.StatusConflict {
		t.Fatalf("second schedule = %d, want 409", status)
	}

	matchPath := fmt.Sprintf("/api/matches/%d", schedule.Matches[0].ID)
	if status := api.do(http.MethodPost, matchPath+"/finalize", map[string]int{"score_a": 1}, true, nil); status != http.StatusBadRequest {
		t.Fatalf("finalize with one score = %d, want 400", status)
	}

	var result services.FinalizeResult
	if status := api.do(http.MethodPost, matchPath+"/finalize", map[string]int{"score_a": 3, "score_b": 1}, true, &result); status != http.StatusOK {
		t.Fatalf("finalize = %d, want 200", status)
	}
	if result.Match == nil || result.Match.WinnerParticipantID == nil {
		t.Fatalf("finalize result = %+v", result)
	}
	if status := api.do(http.MethodPost, matchPath+"/finalize", map[string]int{"score_a": 3, "score_b": 1}, true, nil); status != http.StatusConflict {
		t.Fatalf("second finalize = %d, want 409", status)
	}

	var overview services.CompetitionOverview
	if status := api.do(http.MethodGet, base, nil, false, &overview); status != http.StatusOK {
		t.Fatalf("overview = %d, want 200", status)
	}
	if overview.Competition.Status != "completed" || len(overview.Standings) != 2 || overview.Standings[0].Points != 3 {
		t.Fatalf("overview = %+v", overview)
	}
}

func TestLedgerOverHTTP(t *testing.T) {
	api := newAPI(t)

	var created struct {
		Competition struct{ ID int } `json:"competition"`
	}
	api.do(http.MethodPost, "/api/competitions", map[string]string{"name": "Cup", "format": "single_elimination"}, true, &created)
	base := fmt.Sprintf("/api/competitions/%d", created.Competition.ID)

	var participant struct {
		Participant struct{ ID int } `json:"participant"`
	}
	api.do(http.MethodPost, base+"/participants", map[string]string{"name": "Reds"}, true, &participant)
	api.do(http.MethodPost, base+"/participants", map[string]string{"name": "Blues"}, true, nil)

	var competitor struct {
		Competitor struct{ ID int } `json:"competitor"`
	}
	if status := api.do(http.MethodPost, "/api/competitors", map[string]string{"name": "Ana"}, true, &competitor); status != http.StatusCreated {
		t.Fatalf("create competitor = %d", status)
	}
	rosterPath := fmt.Sprintf("/api/participants/%d/roster", participant.Participant.ID)
	roster := map[string]int{"competitor_id": competitor.Competitor.ID}
	if status := api.do(http.MethodPost, rosterPath, roster, true, nil); status != http.StatusCreated {
		t.Fatalf("roster = %d", status)
	}
	if status := api.do(http.MethodPost, rosterPath, roster, true, nil); status != http.StatusConflict {
		t.Fatalf("duplicate roster = %d, want 409", status)
	}

	var schedule services.ScheduleResult
	api.do(http.MethodPost, base+"/schedule", nil, true, &schedule)
	matchPath := fmt.Sprintf("/api/matches/%d", schedule.Matches[0].ID)

	event := map[string]interface{}{
		"scoring_competitor_id":     competitor.Competitor.ID,
		"benefiting_participant_id": participant.Participant.ID,
		"kind":                      "normal",
	}
	var recorded services.RecordEventResult
	if status := api.do(http.MethodPost, matchPath+"/events", event, true, &recorded); status != http.StatusCreated {
		t.Fatalf("record event = %d", status)
	}
	if recorded.Scorer.XPGained != 80 {
		t.Fatalf("xp gained = %d, want 80", recorded.Scorer.XPGained)
	}

	var profile services.CompetitorProfile
	progressPath := fmt.Sprintf("/api/competitors/%d/progress", competitor.Competitor.ID)
	if status := api.do(http.MethodGet, progressPath, nil, false, &profile); status != http.StatusOK {
		t.Fatalf("progress = %d", status)
	}
	if profile.Progress.XP != 80 || len(profile.Achievements) != 1 {
		t.Fatalf("profile = %+v", profile)
	}

	var stats struct {
		Stats services.CompetitionStats `json:"stats"`
	}
	if status := api.do(http.MethodGet, base+"/stats", nil, false, &stats); status != http.StatusOK {
		t.Fatalf("stats = %d", status)
	}
	if len(stats.Stats.TopScorers) != 1 || stats.Stats.TopScorers[0].Name != "Ana" || stats.Stats.TopScorers[0].Scored != 1 {
		t.Fatalf("top scorers = %+v", stats.Stats.TopScorers)
	}
	if stats.Stats.Summary.TotalScores != 1 || stats.Stats.TopScorers[0].ParticipantName != "Reds" {
		t.Fatalf("stats = %+v", stats.Stats)
	}

	eventPath := fmt.Sprintf("/api/events/%d", recorded.Event.ID)
	if status := api.do(http.MethodDelete, eventPath, nil, true, nil); status != http.StatusOK {
		t.Fatalf("reverse = %d", status)
	}
	if status := api.do(http.MethodDelete, eventPath, nil, true, nil); status != http.StatusNotFound {
		t.Fatalf("second reverse = %d, want 404", status)
	}

	// Knockout matches never end level.
	if status := api.do(http.MethodPost, matchPath+"/finalize", nil, true, nil); status != http.StatusBadRequest {
		t.Fatalf("goalless knockout finalize = %d, want 400", status)
	}
}

func TestReadOnlyEndpoints(t *testing.T) {
	api := newAPI(t)

	var level struct {
		Level            int `json:"level"`
		CurrentXPInLevel int `json:"current_xp_in_level"`
	}
	if status := api.do(http.MethodGet, "/api/levels/100", nil, false, &level); status != http.StatusOK {
		t.Fatalf("level = %d", status)
	}
	if level.Level != 2 || level.CurrentXPInLevel != 0 {
		t.Fatalf("level = %+v, want 2 with 0 in level", level)
	}
	if status := api.do(http.MethodGet, "/api/levels/abc", nil, false, nil); status != http.StatusBadRequest {
		t.Fatalf("bad xp = %d, want 400", status)
	}

	tests := []struct {
		path   string
		status int
	}{
		{"/api/competitions/999", http.StatusNotFound},
		{"/api/competitions/abc", http.StatusBadRequest},
		{"/api/competitions/999/stats", http.StatusNotFound},
		{"/api/competitions?status=bogus", http.StatusBadRequest},
		{"/api/competitions?status=active", http.StatusOK},
		{"/api/matches/999", http.StatusNotFound},
		{"/api/achievements", http.StatusOK},
		{"/ws/competitions/999", http.StatusNotFound},
		{"/healthz", http.StatusNoContent},
		{"/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		if status := api.do(http.MethodGet, tt.path, nil, false, nil); status != tt.status {
			t.Fatalf("GET %s = %d, want %d", tt.path, status, tt.status)
		}
	}
}

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger doc is not valid JSON: %v", err)
	}

	routed := make(map[string]bool)
	err := chi.Walk(newRouter(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routed[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if _, ok := doc.Paths["/competitions/{competitionID}/stats"]; !ok {
		t.Fatalf("stats endpoint missing from the swagger doc")
	}
	for path, ops := range doc.Paths {
		for method := range ops {
			key := strings.ToUpper(method) + " " + doc.BasePath + path
			if !routed[key] {
				t.Errorf("documented %s is not routed", key)
			}
		}
	}
}
