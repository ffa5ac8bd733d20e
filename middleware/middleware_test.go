package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := GetSubjectFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(subject))
	})
	return Authenticate(testSecret)(RequireRole(RoleOrganizer, RoleAdmin)(ok))
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	organizer, err := NewToken(testSecret, "alice", RoleOrganizer, nil)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	viewer, _ := NewToken(testSecret, "bob", RoleViewer, nil)
	forged, _ := NewToken("other-secret", "mallory", RoleAdmin, nil)
	expired, _ := NewToken(testSecret, "carol", RoleAdmin, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	unknownRole, _ := NewToken(testSecret, "dave", "root", nil)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"organizer", "Bearer " + organizer, http.StatusOK, "alice"},
		{"viewer", "Bearer " + viewer, http.StatusForbidden, ""},
		{"forged signature", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"unknown role", "Bearer " + unknownRole, http.StatusUnauthorized, ""},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + organizer, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestRejectsUnexpectedSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "eve", "role": RoleAdmin})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRoutePatternUnmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	if got := routePattern(req); got != "unmatched" {
		t.Fatalf("routePattern = %q, want unmatched", got)
	}
}
