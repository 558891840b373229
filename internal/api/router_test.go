package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
	"github.com/sitecrew/workforce-scheduler/internal/pkg/token"
)

const testSecret = "router-secret"

type sessionTable map[string]domain.Session

func (s sessionTable) Lookup(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

type fakeAuth struct{ ports.AuthService }

func (fakeAuth) SignIn(_ context.Context, email, _ string) (*ports.SignInResult, error) {
	if email != "boss@site.test" {
		return nil, domain.ErrInvalidCredentials
	}
	u := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	return &ports.SignInResult{Token: "tok", SessionID: "s-admin", User: u, Redirect: u.LandingPath()}, nil
}

type fakeProjects struct{ ports.ProjectService }

func (fakeProjects) Get(_ context.Context, id string) (*domain.Project, error) {
	if id == "broken" {
		return nil, fmt.Errorf("find project: %w", domain.ErrUnavailable)
	}
	if id == "boom" {
		return nil, fmt.Errorf("decode: unexpected EOF")
	}
	return nil, fmt.Errorf("find project: %w", domain.ErrProjectNotFound)
}

func (fakeProjects) Accessible(_ context.Context, userID string, _ domain.Role) ([]domain.Project, error) {
	return []domain.Project{{ID: "p-" + userID}}, nil
}

type fakeAssignments struct{ ports.AssignmentService }

func (fakeAssignments) Create(context.Context, ports.CreateAssignmentInput) (*domain.Assignment, error) {
	return nil, domain.ErrDuplicateAssignment
}

func (fakeAssignments) CreateBatch(context.Context, ports.BatchAssignmentInput) ([]domain.Assignment, error) {
	return nil, domain.ErrEmptySelection
}

func newTestRouter(t *testing.T) (*echo.Echo, map[string]string) {
	t.Helper()
	sessions := sessionTable{
		"s-admin":  {ID: "s-admin", UserID: "admin-1", Role: domain.RoleAdmin},
		"s-worker": {ID: "s-worker", UserID: "worker-1", Role: domain.RoleWorker},
	}
	tokens := make(map[string]string)
	for id, sess := range sessions {
		raw, err := token.Issue(testSecret, sess.UserID, id, string(sess.Role), time.Now(), time.Hour)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		tokens[string(sess.Role)] = raw
	}

	e := NewRouter(Deps{
		Log:            zerolog.Nop(),
		JWTSecret:      testSecret,
		Sessions:       sessions,
		Auth:           fakeAuth{},
		Projects:       fakeProjects{},
		Assignments:    fakeAssignments{},
		DisableMetrics: true,
	})
	return e, tokens
}

func do(e *echo.Echo, method, path, tok, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestRouter_Health(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness without probes = %d", rec.Code)
	}
}

func TestRouter_SignInIsPublic(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/auth/sign-in", "", `{"email":"boss@site.test","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["redirect"] != "/admin" {
		t.Fatalf("unexpected body: %v", body)
	}

	rec = do(e, http.MethodPost, "/auth/sign-in", "", `{"email":"who@site.test","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "invalid credentials" {
		t.Fatalf("expected 401 invalid credentials, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/v1/me/projects", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorOf(t, rec); msg != "missing authorization header" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_WorkerCannotReachAdminRoutes(t *testing.T) {
	e, tokens := newTestRouter(t)

	for _, path := range []string{"/v1/users", "/v1/projects", "/v1/calendar", "/v1/dashboard/stats", "/v1/activity"} {
		rec := do(e, http.MethodGet, path, tokens["worker"], "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, rec.Code)
		}
	}
}

func TestRouter_WorkerSeesOwnProjects(t *testing.T) {
	e, tokens := newTestRouter(t)

	rec := do(e, http.MethodGet, "/v1/me/projects", tokens["worker"], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"p-worker-1"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	e, tokens := newTestRouter(t)
	admin := tokens["admin"]

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"not found", http.MethodGet, "/v1/projects/nope", "", http.StatusNotFound, "project not found"},
		{"unavailable", http.MethodGet, "/v1/projects/broken", "", http.StatusServiceUnavailable, "service unavailable"},
		{"unexpected", http.MethodGet, "/v1/projects/boom", "", http.StatusInternalServerError, "internal server error"},
		{"duplicate", http.MethodPost, "/v1/assignments", `{"user_id":"u","project_id":"p","assignment_date":"2024-03-10"}`, http.StatusConflict, domain.ErrDuplicateAssignment.Error()},
		{"empty selection", http.MethodPost, "/v1/assignments/batch", `{"project_id":"p","assignment_date":"2024-03-10","user_ids":[]}`, http.StatusUnprocessableEntity, domain.ErrEmptySelection.Error()},
		{"validation", http.MethodPost, "/v1/assignments", `{"project_id":"p"}`, http.StatusUnprocessableEntity, "user_id is required; assignment_date is required"},
		{"malformed body", http.MethodPost, "/v1/assignments", `{`, http.StatusBadRequest, "invalid payload"},
		{"unknown route", http.MethodGet, "/v1/nowhere", "", http.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.path, admin, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if msg := errorOf(t, rec); msg != tc.msg {
				t.Fatalf("message = %q, want %q", msg, tc.msg)
			}
		})
	}
}

func TestRouter_RevokedSessionIsRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	raw, err := token.Issue(testSecret, "admin-1", "s-gone", "admin", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := do(e, http.MethodGet, "/v1/me/projects", raw, "")
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "session expired" {
		t.Fatalf("expected 401 session expired, got %d %s", rec.Code, rec.Body.String())
	}
}
