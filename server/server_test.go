package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blossomhq/blossom/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.ServerConfig{
		DatabaseURL: ":memory:",
		JWTSecret:   "test-secret",
		AccessTTL:   time.Hour,
		RefreshTTL:  2 * time.Hour,
		BcryptCost:  4,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// call performs a request against the server and decodes the JSON body.
func call(t *testing.T, s *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, decoded
}

// registerUser creates an account over the API and returns the token pair.
func registerUser(t *testing.T, s *Server, email string) (access, refresh string) {
	t.Helper()
	code, body := call(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "Blossom1",
	})
	if code != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", code, body)
	}
	tokens, ok := body["tokens"].(map[string]any)
	if !ok {
		t.Fatalf("no tokens in %v", body)
	}
	access, _ = tokens["accessToken"].(string)
	refresh, _ = tokens["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("incomplete token pair: %v", tokens)
	}
	return access, refresh
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, body := call(t, s, http.MethodGet, "/health", "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "healthy" {
		t.Errorf("body = %v", body)
	}
}

func TestRootPersonalization(t *testing.T) {
	s := newTestServer(t)

	code, body := call(t, s, http.MethodGet, "/", "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["message"] != "Welcome to the Blossom Task Manager API!" {
		t.Errorf("anonymous message = %v", body["message"])
	}

	access, _ := registerUser(t, s, "hanami@example.com")
	_, body = call(t, s, http.MethodGet, "/", access, nil)
	if body["message"] != "Welcome back to your garden, hanami!" {
		t.Errorf("personalized message = %v", body["message"])
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "sakura@example.com")

	// Duplicate registration conflicts.
	code, body := call(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "sakura@example.com", "password": "Blossom1",
	})
	if code != http.StatusConflict || body["status"] != "error" {
		t.Fatalf("duplicate register: %d %v", code, body)
	}

	// Unknown email is 404, wrong password 401.
	code, _ = call(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "Blossom1",
	})
	if code != http.StatusNotFound {
		t.Fatalf("unknown email status = %d", code)
	}
	code, _ = call(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sakura@example.com", "password": "Wrong999",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", code)
	}

	code, body = call(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sakura@example.com", "password": "Blossom1",
	})
	if code != http.StatusOK || body["status"] != "success" {
		t.Fatalf("login: %d %v", code, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != "sakura@example.com" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash in response")
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash in response")
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	code, body := call(t, s, http.MethodGet, "/api/tasks", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", code)
	}
	if body["status"] != "error" {
		t.Errorf("body = %v", body)
	}

	code, _ = call(t, s, http.MethodGet, "/api/tasks", "garbage.token.here", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d", code)
	}

	// A refresh token is not an access token.
	_, refresh := registerUser(t, s, "sakura@example.com")
	code, _ = call(t, s, http.MethodGet, "/api/tasks", refresh, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("refresh token status = %d", code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, refresh := registerUser(t, s, "sakura@example.com")

	code, body := call(t, s, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if code != http.StatusOK {
		t.Fatalf("refresh: %d %v", code, body)
	}
	access, _ := body["accessToken"].(string)
	if access == "" {
		t.Fatalf("no access token in %v", body)
	}

	// The fresh access token works against a protected route.
	code, _ = call(t, s, http.MethodGet, "/api/tasks", access, nil)
	if code != http.StatusOK {
		t.Fatalf("refreshed token rejected: %d", code)
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	access, _ := registerUser(t, s, "sakura@example.com")

	code, body := call(t, s, http.MethodPost, "/api/tasks", access, map[string]any{
		"title":    "Plant a sapling",
		"priority": "high",
		"dueDate":  "2099-04-05",
		"subtasks": []map[string]any{{"title": "Dig a hole"}},
	})
	if code != http.StatusCreated {
		t.Fatalf("create: %d %v", code, body)
	}
	task, _ := body["task"].(map[string]any)
	taskID, _ := task["id"].(string)
	if taskID == "" {
		t.Fatalf("no task id in %v", body)
	}

	code, body = call(t, s, http.MethodGet, "/api/tasks", access, nil)
	if code != http.StatusOK {
		t.Fatalf("list: %d %v", code, body)
	}
	meta, _ := body["meta"].(map[string]any)
	if meta["count"] != float64(1) {
		t.Errorf("meta = %v", meta)
	}

	code, body = call(t, s, http.MethodPatch, "/api/tasks/"+taskID+"/toggle", access, map[string]any{
		"completed": true,
	})
	if code != http.StatusOK {
		t.Fatalf("toggle: %d %v", code, body)
	}
	task, _ = body["task"].(map[string]any)
	if task["status"] != "completed" {
		t.Errorf("status = %v", task["status"])
	}

	code, body = call(t, s, http.MethodPost, "/api/tasks/archive/completed", access, nil)
	if code != http.StatusOK {
		t.Fatalf("archive: %d %v", code, body)
	}

	code, body = call(t, s, http.MethodGet, "/api/tasks/archive/list", access, nil)
	if code != http.StatusOK {
		t.Fatalf("archive list: %d %v", code, body)
	}

	code, body = call(t, s, http.MethodPatch, "/api/tasks/"+taskID+"/restore", access, nil)
	if code != http.StatusOK {
		t.Fatalf("restore: %d %v", code, body)
	}
	task, _ = body["task"].(map[string]any)
	if task["status"] != "pending" {
		t.Errorf("restored status = %v", task["status"])
	}

	code, _ = call(t, s, http.MethodDelete, "/api/tasks/"+taskID, access, nil)
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, _ = call(t, s, http.MethodGet, "/api/tasks/"+taskID, access, nil)
	if code != http.StatusNotFound {
		t.Fatalf("deleted task status = %d", code)
	}
}

func TestCrossUserTaskIsNotFound(t *testing.T) {
	s := newTestServer(t)
	ownerAccess, _ := registerUser(t, s, "owner@example.com")
	intruderAccess, _ := registerUser(t, s, "intruder@example.com")

	code, body := call(t, s, http.MethodPost, "/api/tasks", ownerAccess, map[string]any{
		"title": "Private petal",
	})
	if code != http.StatusCreated {
		t.Fatalf("create: %d %v", code, body)
	}
	task, _ := body["task"].(map[string]any)
	taskID, _ := task["id"].(string)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks/" + taskID},
		{http.MethodDelete, "/api/tasks/" + taskID},
		{http.MethodPatch, "/api/tasks/" + taskID + "/restore"},
	} {
		code, _ := call(t, s, probe.method, probe.path, intruderAccess, nil)
		if code != http.StatusNotFound {
			t.Errorf("%s %s as intruder = %d, want 404", probe.method, probe.path, code)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	access, _ := registerUser(t, s, "sakura@example.com")

	call(t, s, http.MethodPost, "/api/tasks", access, map[string]any{"title": "a", "status": "completed"})
	call(t, s, http.MethodPost, "/api/tasks", access, map[string]any{"title": "b"})

	code, body := call(t, s, http.MethodGet, "/api/tasks/stats", access, nil)
	if code != http.StatusOK {
		t.Fatalf("stats: %d %v", code, body)
	}
	stats, _ := body["stats"].(map[string]any)
	if stats["total"] != float64(2) || stats["completed"] != float64(1) {
		t.Errorf("stats = %v", stats)
	}
	if stats["completionRate"] != float64(50) {
		t.Errorf("completionRate = %v", stats["completionRate"])
	}
}

func TestPasswordTipsIsPublic(t *testing.T) {
	s := newTestServer(t)
	code, body := call(t, s, http.MethodGet, "/api/auth/password-tips", "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	tips, _ := body["tips"].([]any)
	if len(tips) == 0 {
		t.Errorf("body = %v", body)
	}
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	s := newTestServer(t)
	access, _ := registerUser(t, s, "sakura@example.com")

	code, body := call(t, s, http.MethodPost, "/api/tasks", access, map[string]any{
		"title": "", "priority": "urgent",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", code, body)
	}
	if body["status"] != "error" || body["suggestion"] == "" {
		t.Errorf("error envelope = %v", body)
	}
}
