package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aryawidjaya/user-accounts/internal/application"
	"github.com/aryawidjaya/user-accounts/internal/infrastructure/memory"
	handlers "github.com/aryawidjaya/user-accounts/internal/interface/http"
	"github.com/aryawidjaya/user-accounts/internal/router"
	"github.com/aryawidjaya/user-accounts/internal/router/modules"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memory.NewUserRepository()
	svc := application.NewService(repo, application.NewUserValidator(), nil, nil, logger, nil, "")
	h := handlers.NewUserHandler(svc, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(h, nil))
	reg.RegisterAll()
	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func register(t *testing.T, engine *gin.Engine, username, email string) map[string]any {
	t.Helper()
	code, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{
		"username": username,
		"email":    email,
		"password": "Password123",
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s: status %d, message %q", username, code, env.Message)
	}
	var view map[string]any
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode user view: %v", err)
	}
	return view
}

func TestRegisterEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "Password123",
	})
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (message %q)", code, env.Message)
	}
	if !env.Success {
		t.Error("success = false")
	}

	var view map[string]any
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if view["username"] != "testuser" || view["email"] != "test@example.com" {
		t.Errorf("view = %+v", view)
	}
	if view["is_active"] != false {
		t.Errorf("is_active = %v, want false", view["is_active"])
	}
	if _, ok := view["password"]; ok {
		t.Error("response leaks a password field")
	}
	if id, _ := view["id"].(string); id == "" {
		t.Error("response missing id")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{
		"username": "testuser",
		"password": "Password123",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if env.Success {
		t.Error("success = true on error")
	}
	if env.Message != "Missing required fields" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegisterInvalidJSON(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Message != "Invalid request payload" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegisterValidationMessage(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{
		"username": "testuser",
		"email":    "not-an-email",
		"password": "Password123",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if env.Message != "Invalid email format" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	engine := newTestEngine(t)
	register(t, engine, "testuser", "dup@example.com")

	code, env := doJSON(t, engine, http.MethodPost, "/api/users", gin.H{
		"username": "another",
		"email":    "dup@example.com",
		"password": "Password123",
	})
	if code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", code)
	}
	if env.Message != "User with email dup@example.com already exists" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestGetEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	view := register(t, engine, "testuser", "test@example.com")
	id := view["id"].(string)

	code, env := doJSON(t, engine, http.MethodGet, "/api/users/"+id, nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	var got map[string]any
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got["id"] != id || got["username"] != "testuser" {
		t.Errorf("view = %+v", got)
	}
}

func TestGetUnknown(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodGet, "/api/users/no-such-id", nil)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if env.Success {
		t.Error("success = true on 404")
	}
	if env.Message != "User not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestListEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	register(t, engine, "usera", "a@example.com")
	register(t, engine, "userb", "b@example.com")

	code, env := doJSON(t, engine, http.MethodGet, "/api/users", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	var views []map[string]any
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("len = %d, want 2", len(views))
	}
}

func TestUpdateEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	view := register(t, engine, "testuser", "test@example.com")
	id := view["id"].(string)

	code, env := doJSON(t, engine, http.MethodPut, "/api/users/"+id, gin.H{
		"username": "renamed",
	})
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (message %q)", code, env.Message)
	}
	var got map[string]any
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got["username"] != "renamed" {
		t.Errorf("username = %v", got["username"])
	}
	if got["email"] != "test@example.com" {
		t.Errorf("email = %v, want unchanged", got["email"])
	}
}

func TestUpdateUnknown(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodPut, "/api/users/no-such-id", gin.H{
		"username": "whoever",
	})
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if env.Message != "User not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	view := register(t, engine, "testuser", "test@example.com")
	id := view["id"].(string)

	code, env := doJSON(t, engine, http.MethodDelete, "/api/users/"+id, nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if env.Message != "User deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}

	code, _ = doJSON(t, engine, http.MethodGet, "/api/users/"+id, nil)
	if code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", code)
	}
}

func TestDeleteUnknown(t *testing.T) {
	engine := newTestEngine(t)

	code, env := doJSON(t, engine, http.MethodDelete, "/api/users/no-such-id", nil)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if env.Message != "User not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	view := register(t, engine, "lifecycle", "life@example.com")
	id := view["id"].(string)

	if code, _ := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/users/%s", id), nil); code != http.StatusOK {
		t.Fatalf("get after register: %d", code)
	}
	if code, _ := doJSON(t, engine, http.MethodPut, "/api/users/"+id, gin.H{"email": "life2@example.com"}); code != http.StatusOK {
		t.Fatalf("update: %d", code)
	}
	if code, _ := doJSON(t, engine, http.MethodDelete, "/api/users/"+id, nil); code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	if code, _ := doJSON(t, engine, http.MethodDelete, "/api/users/"+id, nil); code != http.StatusNotFound {
		t.Fatalf("second delete: %d", code)
	}
}
