package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/uzak0209/echo/internal/config"
	"github.com/uzak0209/echo/internal/store/memory"
)

func testServer() *Server {
	mem := memory.New()
	stores := Stores{Posts: mem.Posts(), Users: mem.Users(), Reactions: mem.Reactions()}
	return NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0", ViewThreshold: 100, TimelineLimit: 30}, stores, nil)
}

func TestHealthRoute(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	s := testServer()

	for _, route := range []struct{ method, path string }{
		{"POST", "/posts"},
		{"GET", "/posts/timeline"},
		{"PUT", "/posts/abc/reactions"},
		{"GET", "/me/expression"},
		{"POST", "/auth/logout"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", route.method, route.path, err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestSignupThenPostFlow(t *testing.T) {
	s := testServer()

	body, _ := json.Marshal(map[string]string{"display_name": "mallory", "password": "hunter2"})
	req := httptest.NewRequest("POST", "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var creds struct {
		UserID      string `json:"user_id"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if creds.AccessToken == "" {
		t.Fatalf("expected access token in signup response")
	}

	body, _ = json.Marshal(map[string]string{"content": "hello"})
	req = httptest.NewRequest("POST", "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	resp, err = s.App.Test(req)
	if err != nil {
		t.Fatalf("create post request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 for post creation, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	resp, err = s.App.Test(req)
	if err != nil {
		t.Fatalf("list posts request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 listing own posts, got %d", resp.StatusCode)
	}
}
