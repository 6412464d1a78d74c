package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRequireAuth_OpenWithoutHash(t *testing.T) {
	ac := NewAuthController("")
	var caller string
	h := ac.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		caller = callerFrom(r)
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/api/ticker", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if caller != "anonymous" {
		t.Errorf("Expected anonymous caller, got %q", caller)
	}
}

func TestRequireAuth_ValidKeySetsCaller(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash key: %v", err)
	}
	ac := NewAuthController(string(hash))
	var caller string
	h := ac.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		caller = callerFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ticker", nil)
	req.Header.Set("X-API-Key", "admin-key")
	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if caller != "admin" {
		t.Errorf("Expected admin caller, got %q", caller)
	}
}

func TestRequireAuth_RejectsBadKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash key: %v", err)
	}
	ac := NewAuthController(string(hash))
	called := false
	h := ac.RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/ticker", nil)
	req.Header.Set("X-API-Key", "admin-kex")
	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if called {
		t.Error("Handler must not run for a bad key")
	}
}
