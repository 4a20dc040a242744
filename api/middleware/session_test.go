package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skbags/storefront/internal/checkout"
	"github.com/skbags/storefront/internal/session"
	"github.com/skbags/storefront/pkg/config"
)

func testManager() *session.Manager {
	return session.NewManager(
		config.SessionConfig{TTL: time.Hour, SweepInterval: time.Minute},
		func() *checkout.Submitter {
			return checkout.NewSubmitter(nil, nil, time.Second, nil, nil)
		},
		nil,
	)
}

func TestSessionMiddlewareAssignsCookie(t *testing.T) {
	mgr := testManager()
	var seen *session.Session
	handler := Session(mgr, config.SessionConfig{CookieName: "sk_session", TTL: time.Hour}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = SessionFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == nil {
		t.Fatal("handler should see a session")
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == "sk_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	if cookie.Value != seen.ID {
		t.Fatalf("cookie %q does not match session %q", cookie.Value, seen.ID)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestSessionMiddlewareReusesExistingSession(t *testing.T) {
	mgr := testManager()
	var first, second *session.Session
	handler := Session(mgr, config.SessionConfig{CookieName: "sk_session", TTL: time.Hour}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if first == nil {
				first = SessionFromContext(r.Context())
				return
			}
			second = SessionFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Result().Cookies() {
		again.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), again)

	if second == nil || second != first {
		t.Fatal("expected the same session on the second request")
	}

	if mgr.Len() != 1 {
		t.Fatalf("expected one live session, got %d", mgr.Len())
	}
}

func TestSessionFromContextMissing(t *testing.T) {
	if SessionFromContext(nil) != nil {
		t.Fatal("nil context should yield nil session")
	}
}
