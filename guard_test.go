package controltower

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/towerops/controltower/session"
)

const testToken = "test-bearer-token-abc123"

var testIdentity = Identity{
	ID:        7,
	Username:  "ops.meera",
	Email:     "meera@example.com",
	FirstName: "Meera",
	LastName:  "Nair",
	RoleCode:  "operations-manager",
}

func loginHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.UsernameOrEmail != "ops.meera" || req.Password != "correct-password" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: testToken,
			TokenType:   "bearer",
			User:        testIdentity,
		})
	}
}

func newTestGuard(t *testing.T, backendURL string) (*Guard, *session.FileStore) {
	t.Helper()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.rec"))
	g, err := New().
		WithBackendURL(backendURL).
		WithSessionStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g, store
}

func mustLogin(t *testing.T, g *Guard) {
	t.Helper()
	if _, err := g.Login(context.Background(), "ops.meera", "correct-password"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestInitializeRestoresPersistedSession(t *testing.T) {
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.rec"))
	err := store.Save(context.Background(), &session.Record{
		Token:    testToken,
		Identity: testIdentity,
		SavedAt:  time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("seeding store failed: %v", err)
	}

	g, err := New().
		WithBackendURL("http://localhost:9").
		WithSessionStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !g.IsAuthenticated() {
		t.Fatal("expected authenticated after restore")
	}

	id, ok := g.CurrentIdentity()
	if !ok || id.Username != "ops.meera" {
		t.Fatalf("expected restored identity, got %+v ok=%v", id, ok)
	}
	cred, ok := g.Credential()
	if !ok || cred != testToken {
		t.Fatalf("expected restored credential, got %q ok=%v", cred, ok)
	}
}

func TestInitializeRunsExactlyOnce(t *testing.T) {
	g, store := newTestGuard(t, "http://localhost:9")

	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if g.IsAuthenticated() {
		t.Fatal("expected unauthenticated with empty store")
	}

	// A record appearing after resolution must not be picked up.
	err := store.Save(context.Background(), &session.Record{
		Token:    testToken,
		Identity: testIdentity,
		SavedAt:  time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("seeding store failed: %v", err)
	}

	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if g.IsAuthenticated() {
		t.Fatal("expected second Initialize to be a no-op")
	}
}

func TestInitializeDiscardsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.rec")
	if err := os.WriteFile(path, []byte("\x01not json at all"), 0o600); err != nil {
		t.Fatalf("writing corrupt record failed: %v", err)
	}

	store := session.NewFileStore(path)
	g, err := New().
		WithBackendURL("http://localhost:9").
		WithSessionStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if g.IsAuthenticated() {
		t.Fatal("expected corrupt record to resolve unauthenticated")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected corrupt record file to be removed")
	}
	if got := g.metrics.Value(MetricSessionDiscarded); got != 1 {
		t.Fatalf("expected 1 discard, got %d", got)
	}
}

func TestLoginCommitsSessionAtomically(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, store := newTestGuard(t, srv.URL)

	id, err := g.Login(context.Background(), "ops.meera", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if id.Username != "ops.meera" || id.RoleCode != "operations-manager" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if !g.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected persisted record, got %v", err)
	}
	if rec.Token != testToken || rec.Identity.Username != "ops.meera" {
		t.Fatalf("persisted record mismatch: %+v", rec)
	}
}

func TestLoginRejectedSurfacesBackendDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, store := newTestGuard(t, srv.URL)

	_, err := g.Login(context.Background(), "ops.meera", "wrong-password")
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("expected backend wording verbatim, got %q", err.Error())
	}
	if g.IsAuthenticated() {
		t.Fatal("expected no session after rejected login")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected empty store, got %v", err)
	}
}

func TestLoginBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	g, _ := newTestGuard(t, srv.URL)

	_, err := g.Login(context.Background(), "ops.meera", "correct-password")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if got := g.metrics.Value(MetricLoginUnreachable); got != 1 {
		t.Fatalf("expected 1 unreachable login, got %d", got)
	}
}

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	mux.HandleFunc("/api/shipments", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]ShipmentRow{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, _ := newTestGuard(t, srv.URL)
	mustLogin(t, g)

	if _, err := g.Client().Shipments(context.Background(), "", "", 0); err != nil {
		t.Fatalf("shipments failed: %v", err)
	}
	if gotAuth != "Bearer "+testToken {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	mux.HandleFunc("/api/shipments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, store := newTestGuard(t, srv.URL)
	mustLogin(t, g)

	cleared := make(chan struct{}, 4)
	g.OnSessionCleared(func() { cleared <- struct{}{} })

	_, err := g.Client().Shipments(context.Background(), "", "", 0)
	if err == nil {
		t.Fatal("expected error from 401 response")
	}
	if !errors.Is(err, ErrUnauthorized) && !errors.Is(err, ErrSessionInvalidated) {
		t.Fatalf("expected unauthorized or invalidated error, got %v", err)
	}

	select {
	case <-cleared:
	case <-time.After(2 * time.Second):
		t.Fatal("expected cleared hook to fire")
	}

	if g.IsAuthenticated() {
		t.Fatal("expected session cleared after 401")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected durable storage cleared, got %v", err)
	}
	if got := g.metrics.Value(MetricUnauthorizedSignal); got != 1 {
		t.Fatalf("expected 1 unauthorized signal, got %d", got)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, store := newTestGuard(t, srv.URL)
	mustLogin(t, g)

	if err := g.Logout(context.Background()); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := g.Logout(context.Background()); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}

	if g.IsAuthenticated() {
		t.Fatal("expected unauthenticated after logout")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected empty store after logout, got %v", err)
	}
}

func TestInvalidationCancelsInFlightRequests(t *testing.T) {
	started := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", loginHandler(t))
	mux.HandleFunc("/api/shipments", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, _ := newTestGuard(t, srv.URL)
	mustLogin(t, g)

	result := make(chan error, 1)
	go func() {
		_, err := g.Client().Shipments(context.Background(), "", "", 0)
		result <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached backend")
	}

	if err := g.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	select {
	case err := <-result:
		if !errors.Is(err, ErrSessionInvalidated) {
			t.Fatalf("expected ErrSessionInvalidated, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}
}

func TestTokenClaimsRequiresSession(t *testing.T) {
	g, _ := newTestGuard(t, "http://localhost:9")

	if _, err := g.TokenClaims(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
