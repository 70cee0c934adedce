package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	sharedauth "offerfit-backend/internal/shared/auth"
	"offerfit-backend/internal/users"
)

type stubDirectory struct {
	user  users.User
	err   error
	calls int
}

func (s *stubDirectory) UpsertFromAuth(ctx context.Context, user users.User) error {
	s.calls++
	s.user = user
	return s.err
}

func setupGoogleRouter(t *testing.T, directory UserDirectory) (*GoogleService, *gin.Engine) {
	t.Helper()
	svc := NewGoogleService(
		"client-id", "client-secret",
		"http://localhost/api/v1/auth/google/callback",
		"http://localhost:3000/auth",
		directory,
	)
	router := gin.New()
	api := router.Group("/api/v1")
	svc.RegisterRoutes(api)
	return svc, router
}

// fakeGoogle swaps the token and userinfo endpoints for local test servers.
func fakeGoogle(t *testing.T, svc *GoogleService, infoBody string) {
	t.Helper()
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-access","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokenSrv.Close)

	infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, infoBody)
	}))
	t.Cleanup(infoSrv.Close)

	svc.oauthConfig.Endpoint = oauth2.Endpoint{
		AuthURL:  tokenSrv.URL + "/auth",
		TokenURL: tokenSrv.URL + "/token",
	}
	svc.userInfoURL = infoSrv.URL
}

const profileBody = `{"sub":"12345","email":"pat@example.com","name":"Pat Example",` +
	`"given_name":"Pat","family_name":"Example","picture":"https://img.example/p.png"}`

func TestStartRedirectsToConsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, router := setupGoogleRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if loc.Query().Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", loc.Query().Get("client_id"))
	}
	if loc.Query().Get("state") == "" {
		t.Error("expected a state parameter")
	}
}

func TestStartRequiresConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "http://localhost:3000/auth", nil)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCallbackIssuesTokenAndRecordsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	directory := &stubDirectory{}
	svc, router := setupGoogleRouter(t, directory)
	fakeGoogle(t, svc, profileBody)

	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=code-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d body=%s", resp.Code, resp.Body.String())
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if loc.Host != "localhost:3000" || loc.Path != "/auth" {
		t.Fatalf("redirect = %s, want ui redirect", loc)
	}

	claims, err := sharedauth.VerifyJWT(loc.Query().Get("token"))
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Sub != "google:12345" || claims.Email != "pat@example.com" {
		t.Fatalf("claims = %+v", claims)
	}

	if directory.calls != 1 {
		t.Fatalf("upsert calls = %d, want 1", directory.calls)
	}
	if directory.user.ID != "google:12345" || directory.user.GivenName != "Pat" || directory.user.FamilyName != "Example" {
		t.Fatalf("recorded user = %+v", directory.user)
	}
}

func TestCallbackLoginSurvivesUpsertFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	directory := &stubDirectory{err: errors.New("db down")}
	svc, router := setupGoogleRouter(t, directory)
	fakeGoogle(t, svc, profileBody)

	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=code-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302 despite upsert failure, got %d", resp.Code)
	}
	if loc, _ := url.Parse(resp.Header().Get("Location")); loc.Query().Get("token") == "" {
		t.Fatal("expected a token on the redirect")
	}
}

func TestCallbackRejectsMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, router := setupGoogleRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=code-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, router := setupGoogleRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=never-issued&code=code-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestStateConsumedOnce(t *testing.T) {
	store := newStateStore()
	store.put("state-1", time.Now().Add(time.Minute))

	if !store.consume("state-1") {
		t.Fatal("first consume should succeed")
	}
	if store.consume("state-1") {
		t.Fatal("second consume should fail")
	}
}

func TestStateExpires(t *testing.T) {
	store := newStateStore()
	store.put("state-1", time.Now().Add(-time.Second))

	if store.consume("state-1") {
		t.Fatal("expired state should not validate")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://localhost:3000/auth?next=%2Fdashboard", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("token") != "tok" || u.Query().Get("next") != "/dashboard" {
		t.Fatalf("url = %s", got)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("expected error for empty redirect url")
	}
}
