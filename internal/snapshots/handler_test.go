package snapshots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/shared/server/middleware"
)

func setupSnapshotRouter(t *testing.T, reader EvaluationReader) (*gin.Engine, *MemoryRepo, *Service) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Evals: reader}
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(middleware.Auth())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, repo, svc
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

const guestUserID = "guest:test-guest"

func TestCaptureSnapshotReturnsCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubReader{record: evaluatedRecord(t, guestUserID)}
	router, repo, _ := setupSnapshotRouter(t, reader)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluations/eval-1/snapshot", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", resp.Code, resp.Body.String())
	}

	var created struct {
		SnapshotID     string `json:"snapshotId"`
		EvaluationID   string `json:"evaluationId"`
		OfferID        string `json:"offerId"`
		RulesetVersion string `json:"rulesetVersion"`
		Archived       bool   `json:"archived"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.SnapshotID == "" {
		t.Fatalf("expected snapshotId")
	}
	if created.EvaluationID != "eval-1" || created.OfferID != "offer-1" {
		t.Fatalf("expected lineage fields, got %+v", created)
	}
	if created.Archived {
		t.Fatalf("expected archived=false without object store")
	}

	if _, err := repo.GetByID(context.Background(), guestUserID, created.SnapshotID); err != nil {
		t.Fatalf("expected stored snapshot: %v", err)
	}
}

func TestCaptureSnapshotUnknownEvaluation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubReader{err: ErrNotFound}
	router, _, _ := setupSnapshotRouter(t, reader)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluations/missing/snapshot", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetSnapshotDocumentRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubReader{record: evaluatedRecord(t, guestUserID)}
	router, _, svc := setupSnapshotRouter(t, reader)

	snapshot, err := svc.Capture(context.Background(), guestUserID, "eval-1")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/"+snapshot.ID+"/document", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", resp.Code, resp.Body.String())
	}

	var doc struct {
		SchemaVersion int    `json:"schemaVersion"`
		SnapshotID    string `json:"snapshotId"`
		Offer         struct {
			OfferType string `json:"offer_type"`
		} `json:"offer"`
		Result struct {
			Alignment      int    `json:"alignment"`
			RulesetVersion string `json:"ruleset_version"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.SchemaVersion != SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", SchemaVersion, doc.SchemaVersion)
	}
	if doc.SnapshotID != snapshot.ID {
		t.Fatalf("expected snapshot id in document")
	}
	if doc.Offer.OfferType != "consulting" {
		t.Fatalf("expected offer config in document, got %q", doc.Offer.OfferType)
	}
	if doc.Result.RulesetVersion == "" {
		t.Fatalf("expected result ruleset version in document")
	}
}

func TestGetSnapshotHidesForeignRows(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubReader{record: evaluatedRecord(t, "someone-else")}
	router, _, svc := setupSnapshotRouter(t, reader)

	snapshot, err := svc.Capture(context.Background(), "someone-else", "eval-1")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/"+snapshot.ID, nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListSnapshotsBlocksGuests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubReader{record: evaluatedRecord(t, guestUserID)}
	router, _, _ := setupSnapshotRouter(t, reader)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshots", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "login_required" {
		t.Fatalf("expected login_required, got %q", envelope.Error.Code)
	}
}
