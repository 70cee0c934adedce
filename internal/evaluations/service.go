package evaluations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/llm"
	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/queue"
	"offerfit-backend/internal/shared/metrics"
	"offerfit-backend/internal/shared/telemetry"
	"offerfit-backend/internal/usage"
)

// Service contains business logic for evaluations. Scoring is synchronous;
// phrasing runs through the job queue when one is configured, otherwise in
// a background goroutine.
type Service struct {
	Repo          Repo
	Offers        offers.Repo
	Usage         *usage.Service
	Rules         *ruleset.RuleSet
	LLM           llm.Client
	JobQueue      queue.Client
	Provider      string
	Model         string
	PromptVersion string
}

// Create scores an offer's configuration, persists the result, and kicks
// off the phrasing pass. The returned evaluation already carries the full
// deterministic result.
func (s *Service) Create(ctx context.Context, userID, offerID string) (Evaluation, error) {
	if offerID == "" || userID == "" {
		return Evaluation{}, errors.New("offerID and userID are required")
	}

	off, err := s.Offers.GetByID(ctx, userID, offerID)
	if err != nil {
		return Evaluation{}, err
	}

	if s.Usage != nil {
		ok, _, err := s.Usage.CanConsume(ctx, userID, 1)
		if err != nil {
			return Evaluation{}, err
		}
		if !ok {
			return Evaluation{}, usage.ErrLimitReached
		}
	}

	startedAt := time.Now().UTC()
	metrics.IncEvaluationStarted()
	result, err := engine.Evaluate(off.Config, s.Rules)
	if err != nil {
		metrics.IncEvaluationFailed()
		return Evaluation{}, err
	}
	scoredAt := time.Now().UTC()
	metrics.IncEvaluationCompleted()
	metrics.ObserveEvaluationDurationMs(durationMs(&startedAt, &scoredAt))

	ev := Evaluation{
		ID:             uuid.NewString(),
		OfferID:        off.ID,
		UserID:         userID,
		Config:         off.Config,
		RulesetVersion: result.RulesetVersion,
		PromptVersion:  normalizePromptVersion(s.PromptVersion),
		Provider:       normalizeProvider(s.Provider),
		Model:          s.Model,
		Status:         StatusScored,
		Result:         result,
		CreatedAt:      scoredAt,
	}

	if err := s.Repo.Create(ctx, ev); err != nil {
		return Evaluation{}, err
	}

	if s.Usage != nil {
		if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
			return Evaluation{}, err
		}
	}

	telemetry.Info("evaluation.scored", map[string]any{
		"request_id":    requestIDFromContext(ctx),
		"user_id":       userID,
		"offer_id":      off.ID,
		"evaluation_id": ev.ID,
		"readiness":     string(result.Readiness),
		"alignment":     result.Alignment,
		"bottleneck":    string(result.Bottleneck.Dimension),
		"duration_ms":   durationMs(&startedAt, &scoredAt),
	})

	s.kickPhrasing(ctx, ev)

	return ev, nil
}

// Get returns an evaluation owned by the user.
func (s *Service) Get(ctx context.Context, userID, evaluationID string) (Evaluation, error) {
	if evaluationID == "" || userID == "" {
		return Evaluation{}, errors.New("evaluationID and userID are required")
	}
	ev, err := s.Repo.GetByID(ctx, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	if ev.UserID != userID {
		return Evaluation{}, ErrNotFound
	}
	return ev, nil
}

// List returns the user's evaluations ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Evaluation, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// ListForOffer returns the user's evaluations of one offer, newest first.
func (s *Service) ListForOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]Evaluation, error) {
	if userID == "" || offerID == "" {
		return nil, errors.New("userID and offerID are required")
	}
	return s.Repo.ListByOffer(ctx, userID, offerID, limit, offset)
}

// RetryPhrasing restarts the phrasing pass on an evaluation whose prose
// never landed. Completed evaluations are returned as-is.
func (s *Service) RetryPhrasing(ctx context.Context, userID, evaluationID string) (Evaluation, error) {
	ev, err := s.Get(ctx, userID, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	switch ev.Status {
	case StatusCompleted:
		return ev, nil
	case StatusPhrasing:
		return ev, ErrPhrasingInProgress
	}
	if ev.Result == nil {
		return ev, ErrNoResult
	}
	if s.JobQueue == nil && s.LLM == nil {
		return ev, ErrJobQueueNotConfigured
	}
	s.kickPhrasing(ctx, ev)
	return ev, nil
}

func normalizeProvider(provider string) string {
	if strings.TrimSpace(provider) == "" {
		return "openai"
	}
	return provider
}

func normalizePromptVersion(version string) string {
	if strings.TrimSpace(version) == "" {
		return "phrase_v1"
	}
	return strings.TrimSpace(version)
}

func (s *Service) kickPhrasing(ctx context.Context, ev Evaluation) {
	if s.JobQueue == nil && s.LLM == nil {
		return
	}
	if s.JobQueue != nil {
		msg := queue.Message{
			EvaluationID: ev.ID,
			RequestID:    requestIDFromContext(ctx),
			EnqueuedAt:   time.Now().UTC().Format(time.RFC3339),
			Version:      1,
		}
		err := s.JobQueue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Error("phrasing.enqueue_failed", map[string]any{
			"request_id":    requestIDFromContext(ctx),
			"evaluation_id": ev.ID,
			"error":         sanitizeError(err),
		})
		if s.LLM == nil {
			return
		}
	}
	go func(ctx context.Context, evaluationID string) {
		_ = s.ProcessPhrasing(ctx, evaluationID)
	}(backgroundWithRequestID(ctx), ev.ID)
}

// ProcessPhrasing runs the phrasing pass for one evaluation. It is called
// inline by kickPhrasing and by the queue worker; redelivery of an already
// completed evaluation is a no-op.
func (s *Service) ProcessPhrasing(ctx context.Context, evaluationID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			s.failPhrasing(ctx, evaluationID, "", "", err, nil)
		}
	}()

	ev, err := s.Repo.GetByID(ctx, evaluationID)
	if err != nil {
		return fmt.Errorf("evaluation lookup id=%s: %w", evaluationID, err)
	}
	if ev.Status == StatusCompleted {
		return nil
	}
	if ev.Result == nil {
		s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, ErrNoResult, nil)
		return ErrNoResult
	}

	startedAt := time.Now().UTC()
	if err := s.Repo.UpdatePhrasing(ctx, PhrasingUpdate{ID: ev.ID, Status: StatusPhrasing}); err != nil {
		err = fmt.Errorf("set phrasing failed: %w", err)
		s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, err, &startedAt)
		return err
	}
	metrics.IncPhrasingStarted()
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           ev.UserID,
		"offer_id":          ev.OfferID,
		"evaluation_id":     ev.ID,
		"status":            StatusPhrasing,
		"status_transition": ev.Status + "->" + StatusPhrasing,
	})

	if len(ev.Result.Recommendations) == 0 {
		return s.completePhrasing(ctx, ev, []PhrasedRecommendation{}, "", startedAt)
	}

	if s.LLM == nil {
		err := errors.New("missing llm client")
		s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, err, &startedAt)
		return err
	}

	requestID := requestIDFromContext(ctx)
	llmClient := newRetryingLLM(s.LLM, ev.ID, requestID)

	input := buildPhraseInput(ev)
	var promptHash string
	ctxWithHash := llm.WithPromptHashCapture(ctx, &promptHash)

	raw, err := llmClient.PhraseRecommendations(ctxWithHash, input)
	if err != nil {
		err = fmt.Errorf("llm phrase: %w", err)
		s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, err, &startedAt)
		return err
	}

	var payload phrasePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		rawRetry, retryErr := llmClient.PhraseRecommendations(llm.WithFixJSON(ctxWithHash, string(raw)), input)
		if retryErr != nil {
			retryErr = fmt.Errorf("llm phrase retry: %w", retryErr)
			s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, retryErr, &startedAt)
			return retryErr
		}
		if err := json.Unmarshal(rawRetry, &payload); err != nil {
			err = fmt.Errorf("phrase output invalid: %w", err)
			s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, err, &startedAt)
			return err
		}
	}

	phrased, err := validatePhrased(payload, ev.Result.Recommendations)
	if err != nil {
		err = fmt.Errorf("phrase output invalid: %w", err)
		s.failPhrasing(ctx, evaluationID, ev.UserID, ev.OfferID, err, &startedAt)
		return err
	}

	return s.completePhrasing(ctx, ev, phrased, promptHash, startedAt)
}

func (s *Service) completePhrasing(ctx context.Context, ev Evaluation, phrased []PhrasedRecommendation, promptHash string, startedAt time.Time) error {
	phrasedAt := time.Now().UTC()
	update := PhrasingUpdate{
		ID:             ev.ID,
		Status:         StatusCompleted,
		Phrased:        phrased,
		PhrasedAt:      &phrasedAt,
		ErrorCode:      strPtr(""),
		ErrorMessage:   strPtr(""),
		ErrorRetryable: boolPtr(false),
	}
	if promptHash != "" {
		update.PromptHash = &promptHash
	}
	if err := s.Repo.UpdatePhrasing(ctx, update); err != nil {
		err = fmt.Errorf("set phrased result failed: %w", err)
		s.failPhrasing(ctx, ev.ID, ev.UserID, ev.OfferID, err, &startedAt)
		return err
	}
	metrics.IncPhrasingCompleted()
	metrics.ObservePhrasingDurationMs(durationMs(&startedAt, &phrasedAt))
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           ev.UserID,
		"offer_id":          ev.OfferID,
		"evaluation_id":     ev.ID,
		"status":            StatusCompleted,
		"status_transition": StatusPhrasing + "->" + StatusCompleted,
		"phrased":           len(phrased),
		"duration_ms":       durationMs(&startedAt, &phrasedAt),
	})
	return nil
}

func (s *Service) failPhrasing(ctx context.Context, evaluationID, userID, offerID string, err error, startedAt *time.Time) {
	code, retryable := classifyPhrasingFailure(err)
	msg := sanitizeError(err)
	update := PhrasingUpdate{
		ID:             evaluationID,
		Status:         StatusPhraseFailed,
		ErrorCode:      &code,
		ErrorMessage:   &msg,
		ErrorRetryable: &retryable,
	}
	if updateErr := s.Repo.UpdatePhrasing(context.Background(), update); updateErr != nil {
		fmt.Printf("failPhrasing: update failed id=%s err=%v orig=%v\n", evaluationID, updateErr, err)
	}
	metrics.IncPhrasingFailed()
	completedAt := time.Now().UTC()
	if startedAt != nil {
		metrics.ObservePhrasingDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"offer_id":          offerID,
		"evaluation_id":     evaluationID,
		"status":            StatusPhraseFailed,
		"status_transition": StatusPhrasing + "->" + StatusPhraseFailed,
		"error_code":        code,
		"retryable":         retryable,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

type phrasePayload struct {
	Recommendations []PhrasedRecommendation `json:"recommendations"`
}

func buildPhraseInput(ev Evaluation) llm.PhraseInput {
	result := ev.Result
	seeds := make([]llm.Seed, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		seeds = append(seeds, llm.Seed{
			Fix:         string(rec.Fix),
			Headline:    rec.Headline,
			Explanation: rec.Explanation,
			Steps:       rec.Steps,
			EndState:    rec.EndState,
		})
	}
	return llm.PhraseInput{
		Readiness:       string(result.Readiness),
		Alignment:       result.Alignment,
		BottleneckLabel: dimensionLabel(result.Bottleneck.Dimension),
		Vertical:        string(ev.Config.Vertical),
		PromptVersion:   ev.PromptVersion,
		Recommendations: seeds,
	}
}

func dimensionLabel(d ruleset.Dimension) string {
	return strings.ReplaceAll(string(d), "_", " ")
}

// validatePhrased checks the phrased list against the deterministic seeds:
// same count, same fixes, same order, nothing blank. The prose is the
// model's; the structure is not.
func validatePhrased(payload phrasePayload, seeds []engine.Recommendation) ([]PhrasedRecommendation, error) {
	if len(payload.Recommendations) != len(seeds) {
		return nil, fmt.Errorf("expected %d recommendations, got %d", len(seeds), len(payload.Recommendations))
	}
	out := make([]PhrasedRecommendation, 0, len(seeds))
	for i, item := range payload.Recommendations {
		want := string(seeds[i].Fix)
		if !strings.EqualFold(strings.TrimSpace(item.Fix), want) {
			return nil, fmt.Errorf("recommendation %d fix mismatch: got %q, want %q", i+1, item.Fix, want)
		}
		headline := strings.TrimSpace(item.Headline)
		if headline == "" {
			return nil, fmt.Errorf("recommendation %d headline is empty", i+1)
		}
		body := strings.TrimSpace(item.Body)
		if body == "" {
			return nil, fmt.Errorf("recommendation %d body is empty", i+1)
		}
		out = append(out, PhrasedRecommendation{
			Fix:      want,
			Headline: headline,
			Body:     body,
		})
	}
	return out, nil
}

func classifyPhrasingFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodePhrasingTimeout, true
	}
	if errors.Is(err, llm.ErrNotImplemented) {
		return ErrorCodePhrasingUnavailable, false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openai request timeout") {
		return ErrorCodePhrasingTimeout, true
	}
	if strings.Contains(msg, "timeout") && strings.Contains(msg, "llm") {
		return ErrorCodePhrasingTimeout, true
	}
	if strings.Contains(msg, "missing llm client") {
		return ErrorCodePhrasingUnavailable, false
	}
	if strings.Contains(msg, "openai error") || strings.Contains(msg, "http status 5") {
		return ErrorCodePhrasingUnavailable, true
	}
	if strings.Contains(msg, "phrase output invalid") || strings.Contains(msg, "invalid json") ||
		strings.Contains(msg, "missing choices") || strings.Contains(msg, "empty content") ||
		strings.Contains(msg, "response parse") {
		return ErrorCodePhrasingInvalid, false
	}
	if strings.Contains(msg, "lookup") || strings.Contains(msg, "set phrasing") ||
		strings.Contains(msg, "set phrased") || strings.Contains(msg, "storage") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
