package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/account"
	googleauth "offerfit-backend/internal/auth"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/evaluations"
	"offerfit-backend/internal/llm"
	openai "offerfit-backend/internal/llm/openai"
	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/proofdocs"
	"offerfit-backend/internal/queue"
	"offerfit-backend/internal/services/health"
	"offerfit-backend/internal/shared/config"
	"offerfit-backend/internal/shared/server"
	"offerfit-backend/internal/shared/storage/db"
	"offerfit-backend/internal/shared/storage/object"
	localstore "offerfit-backend/internal/shared/storage/object/local"
	s3store "offerfit-backend/internal/shared/storage/object/s3"
	"offerfit-backend/internal/simulations"
	"offerfit-backend/internal/snapshots"
	"offerfit-backend/internal/usage"
	"offerfit-backend/internal/users"
)

// App holds the wired dependencies shared by the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	OffersRepo      offers.Repo
	EvaluationsRepo evaluations.Repo
	SnapshotsRepo   snapshots.Repo
	ProofDocsRepo   proofdocs.Repo
	UsersRepo       users.Repo

	OfferService      *offers.Service
	EvaluationService *evaluations.Service
	PhrasingProcessor PhrasingProcessor
	SnapshotService   *snapshots.Service
	ProofDocService   *proofdocs.Service
	SimulationService *simulations.Service
	UsageService      *usage.Service
	UserService       *users.Service
	AccountService    *account.Service
	HealthService     *health.Service

	OfferHandler      *offers.Handler
	EvaluationHandler *evaluations.Handler
	SnapshotHandler   *snapshots.Handler
	ProofDocHandler   *proofdocs.Handler
	SimulationHandler *simulations.Handler
	UsageHandler      *usage.Handler
	UserHandler       *users.Handler
	AccountHandler    *account.Handler
	GoogleAuth        *googleauth.GoogleService
}

// PhrasingProcessor allows callers to override phrasing processing for tests.
type PhrasingProcessor interface {
	ProcessPhrasing(ctx context.Context, evaluationID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            app.HealthService,
		OfferHandler:      app.OfferHandler,
		EvaluationHandler: app.EvaluationHandler,
		SnapshotHandler:   app.SnapshotHandler,
		ProofDocHandler:   app.ProofDocHandler,
		SimulationHandler: app.SimulationHandler,
		UsageHandler:      app.UsageHandler,
		UserHandler:       app.UserHandler,
		AccountHandler:    app.AccountHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var offerRepo offers.Repo
	var evaluationRepo evaluations.Repo
	var snapshotRepo snapshots.Repo
	var proofRepo proofdocs.Repo
	var userRepo users.Repo

	if app.DB != nil {
		offerRepo = &offers.PGRepo{DB: app.DB}
		evaluationRepo = &evaluations.PGRepo{DB: app.DB}
		snapshotRepo = &snapshots.PGRepo{DB: app.DB}
		proofRepo = &proofdocs.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		offerRepo = offers.NewMemoryRepo()
		evaluationRepo = evaluations.NewMemoryRepo()
		snapshotRepo = snapshots.NewMemoryRepo()
		proofRepo = proofdocs.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	var usageSvc *usage.Service
	if app.DB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		usageSvc = usage.NewService()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			if app.Config.Env != "dev" {
				return err
			}
			log.Printf("llm client unavailable, phrasing disabled: %v", err)
		} else {
			llmClient = openaiClient
		}
	}

	offerSvc := &offers.Service{Repo: offerRepo}
	evaluationSvc := &evaluations.Service{
		Repo:          evaluationRepo,
		Offers:        offerRepo,
		Usage:         usageSvc,
		Rules:         ruleset.Default(),
		LLM:           llmClient,
		JobQueue:      app.Queue,
		Provider:      app.Config.LLMProvider,
		Model:         app.Config.LLMModel,
		PromptVersion: app.Config.PromptVersion,
	}

	snapshotSvc := &snapshots.Service{
		Repo:  snapshotRepo,
		Evals: snapshotEvalSource{repo: evaluationRepo},
		Store: app.Store,
	}
	proofSvc := &proofdocs.Service{
		Store:  app.Store,
		Repo:   proofRepo,
		Offers: offerRepo,
	}
	simulationSvc := &simulations.Service{Evals: simulationEvalSource{repo: evaluationRepo}}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	accountSvc := &account.Service{
		Offers:      offerRepo,
		Evaluations: evaluationRepo,
		Snapshots:   snapshotRepo,
		ProofDocs:   proofRepo,
		Usage:       usageSvc,
		Users:       userSvc,
		DB:          app.DB,
	}

	app.OffersRepo = offerRepo
	app.EvaluationsRepo = evaluationRepo
	app.SnapshotsRepo = snapshotRepo
	app.ProofDocsRepo = proofRepo
	app.UsersRepo = userRepo
	app.OfferService = offerSvc
	app.EvaluationService = evaluationSvc
	app.PhrasingProcessor = evaluationSvc
	app.SnapshotService = snapshotSvc
	app.ProofDocService = proofSvc
	app.SimulationService = simulationSvc
	app.UsageService = usageSvc
	app.UserService = userSvc
	app.AccountService = accountSvc
	app.HealthService = health.NewService(app.DB)
	app.OfferHandler = offers.NewHandler(offerSvc)
	app.EvaluationHandler = evaluations.NewHandler(evaluationSvc)
	app.SnapshotHandler = snapshots.NewHandler(snapshotSvc)
	app.ProofDocHandler = proofdocs.NewHandler(proofSvc)
	app.SimulationHandler = simulations.NewHandler(simulationSvc)
	app.UsageHandler = usage.NewHandler(usageSvc)
	app.UserHandler = users.NewHandler(userSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	app.GoogleAuth = googleAuthSvc

	if app.EvaluationHandler == nil || app.OfferHandler == nil || app.UsageHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}

// snapshotEvalSource and simulationEvalSource narrow the evaluations repo
// to the read interfaces the snapshot and simulation services declare for
// themselves. Both map the repo's not-found onto the consumer's sentinel.
type snapshotEvalSource struct {
	repo evaluations.Repo
}

func (a snapshotEvalSource) GetEvaluationByID(ctx context.Context, evaluationID string) (snapshots.EvaluationRecord, error) {
	ev, err := a.repo.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, evaluations.ErrNotFound) {
			return snapshots.EvaluationRecord{}, snapshots.ErrNotFound
		}
		return snapshots.EvaluationRecord{}, err
	}
	return snapshots.EvaluationRecord{
		ID:             ev.ID,
		UserID:         ev.UserID,
		OfferID:        ev.OfferID,
		RulesetVersion: ev.RulesetVersion,
		Config:         ev.Config,
		Result:         ev.Result,
	}, nil
}

type simulationEvalSource struct {
	repo evaluations.Repo
}

func (a simulationEvalSource) GetEvaluationByID(ctx context.Context, evaluationID string) (simulations.EvaluationRecord, error) {
	ev, err := a.repo.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, evaluations.ErrNotFound) {
			return simulations.EvaluationRecord{}, simulations.ErrNotFound
		}
		return simulations.EvaluationRecord{}, err
	}
	return simulations.EvaluationRecord{
		ID:             ev.ID,
		UserID:         ev.UserID,
		OfferID:        ev.OfferID,
		RulesetVersion: ev.RulesetVersion,
		Config:         ev.Config,
		Result:         ev.Result,
	}, nil
}
