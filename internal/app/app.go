package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/auth"
	"github.com/careercraft/careercraft/internal/docindex"
	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/llm"
	"github.com/careercraft/careercraft/internal/middleware"
	"github.com/careercraft/careercraft/internal/pages"
	"github.com/careercraft/careercraft/internal/pages/career"
	"github.com/careercraft/careercraft/internal/pages/docqa"
	"github.com/careercraft/careercraft/internal/pages/interview"
	"github.com/careercraft/careercraft/internal/pages/mockinterview"
	"github.com/careercraft/careercraft/internal/pages/resume"
	"github.com/careercraft/careercraft/internal/pages/skillgap"
	"github.com/careercraft/careercraft/internal/pages/softskill"
	"github.com/careercraft/careercraft/internal/routes"
	"github.com/careercraft/careercraft/internal/server"
	fileUserRepo "github.com/careercraft/careercraft/internal/userrepo/file"
	mongoUserRepo "github.com/careercraft/careercraft/internal/userrepo/mongo"
	postgresUserRepo "github.com/careercraft/careercraft/internal/userrepo/postgres"
	"github.com/careercraft/careercraft/internal/userservice"
	"github.com/careercraft/careercraft/pkg/metrics"
	"github.com/careercraft/careercraft/pkg/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const ShutdownTimeout = 15 * time.Second

var toolNames = []string{
	career.ToolName,
	interview.ToolName,
	mockinterview.ToolName,
	docqa.ToolName,
	resume.ToolName,
	skillgap.ToolName,
	softskill.ToolName,
}

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	userRepo   interfaces.CredentialRepository
	privateKey *ecdsa.PrivateKey
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)
	app.Logger = logger

	// A missing API key should stop the service here, not surface as a
	// generation failure on the first tool request.
	apiKey, err := config.APIKey()
	if err != nil {
		return nil, err
	}

	serverInstance := server.NewServer(cfg.Host, cfg.Port, logger)
	app.Server = serverInstance

	metricsInstance := app.initializeMetrics()

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %v", err)
	}

	userRepo, err := app.initializeUserRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential repository: %v", err)
	}
	app.userRepo = userRepo

	userService := userservice.NewUserService(userRepo, logger)

	llmClient, err := llm.NewClient(context.Background(), apiKey, &cfg.Generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %v", err)
	}

	docIndex, err := docindex.NewIndex(cfg.DocIndex.Path, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document index: %v", err)
	}

	route := routes.NewRoute(metricsInstance, userService, app.privateKey, validator)

	metricsHandler := promhttp.HandlerFor(
		metricsInstance.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	err = app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to add metrics route: %v", err)
	}

	loginLimiter := middleware.RateLimitMiddleware(app.newLoginLimiter())
	rateLimitedLogin := loginLimiter(http.HandlerFunc(route.Login))

	err = app.Server.AddRoute(routes.LoginRouteAPI, rateLimitedLogin.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to add login route: %v", err)
	}

	err = app.Server.AddRoute(routes.SignupRouteAPI, route.Signup)
	if err != nil {
		return nil, fmt.Errorf("failed to add signup route: %v", err)
	}

	err = app.Server.AddRoute(routes.LogoutRouteAPI, route.Logout)
	if err != nil {
		return nil, fmt.Errorf("failed to add logout route: %v", err)
	}

	careerHandler := career.NewHandler(llmClient, metricsInstance, logger, validator)
	interviewHandler := interview.NewHandler(llmClient, metricsInstance, logger, validator)
	mockHandler := mockinterview.NewHandler(llmClient, metricsInstance, logger, validator)
	docqaHandler := docqa.NewHandler(llmClient, docIndex, &cfg.DocIndex, metricsInstance, logger, validator)
	resumeHandler := resume.NewHandler(llmClient, metricsInstance, logger, validator)
	skillgapHandler := skillgap.NewHandler(llmClient, metricsInstance, logger, validator)
	softskillHandler := softskill.NewHandler(llmClient, metricsInstance, logger, validator)

	// Every tool endpoint sits behind the session cookie check.
	session := middleware.SessionMiddleware(&app.privateKey.PublicKey)

	toolRoutes := map[string]http.HandlerFunc{
		routes.CareerRouteAPI:             careerHandler.Roadmap,
		routes.InterviewQuestionsRouteAPI: interviewHandler.Questions,
		routes.MockStartRouteAPI:          mockHandler.Start,
		routes.MockAnswerRouteAPI:         mockHandler.Answer,
		routes.MockFinishRouteAPI:         mockHandler.Finish,
		routes.DocsIngestRouteAPI:         docqaHandler.Ingest,
		routes.DocsAskRouteAPI:            docqaHandler.Ask,
		routes.ResumeRouteAPI:             resumeHandler.Generate,
		routes.SkillGapRouteAPI:           skillgapHandler.Analyze,
		routes.SoftSkillQuestionsRouteAPI: softskillHandler.Questions,
		routes.SoftSkillAssessRouteAPI:    softskillHandler.Assess,
	}

	for path, handler := range toolRoutes {
		if err := app.Server.AddRoute(path, session(handler).ServeHTTP); err != nil {
			return nil, fmt.Errorf("failed to add route %s: %v", path, err)
		}
	}

	return app, nil
}

// Run starts the server and blocks until shutdown. SIGINT and SIGTERM
// trigger a graceful drain before the credential repository is closed.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %v", err)
		}
		return nil
	case sig := <-sigCh:
		app.Logger.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Logger.Error("Server shutdown failed", "error", err)
	}

	if err := app.userRepo.Close(ctx); err != nil {
		app.Logger.Error("Failed to close credential repository", "error", err)
	}

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.SignupRequestsTotal, routes.SignupRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.SignupSuccessTotal, routes.SignupSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.SignupErrorsTotal, routes.SignupErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.SignupDurationSeconds,
		routes.SignupDurationSecondsHelp,
		routes.SignupDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterCounter(routes.LoginRateLimitedTotal, routes.LoginRateLimitedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounterVec(pages.RequestsTotal, pages.RequestsTotalHelp, []string{"tool", "status"})
	for _, tool := range toolNames {
		appMetrics.RegisterHistogram(
			pages.DurationMetric(tool),
			fmt.Sprintf("Duration of %s generation requests in seconds", tool),
			pages.DurationSecondsBuckets)
	}

	return appMetrics
}

func (app *App) initializeUserRepo() (interfaces.CredentialRepository, error) {
	switch app.Config.Store.Type {
	case "file":
		return fileUserRepo.NewFileUserRepository(&app.Config.Store.File, app.Logger)

	case "mongo":
		return mongoUserRepo.NewMongoUserRepository(context.Background(), &app.Config.Store.MongoDB)

	case "postgres":
		return postgresUserRepo.NewPostgresUserRepository(context.Background(), &app.Config.Store.Postgres)

	default:
		return nil, fmt.Errorf("unsupported store type: %s", app.Config.Store.Type)
	}
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %v", err)
	}

	app.privateKey = privateKey
	return nil
}

func (app *App) newLoginLimiter() *rate.Limiter {
	rps := app.Config.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := app.Config.RateLimit.Burst
	if burst <= 0 {
		burst = 10
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
