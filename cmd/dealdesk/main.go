package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexanderramin/dealdesk/internal/cli"
	"github.com/alexanderramin/dealdesk/internal/config"
	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/httpapi"
	"github.com/alexanderramin/dealdesk/internal/llm"
	"github.com/alexanderramin/dealdesk/internal/logging"
	"github.com/alexanderramin/dealdesk/internal/mcpserver"
	"github.com/alexanderramin/dealdesk/internal/metrics"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/alexanderramin/dealdesk/internal/strategy"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Repositories
	deals := repository.NewSQLiteDealRepo(database)
	signals := repository.NewSQLiteSignalRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	approvals := repository.NewSQLiteApprovalRepo(database)
	audit := repository.NewSQLiteAuditRepo(database)
	drafts := repository.NewSQLiteFollowUpDraftRepo(database)
	notifications := repository.NewSQLiteNotificationRepo(database)
	activities := repository.NewSQLiteActivityRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	recorder := metrics.Recorder{}
	observer := service.NewLogUseCaseObserver(logger)

	// Strategy generation is rule-based unless an LLM provider is enabled.
	var generator strategy.Generator = strategy.NewRuleBasedGenerator()
	var llmClient llm.LLMClient
	if cfg.LLM.Enabled {
		llmObserver := llm.MultiObserver{recorder}
		if cfg.LLM.LogCalls {
			llmObserver = append(llmObserver, llm.NewLogObserver(logger))
		}
		llmClient, err = llm.NewClient(cfg.LLM, llmObserver)
		if err != nil {
			return fmt.Errorf("configuring LLM client: %w", err)
		}
		generator = strategy.NewLLMGenerator(llmClient, generator, recorder)
	}

	loader := &strategy.ContextLoader{
		Deals:      deals,
		Signals:    signals,
		Tasks:      tasks,
		Approvals:  approvals,
		Activities: activities,
	}
	executor := strategy.NewExecutor(loader, generator, uow, approvals, audit)

	app := &cli.App{
		Actor: domain.Actor{WorkspaceID: cfg.WorkspaceID, UserID: cfg.ActorID},

		MeetingNotes: service.NewMeetingNotesService(service.MeetingNotesDeps{
			Deals:     deals,
			Drafts:    drafts,
			Approvals: approvals,
			Audit:     audit,
			UoW:       uow,
			Recorder:  recorder,
		}, observer),
		Strategy: service.NewStrategyService(loader, generator, executor, recorder, nil, observer),
		Notifications: service.NewNotificationService(service.NotificationDeps{
			Signals:       signals,
			Deals:         deals,
			Notifications: notifications,
			Audit:         audit,
			Recorder:      recorder,
		}, observer),
		Signals:   service.NewSignalService(signals, observer),
		Approvals: service.NewApprovalService(approvals, audit, nil, observer),
		Tasks:     service.NewTaskService(deals, tasks, audit, nil, observer),
		Deals:     service.NewDealService(deals, observer),
		Seed:      service.NewSeedService(uow, nil, observer),

		DefaultHTTPAddr: cfg.HTTPAddr,
		LLMEnabled:      cfg.LLM.Enabled,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Serve = func(ctx context.Context, addr string) error {
		logLLMAvailability(ctx, logger, cfg.LLM, llmClient)
		router := httpapi.NewRouter(httpapi.Services{
			MeetingNotes:  app.MeetingNotes,
			Strategy:      app.Strategy,
			Notifications: app.Notifications,
			Signals:       app.Signals,
			Approvals:     app.Approvals,
			Tasks:         app.Tasks,
			Deals:         app.Deals,
		}, logger, metrics.Handler())
		return serveHTTP(ctx, logger, addr, router)
	}

	app.ServeMCP = func(ctx context.Context, actor domain.Actor) error {
		server := mcpserver.NewServer(mcpserver.Services{
			MeetingNotes:  app.MeetingNotes,
			Strategy:      app.Strategy,
			Notifications: app.Notifications,
		}, actor, version)
		return mcpserver.Serve(ctx, server)
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.Version = version
	return rootCmd.Execute()
}

// logLLMAvailability reports at startup whether strategy plays will come
// from the model or from the rule-based fallback.
func logLLMAvailability(ctx context.Context, logger *slog.Logger, cfg llm.LLMConfig, client llm.LLMClient) {
	if client == nil {
		logger.Info("llm disabled, using rule-based strategy plays")
		return
	}
	if !client.Available(ctx) {
		logger.Warn("llm provider unreachable, strategy plays will fall back to rules",
			"provider", cfg.Provider, "model", cfg.ModelOrDefault())
		return
	}
	logger.Info("llm provider reachable", "provider", cfg.Provider, "model", cfg.ModelOrDefault())
}

func serveHTTP(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
