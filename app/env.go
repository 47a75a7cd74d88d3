package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timeattack/internal/config"
	"github.com/ayoisaiah/timeattack/internal/dispatch"
	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/hook"
	"github.com/ayoisaiah/timeattack/internal/logging"
	"github.com/ayoisaiah/timeattack/internal/notify"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
	"github.com/ayoisaiah/timeattack/internal/ui"
	"github.com/ayoisaiah/timeattack/store"
)

// env is everything a command needs: the loaded config, the open store and
// the engine wired to its collaborators.
type env struct {
	ctx        context.Context
	cfg        *config.Config
	db         store.DB
	engine     *engine.Engine
	tickets    *tasksource.Local
	notifier   *notify.Desktop
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	closeLog   func() error
	clock      func() time.Time
	prompt     bool
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := config.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(path),
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
		config.WithSystemPaths(),
	)
}

// setup loads the config, opens the database and builds the engine.
func setup(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logger, closeLog, err := logging.New(cfg.System.LogPath, cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := store.NewClient(cfg.System.DBPath, store.WithLogger(logger))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	tickets := tasksource.NewLocal(db)

	eng, err := engine.New(db,
		engine.WithLogger(logger),
		engine.WithEstimator(
			tasksource.NewEstimator(tickets, cfg.Work.DefaultEstimate),
		),
	)
	if err != nil {
		_ = db.Close()
		_ = closeLog()

		return nil, err
	}

	e := &env{
		ctx:      ctx.Context,
		cfg:      cfg,
		db:       db,
		engine:   eng,
		tickets:  tickets,
		logger:   logger,
		closeLog: closeLog,
		clock:    time.Now,
		prompt:   true,
		notifier: notify.NewDesktop(
			config.Dir(),
			cfg.Notifications.Enabled,
			notify.WithLogger(logger),
		),
	}

	if e.ctx == nil {
		e.ctx = context.Background()
	}

	e.dispatcher = dispatch.New(
		dispatch.WithSource(tickets),
		dispatch.WithAlerter(e.notifier),
		dispatch.WithHook(hook.New(cfg.Hooks.TaskStartCmd)),
		dispatch.WithPrompt(e.promptChoice),
		dispatch.WithCompleted(printSummary),
		dispatch.WithLogger(logger),
		dispatch.WithRestMessage(cfg.Rest.Message),
	)

	return e, nil
}

// Close stops pending alerts and releases the database and log file.
func (e *env) Close() error {
	e.notifier.Stop()

	return errors.Join(e.db.Close(), e.closeLog())
}

// apply dispatches the intents of a transition. A transition that was
// applied but not saved still has its intents carried out.
func (e *env) apply(intents []engine.Intent, err error) error {
	if err != nil && !errors.Is(err, engine.ErrNotPersisted) {
		return err
	}

	if derr := e.dispatcher.Dispatch(e.ctx, intents); derr != nil {
		pterm.Warning.Println(derr)
	}

	return err
}

// withEnv runs fn with a fresh env, closing it afterwards.
func withEnv(fn func(ctx *cli.Context, e *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := setup(ctx)
		if err != nil {
			return err
		}

		err = fn(ctx, e)

		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}

		return err
	}
}
