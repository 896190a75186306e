package app

import (
	"context"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/zjregee/tibr/internal/config"
	"github.com/zjregee/tibr/internal/service/conversation"
	"github.com/zjregee/tibr/internal/service/export"
	"github.com/zjregee/tibr/internal/service/ollama"
	"github.com/zjregee/tibr/internal/service/project"
	"github.com/zjregee/tibr/internal/service/state"
	"github.com/zjregee/tibr/internal/service/storage"
)

// App is bound to the desktop UI. Each exported method is one command.
type App struct {
	ctx   context.Context
	ctxMu sync.RWMutex
	log   pslog.Logger

	cfg       config.Config
	ollama    *ollama.Client
	store     *storage.Store
	state     *state.State
	exporter  *export.Exporter
	describer *conversation.Describer
	sources   project.SourceFilter

	commands map[string]command
}

// New opens the chat database and the state file named by cfg. The logger
// attached to ctx is used for every command.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	st, err := state.Open(cfg.State.Path)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app := &App{
		log:    pslog.Ctx(ctx),
		cfg:    cfg,
		ollama: ollama.NewClient(cfg.Ollama.BaseURL, time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second),
		store:  store,
		state:  st,
		exporter: export.New(export.Options{
			OutputDir:   cfg.Export.OutputDir,
			DiagramTool: cfg.Export.DiagramTool,
			Converter:   cfg.Export.Converter,
			PDFEngine:   cfg.Export.PDFEngine,
		}, nil),
		describer: conversation.NewDescriber(conversation.Config{
			Provider:  cfg.Describe.Provider,
			Model:     cfg.Describe.Model,
			BaseURL:   cfg.Describe.BaseURL,
			APIKeyEnv: cfg.Describe.APIKeyEnv,
			OllamaURL: cfg.Ollama.BaseURL,
		}),
		sources: project.SourceFilter{
			Extensions: cfg.Source.Extensions,
			Exclude:    cfg.Source.Exclude,
		},
	}
	app.registerCommands()

	return app, nil
}

// Startup is called by the desktop runtime once the window exists.
func (a *App) Startup(ctx context.Context) {
	a.ctxMu.Lock()
	a.ctx = pslog.ContextWithLogger(ctx, a.log)
	a.ctxMu.Unlock()

	if err := a.InitializeDb(); err != nil {
		a.log.Warn("initialize chat database failed", "err", err)
	}
}

// Shutdown is called by the desktop runtime before exit.
func (a *App) Shutdown(_ context.Context) {
	if err := a.Close(); err != nil {
		a.log.Warn("close app failed", "err", err)
	}
}

func (a *App) Close() error {
	storeErr := a.store.Close()
	stateErr := a.state.Close()
	if storeErr != nil {
		return storeErr
	}
	return stateErr
}

func (a *App) context() context.Context {
	a.ctxMu.RLock()
	ctx := a.ctx
	a.ctxMu.RUnlock()

	if ctx == nil {
		ctx = pslog.ContextWithLogger(context.Background(), a.log)
	}
	return ctx
}

func (a *App) logResult(command string, err error, kv ...any) {
	log := a.log.With("command", command)
	if err != nil {
		log.Warn("command failed", append(kv, "err", err)...)
		return
	}
	log.Debug("command ok", kv...)
}
