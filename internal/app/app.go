package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/cardview/internal/binder"
	"github.com/five82/cardview/internal/catalog"
	"github.com/five82/cardview/internal/config"
	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/logging"
	"github.com/five82/cardview/internal/logtail"
	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/prefs"
	"github.com/five82/cardview/internal/query"
	"github.com/five82/cardview/internal/server"
	"github.com/five82/cardview/internal/state"
	"github.com/five82/cardview/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Options configure every cardview entry point.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/cardview/prefs.toml
	APIBase    string        // overrides the configured API base
	PollEvery  time.Duration // zero uses default
	Verbose    bool
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if api := strings.TrimSpace(opts.APIBase); api != "" {
		cfg.APIBase = api
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// RunTerminal boots the terminal card viewer until the user quits or the
// context is cancelled.
func RunTerminal(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// The terminal owns the screen, so logs go to a file.
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := itemsapi.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init items client: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	doc := page.NewDocument()
	handles := doc.Handles()
	ctl := query.New(client, handles.Cards, handles.Raw, logger)
	b, err := binder.New(ctx, handles, ctl, logger)
	if err != nil {
		return fmt.Errorf("bind page: %w", err)
	}
	b.Bind()

	store := &state.Store{}
	StartPoller(ctx, store, client, opts.PollEvery, logger)

	b.InitialLoad()
	logger.Info("terminal started", zap.String("api_base", client.BaseURL()))

	err = ui.Run(ui.Options{
		Context:   ctx,
		Document:  doc,
		Store:     store,
		Status:    ctl,
		Logger:    logger,
		APIBase:   client.BaseURL(),
		ThemeName: userPrefs.Theme,
		Count:     userPrefs.Count,
		PrefsPath: opts.PrefsPath,
	})

	cancel()
	b.Wait()
	return err
}

// RunServer serves the items API and the static page until ctx is
// cancelled or the listener fails.
func RunServer(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Development: opts.Verbose})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	webDir := cfg.WebDir
	if info, statErr := os.Stat(webDir); statErr != nil || !info.IsDir() {
		logger.Warn("web dir unavailable; /static disabled", zap.String("web_dir", webDir))
		webDir = ""
	}

	handler := server.New(cat, server.Options{Logger: logger, WebDir: webDir})
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("items api listening",
			zap.String("addr", cfg.Listen),
			zap.String("data", cfg.DataPath),
			zap.Int("items", cat.Len()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("items api stopped")
		return nil
	})

	g.Go(func() error {
		if err := catalog.Watch(gctx, cfg.DataPath, cat, logger); err != nil {
			// Serving continues with the loaded items.
			logger.Warn("data reload disabled", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}

// FetchKind selects the one-shot request made by Fetch.
type FetchKind int

const (
	FetchRandom FetchKind = iota
	FetchSearch
)

// Fetch runs one query through the same controller the viewers use and
// writes the raw dump followed by the cards fragment to w.
func Fetch(ctx context.Context, opts Options, kind FetchKind, arg string, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.Verbose {
		if logger, err = logging.New(logging.Options{Level: "debug", Development: true}); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
	}

	client, err := itemsapi.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init items client: %w", err)
	}

	doc := page.NewDocument()
	handles := doc.Handles()
	ctl := query.New(client, handles.Cards, handles.Raw, logger)

	switch kind {
	case FetchRandom:
		err = ctl.Random(ctx, binder.ClampCount(arg))
	case FetchSearch:
		q := strings.TrimSpace(arg)
		if q == "" {
			return errors.New("search query is empty")
		}
		err = ctl.Search(ctx, q)
	default:
		return fmt.Errorf("unknown fetch kind %d", kind)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n\n%s", doc.Node(page.RawID).Content().Data, doc.Node(page.CardsID).Content().Data)
	return err
}

// Categories writes the per-category item counts, one per line.
func Categories(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := itemsapi.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init items client: %w", err)
	}
	cats, err := client.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", c.Name, c.Count); err != nil {
			return err
		}
	}
	return nil
}

// Logs writes the last n lines of the configured log file, formatted.
func Logs(opts Options, n int, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	lines, err := logtail.Read(cfg.LogFile, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, logtail.Format(line)); err != nil {
			return err
		}
	}
	return nil
}
