package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophslides/internal/client/client"
	"github.com/dmitrijs2005/gophslides/internal/client/config"
	"github.com/dmitrijs2005/gophslides/internal/client/services"
	"github.com/dmitrijs2005/gophslides/internal/filex"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/fatih/color"
)

// ServiceFactory builds the deck service for a loaded config. The returned
// func releases its resources.
type ServiceFactory func(ctx context.Context, cfg *config.Config, log logging.Logger) (services.DeckService, func() error, error)

type App struct {
	config     *config.Config
	newService ServiceFactory
	service    services.DeckService
	closeFn    func() error

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	verbose   bool
	askSecret bool
}

func NewApp() *App {
	return &App{
		newService: buildService,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
}

// Run executes the command line args and reports a failure on errOut.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	defer a.close()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(a.errOut, color.RedString("✗")+" "+describeError(err))
	}
	return err
}

// deckService returns the service, building it on first use so that
// commands like version never touch the network or the library.
func (a *App) deckService(ctx context.Context) (services.DeckService, error) {
	if a.service != nil {
		return a.service, nil
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	log := logging.NewJSONLogger(a.errOut, level)

	svc, closeFn, err := a.newService(ctx, a.config, log)
	if err != nil {
		return nil, err
	}
	a.service = svc
	a.closeFn = closeFn
	return svc, nil
}

func (a *App) close() {
	if a.closeFn != nil {
		_ = a.closeFn()
		a.closeFn = nil
	}
}

func buildService(ctx context.Context, cfg *config.Config, log logging.Logger) (services.DeckService, func() error, error) {
	path, err := libraryPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	repos, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing library: %w", err)
	}

	api, err := client.NewPresentationClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		_ = repos.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		return errors.Join(api.Close(), repos.Close())
	}
	return services.NewDeckService(api, repos.Decks, cfg.PublicOrigin, log), closeFn, nil
}

func libraryPath(cfg *config.Config) (string, error) {
	if cfg.LibraryPath != "" {
		return cfg.LibraryPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = ""
	}
	dir, err := filex.EnsureSubdDir(base, "gophslides")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "library.db"), nil
}
