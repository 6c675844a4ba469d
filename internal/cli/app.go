package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/kspdigital/sociallog-cli/internal/api"
	"github.com/kspdigital/sociallog-cli/internal/config"
	"github.com/kspdigital/sociallog-cli/internal/images"
	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/services"
	"github.com/kspdigital/sociallog-cli/internal/store"
)

// App wires the REPL to the application services and holds per-run state.
type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	postService services.PostService
	store       *store.Store
	loader      *images.Loader
	reader      *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	st := store.New(db, log)
	client := api.NewHTTPClient(c, log)

	return &App{
		config:      c,
		log:         log,
		authService: services.NewAuthService(client, st, log),
		postService: services.NewPostService(client, st, log),
		store:       st,
		loader:      images.NewLoader(client, log),
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Session() != nil
}

// Run restores local state, syncs with the backend when an identity is
// already present, and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	a.store.LoadCached(ctx)

	if session := a.store.Session(); session != nil {
		printlnFn("เข้าสู่ระบบในชื่อ " + session.Name + " <" + session.Email + ">")
		if err := a.postService.Sync(ctx); err != nil {
			// stay on the cached list; a background load never blocks the user
			a.log.Error(ctx, "initial sync failed", "error", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if session := a.store.Session(); session != nil {
		return session.Email
	}
	return "not logged in"
}
