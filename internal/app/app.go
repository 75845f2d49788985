package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/store"
)

type App struct {
	log    *logrus.Logger
	config config.Config
	router *http.ServeMux
	store  *store.Store
	jwt    *config.JWT
	ws     *config.WebSocket
	rnd    *rand.Rand
}

// New validates c and wires the game server. A nil rnd seeds a fresh source.
func New(log *logrus.Logger, c config.Config, rnd *rand.Rand) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	j, err := config.NewJWT(c.Jwt)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:    log,
		config: c,
		router: http.NewServeMux(),
		store:  store.New(),
		jwt:    j,
		ws:     config.NewWebSocket(c.Development()),
		rnd:    rnd,
	}
	a.loadRoutes()

	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.jwt),
		middleware.Logging(a.log),
		middleware.Cors(a.config.Development()),
	)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.sweep(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}

func (a *App) sweep(ctx context.Context) {
	ttl := a.config.SessionTTL.Duration
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.store.Sweep(now.UTC(), ttl); n > 0 {
				a.log.WithField("removed", n).Debug("swept game sessions")
			}
		}
	}
}
