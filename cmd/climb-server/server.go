package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ascent/internal/climb"
	"ascent/internal/game"
	"ascent/internal/hud"
	"ascent/internal/network"
	"ascent/internal/platform/logger"
	ascentotel "ascent/internal/platform/otel"
	"ascent/internal/prefs"
	"ascent/internal/session"
	"ascent/internal/world"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func run(ctx context.Context, cfg serverConfig, log *logger.Logger) error {
	shutdownTracing, err := ascentotel.Setup(ctx, ascentotel.Service{
		Name:     "ascent-climb-server",
		Version:  cfg.Version,
		Mode:     cfg.Mode,
		TickRate: cfg.TickRate,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warnf("Server: tracing shutdown: %v", err)
		}
	}()

	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	defer store.Close()

	feed := network.NewHandFeed(cfg.HandStaleAfter)
	hub := network.NewHub(log, feed)
	s := newServer(cfg, log, hub, feed, store)
	hub.OnSceneRequest = s.requestScene

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Infof("Server: listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	g.Go(func() error {
		return s.loop(gctx)
	})
	return g.Wait()
}

// server owns the session. Everything except requestScene runs on the loop
// goroutine.
type server struct {
	cfg      serverConfig
	log      *logger.Logger
	hub      *network.Hub
	feed     *network.HandFeed
	store    *prefs.Store
	director *session.Director

	requests chan string
	pending  string

	game *game.Game
	span trace.Span
}

func newServer(cfg serverConfig, log *logger.Logger, hub *network.Hub, feed *network.HandFeed, store *prefs.Store) *server {
	s := &server{
		cfg:      cfg,
		log:      log,
		hub:      hub,
		feed:     feed,
		store:    store,
		director: session.NewDirector(session.ClimbScene, session.EndScene),
		requests: make(chan string, 4),
	}
	s.director.OnChange.AddListener(func(name string) {
		s.pending = name
	})
	return s
}

// requestScene queues a client's scene request for the loop.
func (s *server) requestScene(name string) {
	select {
	case s.requests <- name:
	default:
		s.log.Warnf("Server: dropping scene request %q, queue full", name)
	}
}

func (s *server) loop(ctx context.Context) error {
	if err := s.director.LoadScene(session.ClimbScene); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()
	dt := s.cfg.step()

	for {
		if s.pending != "" {
			name := s.pending
			s.pending = ""
			if err := s.enter(ctx, name); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			s.endSpan("shutdown")
			return nil
		case name := <-s.requests:
			if err := session.RequestScene(s.director, name, s.log); err != nil {
				s.log.Warnf("Server: scene request %q: %v", name, err)
			}
		case <-ticker.C:
			if s.game != nil {
				s.game.Update(dt)
			}
		}
	}
}

func (s *server) enter(ctx context.Context, name string) error {
	switch name {
	case session.ClimbScene:
		return s.startSession(ctx)
	case session.EndScene:
		s.showEnd(ctx)
	}
	return nil
}

func (s *server) startSession(ctx context.Context) error {
	s.endSpan("restart")

	g, err := game.New(s.cfg.gameConfig(), game.Options{
		Input:   s.feed,
		Records: s.store,
		Scenes:  s.director,
		Log:     s.log,
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	_, span := ascentotel.Tracer().Start(ctx, "climb.session", trace.WithAttributes(
		attribute.String("session.id", g.ID),
		attribute.String("session.mode", string(g.Mode)),
		attribute.Int("session.tick_rate", s.cfg.TickRate),
	))
	s.span = span

	g.HUD.PublishEvery = max(s.cfg.HUDEvery, 1)
	g.HUD.Publish = func(snap hud.Snapshot) {
		s.broadcast(snap)
	}
	if p := g.Ctx.Progress; p != nil {
		p.OnWallAdvanced.AddListener(func(w *climb.WallSegment) {
			span.AddEvent("wall.advanced", trace.WithAttributes(attribute.String("wall.prefab", w.PrefabID)))
		})
	}
	g.Outcome.OnEnd.AddListener(func(reason string) {
		s.endSpan(reason)
	})

	s.game = g
	return nil
}

func (s *server) showEnd(ctx context.Context) {
	if s.game == nil {
		return
	}
	result := s.game.Result()

	highest, err := s.store.HighestClimb(ctx)
	if err != nil {
		s.log.Warnf("Server: reading highest climb: %v", err)
		highest = result.Highest
	}

	end := world.New(session.EndScene)
	if err := end.LoadScene(s.cfg.EndScenePath); err != nil {
		s.log.Warnf("Server: %v", err)
	} else if !hud.ShowEndScreen(end.Scene, highest) {
		s.log.Warnf("Server: end scene has no %s", hud.EndTextName)
	}

	s.broadcast(hud.NewEndScreen(result.SessionID, result.Reason, highest))
}

func (s *server) broadcast(v any) {
	if err := s.hub.Broadcast(v); err != nil && !errors.Is(err, network.ErrHubClosed) {
		s.log.Errorf("Server: broadcast: %v", err)
	}
}

// endSpan closes the current session span, recording how the session went.
func (s *server) endSpan(reason string) {
	if s.span == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("session.end_reason", reason)}
	if s.game != nil {
		r := s.game.Result()
		attrs = append(attrs,
			attribute.Float64("session.highest", float64(r.Highest)),
			attribute.Int64("session.ticks", int64(r.Ticks)),
			attribute.Int("session.walls", r.Walls),
		)
	}
	s.span.SetAttributes(attrs...)
	s.span.End()
	s.span = nil
}
