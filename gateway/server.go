package gateway

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Handler returns the HTTP surface of g: the chat page at /, the /ws
// realtime endpoint, the /health probe, and the session admin procedures.
func (g *Gateway) Handler(cfg *Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", index)
	mux.Handle("GET /ws", RequireToken(cfg.Token, g.websocketHandler(cfg)))
	mux.HandleFunc("GET /health", g.health)
	for path, h := range g.AdminHandlers(cfg.Token) {
		mux.Handle(path, h)
	}
	return mux
}

func (g *Gateway) websocketHandler(cfg *Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: cfg.AllowedOrigins})
		if err != nil {
			g.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
			return
		}
		defer c.CloseNow()
		c.SetReadLimit(cfg.ReadLimit())

		err = g.Serve(r.Context(), WebSocketConn(c))
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return
		}
		if err != nil {
			g.logger.DebugContext(r.Context(), "connection closed", slog.Any("error", err))
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	})
}

func index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (g *Gateway) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": g.store.Count(),
		"metrics":  g.metrics.Snapshot(),
	})
}

// Run serves g on cfg.Addr and sweeps idle sessions until ctx is done,
// then shuts the listener down gracefully.
func Run(ctx context.Context, cfg *Config, g *Gateway) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, ln, cfg, g)
}

// ServeListener is Run over an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, cfg *Config, g *Gateway) error {
	srv := &http.Server{
		Handler:           g.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g.logger.InfoContext(ctx, "gateway listening",
		slog.String("addr", ln.Addr().String()),
		slog.Bool("auth", cfg.Token != ""),
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(egCtx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	interval := cfg.SweepInterval()
	if interval <= 0 {
		interval = defaultSweepIntervalSecs * time.Second
	}
	eg.Go(func() error {
		return Sweep(egCtx, g.store, interval, g.logger)
	})

	return eg.Wait()
}
