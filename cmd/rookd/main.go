// Command rookd serves partnership Rook games: a versioned game store,
// a websocket event feed per seat, and scheduler-driven bot seats.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkbarnum/rookgame/internal/config"
	"github.com/mkbarnum/rookgame/internal/game"
	"github.com/mkbarnum/rookgame/internal/sched"
	"github.com/mkbarnum/rookgame/internal/store"
	"github.com/mkbarnum/rookgame/internal/ws"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("store")
	}
	defer cleanup()

	hub := ws.NewHub(log)

	var svc *game.Service
	scheduler := sched.NewBotScheduler(func(ctx context.Context, gameID string, seat int) {
		svc.RunBotTurn(ctx, gameID, seat)
	}, log)
	svc = game.NewService(st, hub, scheduler, log)
	svc.BotDelay = cfg.BotDelay

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(hub, svc, log))
	mux.HandleFunc("/games", createGameHandler(svc, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.Addr).Info("rookd listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server")
	}
	log.Info("rookd stopped")
}

// buildStore picks the persistence backend: postgres (optionally fronted
// by a redis hand cache) when configured, in-memory otherwise.
func buildStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (game.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Info("using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pg, err := store.NewPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	log.Info("using postgres store")

	if cfg.RedisAddr == "" {
		return pg, pg.Close, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		pg.Close()
		return nil, nil, err
	}
	log.WithField("addr", cfg.RedisAddr).Info("redis hand cache enabled")
	cache := store.NewHandCache(pg, rdb, log)
	return cache, func() {
		_ = rdb.Close()
		pg.Close()
	}, nil
}

// createGameHandler makes a fresh lobby and returns its id.
func createGameHandler(svc *game.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		id := uuid.NewString()
		g, err := svc.CreateGame(r.Context(), id)
		if err != nil {
			log.WithError(err).Error("create game failed")
			http.Error(w, "create failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"gameId": g.ID,
			"status": g.Status,
		})
	}
}
