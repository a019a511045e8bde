package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cardroom-server/internal/config"
	"cardroom-server/internal/jwt"
	"cardroom-server/internal/mux"
	"cardroom-server/pkg/db"
	"cardroom-server/pkg/gameserver"
	"cardroom-server/pkg/store"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

func main() {
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	users, games := setupStores()
	server := gameserver.NewServer(verifier(), users, games)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         config.Instance().Addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, server))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logrus.Info("shutting down")
	server.Shutdown("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}

// verifier bridges signed tokens to the identities the game server
// consumes
func verifier() gameserver.TokenVerifier {
	return gameserver.VerifierFunc(func(token string) (*gameserver.Identity, error) {
		claims, err := jwt.Verify(token)
		if err != nil {
			return nil, err
		}

		return &gameserver.Identity{
			UserID:   claims.Subject,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		}, nil
	})
}

func setupStores() (store.UserStore, store.GameStore) {
	cfg := config.Instance()

	switch cfg.Storage {
	case "", "memory":
		logrus.Info("using in-memory storage")
		mem := store.NewMemory(cfg.StartingChips)
		return mem, mem
	case "postgres":
		// run the db migrations
		db.Migrate()

		pg := store.NewPostgres(db.Instance(), cfg.StartingChips)
		return pg, pg
	default:
		logrus.WithField("storage", cfg.Storage).Fatal("unknown storage backend")
		return nil, nil
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
