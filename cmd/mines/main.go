package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-server/internal/config"
	"github.com/vancomm/minesweeper-server/internal/middleware"
)

const playerClaimsKey = middleware.CtxPlayerClaims

var (
	log = logrus.New()

	// accessLog feeds internal/middleware's Auth/Logging, which are
	// shared with other services and take a *slog.Logger.
	accessLog = slog.Default()

	pg        *postgres
	cookies   *config.Cookies
	jwtConfig *config.JWT
	ws        *config.WebSocket
)

func setupLogging() {
	logLevel := logrus.InfoLevel
	slogLevel := slog.LevelInfo
	if config.Development() {
		logLevel = logrus.DebugLevel
		slogLevel = slog.LevelDebug
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	accessLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

func setupPostgres(ctx context.Context) {
	dbURL, err := config.DbURL()
	if err != nil {
		log.Error("load database config: ", err)
		os.Exit(1)
	}
	pg, err = NewPostgres(ctx, dbURL)
	if err != nil {
		log.Error("create connection pool: ", err)
		os.Exit(1)
	}
	if err := pg.Ping(ctx); err != nil {
		log.Error("ping database: ", err)
		os.Exit(1)
	}
}

func setupAuth() {
	var err error
	jwtConfig, err = config.NewJWT()
	if err != nil {
		log.Error("load JWT config: ", err)
		os.Exit(1)
	}
	cookies, err = config.NewCookies(jwtConfig)
	if err != nil {
		log.Error("load cookies config: ", err)
		os.Exit(1)
	}
}

func setupWebSocket() {
	var err error
	ws, err = config.NewWebSocket()
	if err != nil {
		log.Error("load websocket config: ", err)
		os.Exit(1)
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	setupLogging()
	setupAuth()
	setupWebSocket()
	setupPostgres(mainCtx)
	defer pg.Close()

	addr := ":" + config.Port()

	server := &http.Server{
		Addr:    addr,
		Handler: buildHandler(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && err != http.ErrServerClosed {
		log.Error("exit reason: ", err)
	}
}
