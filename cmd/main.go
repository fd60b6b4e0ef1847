package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/ndzhokv/userd/internal/api/http/context"
	"github.com/ndzhokv/userd/internal/api/http/router"
	httpServer "github.com/ndzhokv/userd/internal/api/http/server"
	"github.com/ndzhokv/userd/internal/config"
	"github.com/ndzhokv/userd/internal/dbx"
	"github.com/ndzhokv/userd/internal/email"
	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
	"github.com/ndzhokv/userd/internal/password"
	"github.com/ndzhokv/userd/internal/repository/postgres"
	"github.com/ndzhokv/userd/internal/service"
	storage "github.com/ndzhokv/userd/internal/storage/minio"
	"github.com/ndzhokv/userd/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userStoreFactory := func(h dbx.DBTX) model.UserStore {
		return postgres.NewUserRepository(h)
	}
	sessionTokenRepo := postgres.NewSessionTokenRepository(db)

	hasher := password.NewHasher(password.DefaultCost)
	generator := token.NewGenerator()

	sessionService := service.NewSession(
		sessionTokenRepo,
		postgres.NewUserRepository(db),
		hasher,
		generator,
		cfg.Session.ExpiryWindow,
		logger,
	)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	emailGateway, err := email.NewGateway(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
		cfg.Mail.BaseURL,
	)
	if err != nil {
		logger.Fatal("failed to create email gateway", "error", err)
	}

	accountService := service.NewAccount(
		db.DB,
		userStoreFactory,
		sessionService,
		emailGateway,
		storageClient,
		hasher,
		generator,
		logger,
	)

	ctxMgr := httpctx.NewContextManager()
	r := router.New(sessionService, accountService, sessionService, ctxMgr, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionService.RunSweeper(ctx, cfg.Session.SweepInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
