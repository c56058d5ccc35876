package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "social/internal/adapters/http"
	"social/internal/adapters/http/request"
	"social/internal/adapters/http/response"
	"social/internal/adapters/http/validator"
	"social/internal/adapters/mailgun"
	"social/internal/adapters/memory"
	"social/internal/adapters/openai"
	"social/internal/adapters/postgres"
	redisadapter "social/internal/adapters/redis"
	s3adapter "social/internal/adapters/s3"
	"social/internal/adapters/ws"
	"social/internal/application/account"
	"social/internal/application/post"
	"social/internal/application/tasks"
	"social/internal/application/upload"
	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/domain"
	"social/internal/event"
	"social/internal/logger"
	"social/internal/workers"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	var (
		userRepo domain.UserRepository
		postRepo domain.PostRepository
		queue    domain.TaskQueue
	)

	if cfg.DatabaseURL != "" {
		dbPool, err := postgres.InitDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to init DB", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		userRepo = postgres.NewUserRepository(dbPool)
		postRepo = postgres.NewPostRepository(dbPool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store")
		userRepo = memory.NewUserRepository()
		postRepo = memory.NewPostRepository()
	}

	if cfg.RedisURL != "" {
		rdb, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		queue = redisadapter.NewTaskQueue(rdb, log)
	} else {
		log.Warn("REDIS_URL not set, using in-memory task queue")
		queue = memory.NewTaskQueue()
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost, cfg.BcryptWorkers)
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Error("failed to init token codec", "error", err)
		os.Exit(1)
	}
	authCore := auth.NewService(userRepo, hasher, codec, log,
		auth.WithTTLs(cfg.AccessTokenTTL, cfg.ConfirmationTokenTTL),
	)

	bus := event.New(log)

	accountService := account.NewService(userRepo, authCore, hasher, bus, log, cfg.PublicBaseURL)
	postService := post.NewService(postRepo, bus)
	uploadService := upload.NewService(newStorage(ctx, cfg, log), log)

	runner := tasks.NewRunner(newMailer(cfg, log), newImageGenerator(cfg, log), postService, log)
	tasks.Subscribe(bus, queue, log)

	wsHub := ws.NewHub(ctx, log)
	ws.Subscribe(bus, wsHub)
	wsHandler := ws.NewHandler(wsHub, cfg, authCore, log)

	decoder := request.NewJSONDecoder()
	writer := response.NewJSONWriter(log)
	v := validator.New()

	router := httpadapter.NewRouter(cfg, log, &httpadapter.RouterDeps{
		Health:  httpadapter.NewHealthHandler(writer),
		Auth:    httpadapter.NewAuthHandler(accountService, log, decoder, writer, v),
		Account: httpadapter.NewAccountHandler(accountService, log, decoder, writer, v),
		Post:    httpadapter.NewPostHandler(postService, log, decoder, writer, v),
		Upload:  httpadapter.NewUploadHandler(uploadService, log, writer, cfg.UploadMaxBytes),
		WsFeed:  wsHandler,

		Authenticator: authCore,
		Writer:        writer,
	})

	srv := httpadapter.NewServer(router, cfg.Address)

	workerManager := workers.NewManager(log, workers.NewScheduler(log), &workers.ManagerServices{
		Queue:        queue,
		Runner:       runner,
		PollInterval: cfg.TaskPollInterval,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run()
		return nil
	})

	g.Go(func() error {
		workerManager.Start(gctx)
		<-gctx.Done()
		return nil
	})

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		wsHub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("http: server error", "error", err)
	}

	log.Info("server stopped")
}

func newStorage(ctx context.Context, cfg *config.Config, log logger.Logger) domain.ObjectStorage {
	if cfg.S3Bucket == "" {
		log.Warn("S3_BUCKET not set, uploads are disabled")
		return disabledStorage{}
	}

	storage, err := s3adapter.New(ctx, cfg)
	if err != nil {
		log.Error("failed to init s3 storage, uploads are disabled", "error", err)
		return disabledStorage{}
	}
	return storage
}

func newMailer(cfg *config.Config, log logger.Logger) domain.Mailer {
	if cfg.MailgunAPIKey == "" || cfg.MailgunDomain == "" {
		log.Warn("mailgun not configured, emails are written to the log")
		return logMailer{log: log}
	}
	return mailgun.NewSender(cfg.MailgunBaseURL, cfg.MailgunDomain, cfg.MailgunAPIKey, log)
}

func newImageGenerator(cfg *config.Config, log logger.Logger) domain.ImageGenerator {
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY not set, image generation is disabled")
		return disabledImages{}
	}
	return openai.NewImageGenerator(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIImageSize, log)
}

type logMailer struct {
	log logger.Logger
}

func (m logMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info("mail: not sent, mailgun disabled", "to", logger.MaskEmail(to), "subject", subject, "body", body)
	return nil
}

var (
	errImagesDisabled  = errors.New("image generation is not configured")
	errStorageDisabled = errors.New("object storage is not configured")
)

type disabledImages struct{}

func (disabledImages) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errImagesDisabled
}

type disabledStorage struct{}

func (disabledStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	return "", errStorageDisabled
}
