package bootstrap

import (
	"context"
	"log"

	"kyc-verification-be/internal/config"
	"kyc-verification-be/internal/controller"
	"kyc-verification-be/internal/pkg/logger"
	"kyc-verification-be/internal/pkg/mailer"
	"kyc-verification-be/internal/repository/memory"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/internal/service"
	"kyc-verification-be/internal/websocket"
	"kyc-verification-be/pkg/embedding"
	pktNats "kyc-verification-be/pkg/nats"
	"kyc-verification-be/pkg/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	SubjectController controller.ISubjectController
	AuthController    controller.IAuthController

	// Background services (exposed for main.go to run)
	NotifierService  service.INotifierService
	PublisherService service.IPublisherService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Infrastructure
	// NATS mirror is optional; without it events stay on the internal bus.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis backs the websocket hub's cross-instance fan-out; optional too.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	fileStore := storage.NewLocalStore(cfg.App.UploadDir)
	provider := embedding.NewHTTPProvider(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	summaryCache := memory.NewSummaryCache(cfg.App.SummaryCacheTTL)

	// 3. Services
	publisherService := service.NewPublisherService(natsPub, sysLogger)

	sessionService := service.NewSessionService(uowFactory, publisherService)
	uploadService := service.NewUploadService(uowFactory, sessionService, fileStore, provider, publisherService, sysLogger)
	matchingService := service.NewMatchingService(uowFactory, sessionService, sysLogger)
	subjectService := service.NewSubjectService(uowFactory, summaryCache)
	authService := service.NewAuthService(cfg.Auth)

	notifierService := service.NewNotifierService(
		publisherService,
		uowFactory,
		subjectService,
		wsHub,
		emailService,
		cfg.SMTP.OpsInbox,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService, uploadService, matchingService),
		SubjectController: controller.NewSubjectController(subjectService, matchingService),
		AuthController:    controller.NewAuthController(authService),

		NotifierService:  notifierService,
		PublisherService: publisherService,

		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
