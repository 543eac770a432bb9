package bootstrap

import (
	"context"
	"log"

	"cv-builder-be/internal/config"
	"cv-builder-be/internal/controller"
	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/handler"
	"cv-builder-be/internal/pkg/logger"
	"cv-builder-be/internal/pkg/mailer"
	"cv-builder-be/internal/repository/memory"
	"cv-builder-be/internal/repository/unitofwork"
	"cv-builder-be/internal/service"
	"cv-builder-be/internal/websocket"

	"cv-builder-be/pkg/events"
	pktNats "cv-builder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	QueueController      controller.IQueueController
	NavigationController controller.INavigationController
	EngagementController controller.IEngagementController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	SessionService    service.ISessionService
	NavigationService service.INavigationService

	// WebSockets
	SyncHandler  *handler.SyncHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/sync.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-memory caches
	sessionCache := memory.NewSessionCache()
	navContextCache := memory.NewNavigationContextCache(cfg.Session.ContextCacheTTL)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.SyncTopic)

	queueService := service.NewQueueService(
		uowFactory,
		publisherService,
		wsHub, // Hub implements SyncDelivery
		navContextCache,
		natsPub,
		sysLogger,
		cfg.Queue.DefaultMaxAttempts,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SyncTopic,
		queueService,
		sysLogger,
	)

	sessionService := service.NewSessionService(
		uowFactory,
		sessionCache,
		navContextCache,
		queueService,
		natsPub,
		sysLogger,
		cfg.Session,
	)
	navigationService := service.NewNavigationService(
		uowFactory,
		sessionCache,
		navContextCache,
		sysLogger,
		cfg.Session,
	)
	engagementService := service.NewEngagementService(
		uowFactory,
		natsPub,
		emailService,
		sysLogger,
	)

	// Inbound connectivity events from the NATS bus feed the same
	// connectivity tracking as the client-reported endpoint.
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		subject := "cv." + events.TypeConnectivityChanged
		err := natsSub.Subscribe(subject, "cv-backend-connectivity", func(ctx context.Context, event events.Event) error {
			payload := event.Payload()
			rawId, _ := payload["session_id"].(string)
			sessionId, parseErr := uuid.Parse(rawId)
			if parseErr != nil {
				sysLogger.Warn("Bootstrap", "connectivity event with bad session id", map[string]interface{}{
					"session_id": rawId,
				})
				return nil
			}
			online, _ := payload["online"].(bool)
			_, connErr := queueService.SetConnectivity(ctx, &dto.ConnectivityRequest{
				SessionId: sessionId,
				Online:    online,
			})
			return connErr
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to connectivity events: %v", err)
		}
	}

	// Realtime sync surface
	syncHandler := handler.NewSyncHandler(queueService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		QueueController:      controller.NewQueueController(queueService),
		NavigationController: controller.NewNavigationController(navigationService),
		EngagementController: controller.NewEngagementController(engagementService),

		ConsumerService:   consumerService,
		SessionService:    sessionService,
		NavigationService: navigationService,

		SyncHandler:  syncHandler,
		WebSocketHub: wsHub,
	}
}
