package bootstrap

import (
	"context"
	"log"

	"gasflow-be/internal/config"
	"gasflow-be/internal/controller"
	"gasflow-be/internal/handler"
	"gasflow-be/internal/model"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/pkg/mailer"
	"gasflow-be/internal/repository/implementation"
	"gasflow-be/internal/repository/unitofwork"
	"gasflow-be/internal/service"
	"gasflow-be/internal/websocket"

	pktNats "gasflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// emailJobsTopic is the in-process queue carrying transactional email jobs.
const emailJobsTopic = "email_jobs"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	UserController    controller.IUserController
	ProductController controller.IProductController
	CartController    controller.ICartController
	AddressController controller.IAddressController
	OrderController   controller.IOrderController
	ChatController    controller.IChatController
	AdminController   controller.IAdminController
	POSController     controller.IPOSController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	RealtimeHandler     *handler.RealtimeHandler
	WebSocketHub        *websocket.Hub
}

// hubDelivery adapts the websocket hub to the notification delivery
// contract by wrapping each inbox entry in an outbound frame.
type hubDelivery struct {
	hub *websocket.Hub
}

func (d *hubDelivery) Send(userID uuid.UUID, notification model.Notification) {
	d.hub.PushToUser(userID, websocket.NotificationFrame(notification))
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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(wsLogger)

	// 3. Services
	publisherService := service.NewPublisherService(emailJobsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, emailJobsTopic, emailService)

	chatRepo := implementation.NewChatMessageRepository(db)
	userRepo := implementation.NewUserRepository(db)
	notifRepo := implementation.NewNotificationRepository(db)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory)
	productService := service.NewProductService(uowFactory, rdb, sysLogger)
	cartService := service.NewCartService(uowFactory)
	addressService := service.NewAddressService(uowFactory)
	deliveryService := service.NewDeliveryService(implementation.NewOrderRepository(db))
	chatService := service.NewChatService(chatRepo, userRepo, wsHub, sysLogger)
	orderService := service.NewOrderService(
		uowFactory,
		notifRepo,
		deliveryService,
		wsHub,
		natsPub,
		publisherService,
		sysLogger,
	)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	// 3.5 Notification System Infrastructure
	notifService := service.NewNotificationService(notifRepo, natsSub, &hubDelivery{hub: wsHub}, wsLogger)

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Boot invariant: chat always has an admin counterpart to route to.
	if err := authService.EnsureAdminAccount(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Printf("[WARN] Failed to ensure admin account: %v", err)
	}

	// Handlers
	notifHandler := handler.NewNotificationHandler(notifService)
	realtimeHandler := handler.NewRealtimeHandler(wsHub, deliveryService, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		RealtimeHandler:     realtimeHandler,
		WebSocketHub:        wsHub,

		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService),
		UserController:    controller.NewUserController(userService),
		ProductController: controller.NewProductController(productService),
		CartController:    controller.NewCartController(cartService),
		AddressController: controller.NewAddressController(addressService),
		OrderController:   controller.NewOrderController(orderService, deliveryService),
		ChatController:    controller.NewChatController(chatService),
		AdminController:   controller.NewAdminController(adminService, orderService),
		POSController:     controller.NewPOSController(orderService),

		ConsumerService: consumerService,
	}
}
