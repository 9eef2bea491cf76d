package bootstrap

import (
	"context"
	"log"
	"time"

	"healthlink-be/internal/config"
	"healthlink-be/internal/controller"
	"healthlink-be/internal/handler"
	"healthlink-be/internal/pkg/logger"
	"healthlink-be/internal/pkg/mailer"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/internal/service"
	"healthlink-be/internal/websocket"
	"healthlink-be/pkg/ai"

	pktNats "healthlink-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v79/client"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	DoctorController      controller.IDoctorController
	AppointmentController controller.IAppointmentController
	MedicineController    controller.IMedicineController
	OrderController       controller.IOrderController
	PaymentController     controller.IPaymentController
	ChatController        controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

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
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Stripe
	stripeClient := &client.API{}
	stripeClient.Init(cfg.Keys.StripeSecret, nil)

	// Catalog caches. Doctor and medicine listings invalidate
	// independently, so each gets its own store.
	doctorCache := cache.New(5*time.Minute, 10*time.Minute)
	medicineCache := cache.New(5*time.Minute, 10*time.Minute)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.OrderTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.OrderTopic,
		uowFactory,
		emailService,
	)

	chatService := service.NewChatService(uowFactory)
	authService := service.NewAuthService(uowFactory, natsPub, cfg.Jwt)
	userService := service.NewUserService(uowFactory, chatService)
	doctorService := service.NewDoctorService(uowFactory, doctorCache)
	appointmentService := service.NewAppointmentService(uowFactory, natsPub, emailService)
	medicineService := service.NewMedicineService(uowFactory, medicineCache)
	orderService := service.NewOrderService(uowFactory, publisherService, natsPub)
	paymentService := service.NewPaymentService(uowFactory, stripeClient.CheckoutSessions, cfg.App.ClientURL, natsPub)

	// 3.5 Realtime chat
	responder := ai.NewGeminiResponder(cfg.Keys.GoogleGemini)
	chatGateway := websocket.NewChatGateway(chatService, responder, wsHub, wsLogger)

	// Notification Domain
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, userService, wsHub, chatGateway, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:        controller.NewAuthController(authService),
		UserController:        controller.NewUserController(userService),
		DoctorController:      controller.NewDoctorController(doctorService),
		AppointmentController: controller.NewAppointmentController(appointmentService),
		MedicineController:    controller.NewMedicineController(medicineService),
		OrderController:       controller.NewOrderController(orderService),
		PaymentController:     controller.NewPaymentController(paymentService),
		ChatController:        controller.NewChatController(chatService),

		ConsumerService: consumerService,
	}
}
