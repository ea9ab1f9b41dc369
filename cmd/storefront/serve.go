package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adApp "github.com/davicafu/storefront/internal/ad/application"
	adHttp "github.com/davicafu/storefront/internal/ad/infra/inbound/http"
	adRepo "github.com/davicafu/storefront/internal/ad/infra/outbound/db/mongodb"
	"github.com/davicafu/storefront/internal/config"
	orderApp "github.com/davicafu/storefront/internal/order/application"
	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	orderEvents "github.com/davicafu/storefront/internal/order/infra/inbound/events"
	orderHttp "github.com/davicafu/storefront/internal/order/infra/inbound/http"
	orderAnalytics "github.com/davicafu/storefront/internal/order/infra/outbound/analytics/clickhouse"
	orderRepo "github.com/davicafu/storefront/internal/order/infra/outbound/db/mongodb"
	productApp "github.com/davicafu/storefront/internal/product/application"
	productHttp "github.com/davicafu/storefront/internal/product/infra/inbound/http"
	productRepo "github.com/davicafu/storefront/internal/product/infra/outbound/db/mongodb"
	scheduleApp "github.com/davicafu/storefront/internal/schedule/application"
	scheduleHttp "github.com/davicafu/storefront/internal/schedule/infra/inbound/http"
	scheduleRepo "github.com/davicafu/storefront/internal/schedule/infra/outbound/db/mongodb"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	"github.com/davicafu/storefront/internal/shared/infra/auth"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	infraEvents "github.com/davicafu/storefront/internal/shared/infra/events"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	sharedBus "github.com/davicafu/storefront/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/storefront/internal/shared/infra/platform/cache"
	"github.com/davicafu/storefront/internal/shared/infra/relayer"
	userApp "github.com/davicafu/storefront/internal/user/application"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	userEvents "github.com/davicafu/storefront/internal/user/infra/inbound/events"
	userHttp "github.com/davicafu/storefront/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/storefront/internal/user/infra/outbound/db/mongodb"
	userMail "github.com/davicafu/storefront/internal/user/infra/outbound/mail"
	"github.com/davicafu/storefront/pkg/logger"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	consumerBuffer  = 100
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server, the outbox relay and the event consumers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger.Logger())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// ---------------- DB ----------------
	client, err := sharedMongo.Connect(ctx, cfg.MongoURI, connectTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)
	log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDB))

	users := userRepo.NewUserRepoMongoDB(client, cfg.MongoDB)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	// ---------------- Cache ----------------
	var cache sharedCache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := sharedCache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
			log.Info("✅ Redis conectado, cache habilitado")
		}
	}
	if cache == nil {
		mem := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer mem.Stop()
		cache = mem
	}

	// ---------------- Analytics ----------------
	var analytics orderDomain.OrderAnalyticsRepository
	if cfg.ClickHouseAddr != "" {
		ch, err := orderAnalytics.NewOrderAnalyticsRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			return err
		}
		defer ch.Close()
		if err := ch.InitSchema(ctx); err != nil {
			return err
		}
		analytics = ch
		log.Info("✅ ClickHouse conectado", zap.String("db", cfg.ClickHouseDB))
	} else {
		log.Info("ClickHouse no configurado, estadísticas de pedidos deshabilitadas")
	}

	// --------------- Servicios --------------
	if cfg.JWTSecret == "" {
		log.Warn("⚠️ JWT_SECRET vacío, no se podrán emitir tokens")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpires)

	userService := userApp.NewUserService(users, tokens, cache, cfg.CacheTTL, cfg.BackendURL, log)
	productService := productApp.NewProductService(productRepo.NewProductRepoMongoDB(db), cache, cfg.CacheTTL, log)
	adService := adApp.NewAdService(adRepo.NewAdRepoMongoDB(db), log)
	scheduleService := scheduleApp.NewScheduleService(scheduleRepo.NewScheduleRepoMongoDB(db), log)
	orderService := orderApp.NewOrderService(orderRepo.NewOrderRepoMongoDB(client, cfg.MongoDB), userService, analytics, log)

	// ---------------- Events ---------------
	userConsumer := userEvents.NewUserConsumer(userMail.NewLogMailer(log), log)
	topics := sharedBus.Topics{}

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		for _, topic := range []string{cfg.OrderTopic, cfg.UserTopic} {
			publisher := infraEvents.NewKafkaPublisher(infraEvents.NewKafkaWriter(cfg.KafkaBrokers, topic), log)
			defer publisher.Close()
			topics[topic] = publisher
		}

		userReader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, cfg.UserTopic, "storefront-user-mailer")
		infraEvents.NewConsumerAdapter(userReader, userConsumer, log).Start(ctx)
		if analytics != nil {
			orderReader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, cfg.OrderTopic, "storefront-order-analytics")
			infraEvents.NewConsumerAdapter(orderReader, orderEvents.NewOrderConsumer(analytics, log), log).Start(ctx)
		}
	} else {
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")

		orderBus := infraEvents.NewInMemoryEventBus(cfg.OrderTopic, log)
		userBus := infraEvents.NewInMemoryEventBus(cfg.UserTopic, log)
		topics[cfg.OrderTopic] = orderBus
		topics[cfg.UserTopic] = userBus

		userBus.Consume(ctx, consumerBuffer, userConsumer)
		if analytics != nil {
			orderBus.Consume(ctx, consumerBuffer, orderEvents.NewOrderConsumer(analytics, log))
		}
	}

	// ------------ Outbox Worker ------------
	registry := make(map[string]sharedEvents.EventMetadata)
	for k, v := range orderDomain.NewEventRegistry(cfg.OrderTopic) {
		registry[k] = v
	}
	for k, v := range userDomain.NewEventRegistry(cfg.UserTopic) {
		registry[k] = v
	}
	worker := relayer.NewOutboxWorker(sharedMongo.NewOutboxRepoMongoDB(db), topics, registry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go worker.Start(ctx)

	// ---------------- HTTP ----------------
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	authMiddleware := middleware.NewAuth(tokens, userService, log)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.FrontendURL),
		middleware.ErrorHandler(log, cfg.IsDevelopment()),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	v1 := router.Group("/v1")
	productHttp.RegisterProductRoutes(v1, productHttp.NewProductHandler(productService), authMiddleware)
	adHttp.RegisterAdRoutes(v1, adHttp.NewAdHandler(adService), authMiddleware)
	scheduleHttp.RegisterScheduleRoutes(v1, scheduleHttp.NewScheduleHandler(scheduleService), authMiddleware)
	orderHttp.RegisterOrderRoutes(v1, orderHttp.NewOrderHandler(orderService), authMiddleware)
	userHttp.RegisterUserRoutes(v1, userHttp.NewUserHandler(userService, cfg.CookieExpiresDays), authMiddleware,
		middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst))

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
