package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apiHandler "github.com/casaflow/backend/api/handler"
	"github.com/casaflow/backend/internal/config"
	"github.com/casaflow/backend/internal/infrastructure/localstore"
	"github.com/casaflow/backend/internal/infrastructure/mongodb"
	"github.com/casaflow/backend/internal/infrastructure/monitor"
	redisInfra "github.com/casaflow/backend/internal/infrastructure/redis"
	"github.com/casaflow/backend/internal/middleware"
	"github.com/casaflow/backend/internal/router"
	"github.com/casaflow/backend/internal/services"
	"github.com/casaflow/backend/internal/services/lifecycle"
	"github.com/casaflow/backend/pkg/httpcontext"
	"github.com/casaflow/backend/pkg/logger"
	"github.com/casaflow/backend/repository"
	"github.com/casaflow/backend/repository/fallback"
	"github.com/casaflow/backend/repository/local"
	mongoRepo "github.com/casaflow/backend/repository/mongo"
	redisRepo "github.com/casaflow/backend/repository/redis"
	authUC "github.com/casaflow/backend/usecase/auth"
	campaignUC "github.com/casaflow/backend/usecase/campaign"
	clientsUC "github.com/casaflow/backend/usecase/clients"
	"github.com/casaflow/backend/usecase/listings"
	pipelineUC "github.com/casaflow/backend/usecase/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// Remote tier. An unreachable document store is not fatal: the
	// service boots against the local mirror and keeps running.
	var (
		remoteProperties repository.PropertyRepository = fallback.OfflineProperties{}
		remoteClients    repository.ClientRepository   = fallback.OfflineClients{}
		remoteCampaigns  repository.CampaignRepository = fallback.OfflineCampaigns{}
		remoteUsers      repository.UserRepository     = fallback.OfflineUsers{}
	)
	mongoClient, err := connectMongo(appCtx, cfg, zapLogger)
	if err == nil && mongoClient != nil {
		db := mongodb.Database(mongoClient, cfg.Mongo)
		remoteProperties = mongoRepo.NewPropertyRepository(db)
		remoteClients = mongoRepo.NewClientRepository(db)
		remoteCampaigns = mongoRepo.NewCampaignRepository(db)
		remoteUsers = mongoRepo.NewUserRepository(db)
		manager.Register("mongo", func(ctx context.Context) error {
			return mongoClient.Disconnect(ctx)
		})
	}

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mirrorStore, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		zapLogger.Fatal("failed to open local mirror store", zap.Error(err))
	}
	manager.Register("localstore", func(ctx context.Context) error {
		return mirrorStore.Close()
	})

	mon := monitor.New(mongoClient, redisClient, mirrorStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	repairProcessor := services.NewRepairProcessor(mirrorStore, remoteProperties, zapLogger, services.RepairConfig{
		Interval:   cfg.Repair.Interval,
		BatchSize:  cfg.Repair.BatchSize,
		MaxRetries: cfg.Repair.MaxRetries,
	})
	repairProcessor.Start()
	manager.Register("repair_processor", func(ctx context.Context) error {
		repairProcessor.Stop(ctx)
		return nil
	})

	propertyRepo := fallback.NewPropertyRepository(remoteProperties, local.NewPropertyMirror(mirrorStore), repairProcessor, zapLogger)
	clientRepo := fallback.NewClientRepository(remoteClients, local.NewClientMirror(mirrorStore), zapLogger)
	campaignRepo := fallback.NewCampaignRepository(remoteCampaigns, local.NewCampaignMirror(mirrorStore), zapLogger)
	userRepo := fallback.NewUserRepository(remoteUsers, local.NewUserMirror(mirrorStore), zapLogger)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	seeder := services.NewSeeder(cfg.Environment, services.SeederRepos{
		RemoteProperties: remoteProperties,
		RemoteClients:    remoteClients,
		RemoteCampaigns:  remoteCampaigns,
		RemoteUsers:      remoteUsers,
		Properties:       propertyRepo,
		Clients:          clientRepo,
		Campaigns:        campaignRepo,
		Users:            userRepo,
	}, zapLogger)
	seeder.Run(appCtx)

	assistant := services.NewAssistant(cfg.Assistant.Endpoint, cfg.Assistant.Timeout, zapLogger)
	mailer := services.NewLogMailer(zapLogger)

	authUseCase := authUC.New(userRepo, sessionRepo, propertyRepo, clientRepo, cfg.Session.TTL, zapLogger)
	listingsUseCase := listings.New(propertyRepo, assistant, assistant, zapLogger)
	pipelineUseCase := pipelineUC.New(propertyRepo, userRepo, zapLogger)
	clientsUseCase := clientsUC.New(clientRepo, zapLogger)
	campaignUseCase := campaignUC.New(campaignRepo, clientRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Session.JWTSecret, cfg.Session.JWTIssuer),
		Property: apiHandler.NewPropertyHandler(listingsUseCase, pipelineUseCase, ctxAdapter, zapLogger),
		Client:   apiHandler.NewClientHandler(clientsUseCase, ctxAdapter, zapLogger),
		Campaign: apiHandler.NewCampaignHandler(campaignUseCase, clientsUseCase, mailer, ctxAdapter, zapLogger),
		User:     apiHandler.NewUserHandler(authUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(cfg.Session.JWTSecret, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func connectMongo(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*mongo.Client, error) {
	if !cfg.Mongo.Enabled {
		zapLogger.Warn("document store disabled by configuration, running on local mirror only")
		return nil, nil
	}
	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		zapLogger.Warn("document store unreachable, running on local mirror only", zap.Error(err))
		return nil, err
	}
	return client, nil
}
