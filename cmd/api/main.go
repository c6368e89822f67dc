package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"babounette/internal/api"
	"babounette/internal/core/ai/cache"
	"babounette/internal/core/ai/openrouter"
	aiservice "babounette/internal/core/ai/service"
	"babounette/internal/infrastructure/config"
	"babounette/internal/infrastructure/database"
	"babounette/internal/pkg/common"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("configuration chargée",
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("env", cfg.App.Env),
	)

	// base de données
	db, err := database.Connect(cfg.Database)
	if err != nil {
		common.LogFatal("connexion à la base de données impossible", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		common.LogFatal("application des migrations échouée", zap.Error(err))
	}

	// cache IA : Redis si une adresse est fournie, mémoire sinon
	var store aiservice.Store
	if cfg.Cache.Enabled {
		if cfg.Cache.RedisAddr != "" {
			redisStore, err := cache.NewRedisStore(cfg.Cache)
			if err != nil {
				common.LogFatal("initialisation du cache Redis échouée", zap.Error(err))
			}
			store = redisStore
		} else {
			store = cache.NewManager(cfg.Cache)
		}
	}

	// service IA
	client := openrouter.NewClient(cfg.OpenRouter)
	defer client.Close()
	aiSvc := aiservice.NewService(cfg, client, store)
	defer aiSvc.Close()

	router := api.SetupRouter(cfg, db, aiSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("démarrage de l'application",
			zap.String("version", cfg.App.Version),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("démarrage du serveur échoué", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("arrêt forcé du serveur", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
