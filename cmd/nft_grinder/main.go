package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft_grinder/internal/app/bootstrap"
	"nft_grinder/internal/config"
	"nft_grinder/internal/infrastructure/restapi"
	"nft_grinder/internal/pkg/logger"
	"nft_grinder/internal/pkg/metrics"
	"nft_grinder/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Загрузка конфигурации
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Не удалось загрузить конфигурацию", "файл", cfgPath, "ошибка", err)
	}

	logger.InitSlog(cfg.Logging.Level)
	defer logger.Sync()
	zapLogger := logger.Zap()

	logger.Info("NFT grinder service starting", "config", cfgPath)
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.MustRegisterMetrics()

	// Адаптер для частей, которые ожидают port.Logger
	appLogger := logger.NewSlogAdapter()
	app := bootstrap.Build(cfg, zapLogger, appLogger)
	logger.Info("NFT pipeline initialized", "chains", len(app.Registry.GetAllChains()), "defaultChains", cfg.Fetch.DefaultChains)

	nftHandler := restapi.NewNFTHandler(app.NFTService, app.MetadataService, app.Registry, cfg.Fetch.DefaultChains, appLogger)
	router := restapi.SetupRouter(nftHandler, zapLogger.Named("http"), restapi.RouterOptions{
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerSpecFile: cfg.Swagger.SpecFile,
		MetricsEnabled:  true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Запуск HTTP сервера", "адрес", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Не удалось запустить HTTP сервер", "ошибка", err)
		}
	}()

	// Ожидание сигнала завершения (например, Ctrl+C)
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Получен сигнал завершения. Завершение работы HTTP сервера...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при Graceful Shutdown HTTP сервера", "ошибка", err)
	} else {
		logger.Info("HTTP сервер успешно остановлен.")
	}
}
