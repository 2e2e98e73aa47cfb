package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rubhub/provider-directory/internal/config"
	"github.com/rubhub/provider-directory/internal/db"
	"github.com/rubhub/provider-directory/internal/httpapi"
	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/repository"
	"github.com/rubhub/provider-directory/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// 1. Конфигурация из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Error("load db config", "error", err)
		os.Exit(1)
	}
	srvCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("load server config", "error", err)
		os.Exit(1)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		logger.Error("init db", "error", err)
		os.Exit(1)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Error("sql DB", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Error("auto migrate", "error", err)
		os.Exit(1)
	}

	// 4. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)
	taxonomyRepo := repository.NewGormTaxonomyRepository(gormDB)
	sectionRepo := repository.NewGormSectionRepository(gormDB)

	// 5. Сервисы.
	identitySvc := service.NewIdentityService(gormDB, userRepo, []byte(srvCfg.JWTSecret))
	profileSvc := service.NewProfileService(providerRepo, sectionRepo)
	directorySvc := service.NewDirectoryService(providerRepo, taxonomyRepo)

	// 6. HTTP-сервер.
	handler := httpapi.NewHandler(identitySvc, profileSvc, directorySvc, logger)
	server := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("directory API listening", "addr", srvCfg.Addr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			os.Exit(1)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
