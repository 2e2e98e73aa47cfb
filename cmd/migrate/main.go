package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rubhub/provider-directory/internal/config"
	"github.com/rubhub/provider-directory/internal/db"
	"github.com/rubhub/provider-directory/internal/migration"
	"github.com/rubhub/provider-directory/internal/model"
)

// Одноразовый перенос легаси-базы в схему каталога. Без флагов:
// вся конфигурация приходит через окружение (DATABASE_URL и имена баз).
// Ненулевой код выхода — только при фатальной ошибке уровня прогона;
// построчные пропуски внутри этапов на код выхода не влияют.
func main() {
	// .env подхватываем, если он есть; иначе молча работаем с окружением.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDBConfig()
	if err != nil {
		return fmt.Errorf("load db config: %w", err)
	}

	legacyDB, err := db.NewLegacyDB(cfg)
	if err != nil {
		return fmt.Errorf("connect legacy db: %w", err)
	}
	defer legacyDB.Close()
	fmt.Println("Connected to legacy database.")

	gormDB, err := db.NewGormDB(cfg)
	if err != nil {
		return fmt.Errorf("connect app db: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("sql DB: %w", err)
	}
	defer sqlDB.Close()

	if err := model.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	_, err = migration.Run(migration.NewSQLReader(legacyDB), gormDB, slog.Default())
	return err
}
