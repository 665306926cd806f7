package main

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/handlers"
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/middleware"
	"EvidenceKeeper/internal/repo"
	"EvidenceKeeper/internal/service"
	"EvidenceKeeper/internal/storage"
	"context"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	photos, err := newPhotoStore(ctx, cfg, gormDB)
	if err != nil {
		sugar.Fatalw("failed to initialize photo storage", "driver", cfg.PhotoDriver, "error", err)
	}

	m := metrics.New()

	userRepo := repo.NewUserRepository(gormDB)
	caseRepo := repo.NewCaseRepository(gormDB)
	propertyRepo := repo.NewPropertyRepository(gormDB)
	custodyRepo := repo.NewCustodyRepository(gormDB)
	disposalRepo := repo.NewDisposalRepository(gormDB)

	svc := handlers.Services{
		Users:      service.NewUserService(userRepo),
		Cases:      service.NewCaseService(caseRepo, propertyRepo, userRepo, sugar, m),
		Properties: service.NewPropertyService(propertyRepo, photos, sugar, m),
		Custody:    service.NewCustodyService(propertyRepo, custodyRepo, userRepo, sugar, m),
		Disposals:  service.NewDisposalService(propertyRepo, disposalRepo, sugar, m),
	}

	h := handlers.NewHandler(svc, sugar, cfg, m)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"PhotoDriver", cfg.PhotoDriver,
		"PhotoMaxSizeMB", cfg.PhotoMaxSizeMB,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

// newPhotoStore выбирает хранилище фотографий по PHOTO_DRIVER.
func newPhotoStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (storage.Store, error) {
	switch storage.Driver(cfg.PhotoDriver) {
	case storage.DriverFilesystem:
		return storage.NewFSStore(cfg.PhotoDir)
	case storage.DriverS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		})
	default:
		return repo.NewPhotoRepository(db), nil
	}
}
