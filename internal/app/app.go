package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BaderVance/BucketListify/internal/config"
	"github.com/BaderVance/BucketListify/internal/db"
	"github.com/BaderVance/BucketListify/internal/repository"
	"github.com/BaderVance/BucketListify/internal/service"
	"github.com/BaderVance/BucketListify/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	ProfileRepository repository.ProfileRepository
	GoalService       *service.GoalService
	PhotoService      *service.PhotoService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	profileRepository := repository.NewProfileRepository(database)

	// Storage
	photoStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	goalService := service.NewGoalService(goalRepository, profileRepository)
	photoService := service.NewPhotoService(goalRepository, photoStorage)

	return &App{
		Cfg:               cfg,
		DB:                database,
		ProfileRepository: profileRepository,
		GoalService:       goalService,
		PhotoService:      photoService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
