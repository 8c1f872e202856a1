package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/anjiri1684/aptitude_quiz/configs"
	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSQLitePath = "aptitude_quiz.db"

func Connect(cfg config.AppConfig) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if cfg.DBDriver == "sqlite" && dsn == "" {
		dsn = defaultSQLitePath
	}
	db, err := Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	fmt.Printf("✅ Database connected successfully (%s)\n", cfg.DBDriver)
	return db, nil
}

// Open builds a gorm handle for postgres or sqlite.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// OpenInMemory returns an isolated in-memory sqlite database with the schema applied.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Administrator{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Participant{},
		&models.Answer{},
		&models.Result{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("✅ Database migration successful")
	return nil
}

// SeedAdministrator creates the bootstrap administrator when credentials are configured.
func SeedAdministrator(db *gorm.DB, cfg config.AppConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping administrator seed.")
		return nil
	}

	var count int64
	if err := db.Model(&models.Administrator{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for administrator: %w", err)
	}
	if count > 0 {
		log.Println("Administrator already exists.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash administrator password: %w", err)
	}

	admin := models.Administrator{
		Name:     cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}

	log.Println("✅ Administrator seeded successfully")
	return nil
}
