package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/auth"
	"github.com/AgentGrom/autoshop/models"
	"github.com/AgentGrom/autoshop/routes"
)

func main() {
	_ = godotenv.Load()

	logger := initLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.Category{},
		&models.Part{},
		&models.PartSpecification{},
		&models.Image{},
		&models.CarTrim{},
		&models.Car{},
		&models.Cart{},
		&models.CartItem{},
		&models.PickupPoint{},
		&models.Order{},
		&models.OrderItem{},
		&models.CarOrder{},
		&models.Setting{},
	); err != nil {
		zap.S().Fatalw("auto-migrate failed", "error", err)
	}

	codes := auth.NewVerificationStore(auth.DefaultCodeTTL)
	codes.StartSweeper(time.Minute, make(chan struct{}))

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, codes)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zap.S().Infow("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}

func initLogger() *zap.Logger {
	if os.Getenv("GIN_MODE") == "release" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			zap.S().Fatalw("database connection failed", "error", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.S().Fatalw("database connection failed", "error", err)
	}
	return db
}
