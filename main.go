package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"returnsconsole/internal/config"
	"returnsconsole/internal/database"
	"returnsconsole/internal/handlers"
	"returnsconsole/internal/logging"
	"returnsconsole/internal/metrics"
	"returnsconsole/internal/middleware"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("config could not be loaded")
	}
	logger := logging.Configure(os.Stdout, config.AppEnv.LogLevel, config.AppEnv.LogFormat)

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		logger.WithError(err).Fatal("mongo connection failed")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(config.AppEnv.DBName)
	logger.WithField("db", db.Name()).Info("MongoDB connected")

	if err := database.EnsureOrderIndexes(db); err != nil {
		logger.WithError(err).Warn("order index warning")
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		logger.WithError(err).Warn("product index warning")
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		logger.WithError(err).Warn("customer index warning")
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.WithError(err).Fatal("validator registration failed")
	}

	reg := metrics.NewRegistry()
	deps := handlers.Deps{
		Store:          database.NewStore(db),
		Metrics:        reg,
		RequestTimeout: config.AppEnv.RequestTimeout,
		Currency:       config.AppEnv.Currency,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(reg.Handler()))

	api := r.Group("/api")
	api.Use(middleware.ConsoleAuth(config.AppEnv.JWTSecret))
	handlers.RegisterConsoleRoutes(api, deps)

	addr := ":" + config.AppEnv.Port
	logger.WithField("addr", addr).Info("return console listening")
	if err := r.Run(addr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
