package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logrus.WithField("route", route).Errorf("panic recovered: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, store Store) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return store.Ping(checkCtx)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	entry := logrus.WithFields(logrus.Fields{"route": route, "status": status})
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
