package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"studio-ops.backend/internal/interfaces/http/middleware"
	"studio-ops.backend/pkg/metrics"
)

const (
	serviceName    = "studio-ops-backend"
	serviceVersion = "0.1.0"
)

func newRouter(d routeDeps, origins []string, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, origins)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}
	registerAPIV1Routes(r, d)
	return r
}

// applyCORSMiddleware echoes allowed origins; an empty list allows any origin.
func applyCORSMiddleware(r *gin.Engine, origins []string) {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", strings.Join([]string{
			"Content-Type", "Authorization", middleware.RequestIDHeader, middleware.IdempotencyHeader,
		}, ", "))
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}
