package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"

	collectionPath = "/api/products"
)

type HealthChecker interface {
	Health() error
}

func RegisterRoutes(router *gin.Engine, handler *Handler, checker HealthChecker) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed)

	router.GET(collectionPath, handler.ListProducts)
	router.POST(collectionPath, handler.CreateProduct)
	router.GET(collectionPath+"/:id", handler.GetProduct)
	router.PUT(collectionPath+"/:id", handler.UpdateProduct)
	router.DELETE(collectionPath+"/:id", handler.DeleteProduct)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := checker.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": healthStatusUnhealthy})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": healthStatusOK})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func methodNotAllowed(c *gin.Context) {
	path := c.Request.URL.Path
	switch {
	case path == collectionPath:
		c.Header("Allow", "GET, POST")
	case strings.HasPrefix(path, collectionPath+"/"):
		c.Header("Allow", "GET, PUT, DELETE")
	}
	c.JSON(http.StatusMethodNotAllowed, fail("Method not allowed.", nil))
}
