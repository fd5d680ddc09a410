// Package web serves the embedded browser UI for the products API.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var content embed.FS

func RegisterUI(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		page, err := content.ReadFile("index.html")
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
