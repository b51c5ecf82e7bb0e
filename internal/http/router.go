// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zephyr/internal/http/handlers"
	"zephyr/internal/http/middleware"
)

func NewRouter(sp handlers.Communicator) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	h := handlers.NewCommunicateHandler(sp)
	r.POST("/communicate", h.Communicate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
