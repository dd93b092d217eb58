package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"textlens/docs"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// AllowedOrigins is passed to the CORS middleware; "*" allows any origin.
	AllowedOrigins []string
	Logger         *logrus.Logger
}

// NewRouter wires the HTTP routes onto a fresh gin engine. Call gin.SetMode
// before NewRouter.
func NewRouter(h *APIHandler, opts RouterOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = h.Log
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()
	router.Use(RequestID(), AccessLog(log), gin.Recovery())
	router.Use(cors.New(corsConfig(origins)))

	router.POST("/analyze", h.AnalyzeHandler)
	router.GET("/entries/:id", h.GetEntryHandler)
	router.GET("/entries/", h.ListEntriesHandler)
	router.GET("/entries", h.ListEntriesHandler)
	router.DELETE("/delete/:id", h.DeleteEntryHandler)
	router.GET("/health", h.HealthHandler)

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return router
}

// corsConfig allows credentialed requests. Browsers reject a literal "*"
// alongside credentials, so a wildcard echoes the request origin instead.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
