package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/logger"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/tokenauth"
	middleware "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/auth"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/chat"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/public"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/translation"
)

type HTTPServer struct {
	engine           *gin.Engine
	server           *http.Server
	authRoute        *auth.AuthRoute
	chatRoute        *chat.ChatRoute
	translationRoute *translation.TranslationRoute
	documentRoute    *document.DocumentRoute
	publicShareRoute *public.PublicShareRoute
	tokens           *tokenauth.Manager
	users            user.Repository
	config           *config.Config
	logger           zerolog.Logger
}

func NewHttpServer(
	authRoute *auth.AuthRoute,
	chatRoute *chat.ChatRoute,
	translationRoute *translation.TranslationRoute,
	documentRoute *document.DocumentRoute,
	publicShareRoute *public.PublicShareRoute,
	tokens *tokenauth.Manager,
	users user.Repository,
	cfg *config.Config,
) *HTTPServer {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &HTTPServer{
		engine:           gin.New(),
		authRoute:        authRoute,
		chatRoute:        chatRoute,
		translationRoute: translationRoute,
		documentRoute:    documentRoute,
		publicShareRoute: publicShareRoute,
		tokens:           tokens,
		users:            users,
		config:           cfg,
		logger:           logger.GetLogger().With().Str("component", "http-server").Logger(),
	}

	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(server.logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server.bindRoutes()
	return server
}

func (httpServer *HTTPServer) bindRoutes() {
	api := httpServer.engine.Group("/api")

	protected := api.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.tokens, httpServer.users, httpServer.logger),
		middleware.RateLimitMiddleware(float64(httpServer.config.RateLimitPerMinute)),
	)

	httpServer.authRoute.RegisterRouter(api, protected)
	httpServer.chatRoute.RegisterRouter(protected)
	httpServer.translationRoute.RegisterRouter(protected)
	httpServer.documentRoute.RegisterRouter(protected)

	// Anonymous, rate limited per IP inside the route.
	httpServer.publicShareRoute.RegisterRouter(api)
}

func (httpServer *HTTPServer) Run() error {
	httpServer.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", httpServer.config.HTTPPort),
		Handler:           httpServer.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer.logger.Info().Int("port", httpServer.config.HTTPPort).Msg("http server listening")
	if err := httpServer.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (httpServer *HTTPServer) Shutdown(ctx context.Context) error {
	if httpServer.server == nil {
		return nil
	}
	return httpServer.server.Shutdown(ctx)
}
