package public

import (
	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/metrics"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses"
)

// PublicShareRoute serves shared conversations to anonymous readers.
type PublicShareRoute struct {
	shares    *share.Service
	rateLimit float64
}

func NewPublicShareRoute(shares *share.Service, cfg *config.Config) *PublicShareRoute {
	return &PublicShareRoute{
		shares:    shares,
		rateLimit: float64(cfg.ShareRateLimit),
	}
}

// RegisterRouter mounts the public share endpoints. No authentication, but
// per-IP rate limiting since tokens are guessable in principle.
func (route *PublicShareRoute) RegisterRouter(router gin.IRouter) {
	shared := router.Group("/shared")
	shared.Use(middlewares.RateLimitMiddleware(route.rateLimit))

	shared.GET("/:token", route.getSharedConversation)
}

// getSharedConversation godoc
// @Summary Read a shared conversation
// @Description Resolves a share token to the conversation projection. Each
// @Description successful read counts against the link's view limit.
// @Tags Public Shares API
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} responses.Envelope{data=share.SharedConversation} "Shared conversation"
// @Failure 403 {object} platformerrors.HTTPErrorResponse "Sharing disabled, expired or view limit reached"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown token"
// @Router /api/shared/{token} [get]
func (route *PublicShareRoute) getSharedConversation(reqCtx *gin.Context) {
	shared, err := route.shares.Resolve(reqCtx.Request.Context(), reqCtx.Param("token"))
	if err != nil {
		metrics.SharedLinkResolvesTotal.WithLabelValues("error").Inc()
		responses.HandleError(reqCtx, err)
		return
	}
	metrics.SharedLinkResolvesTotal.WithLabelValues("ok").Inc()
	responses.OK(reqCtx, shared)
}
