package translation

import (
	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	translationrequests "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/requests/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses"
	translationresponses "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type TranslationRoute struct {
	translations *translation.Service
}

func NewTranslationRoute(translations *translation.Service) *TranslationRoute {
	return &TranslationRoute{translations: translations}
}

func (route *TranslationRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/translation")
	group.POST("/translate", route.translate)
	group.POST("/detect", route.detect)
	group.GET("/history", route.history)
}

// translate godoc
// @Summary Translate text
// @Description Translates text between two languages. Repeated requests for
// @Description the same text and language pair are served from cache.
// @Tags Translation API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body translationrequests.TranslateRequest true "Text and language pair"
// @Success 200 {object} responses.Envelope{data=translationresponses.TranslationView} "Translation"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Inference backend error"
// @Router /api/translation/translate [post]
func (route *TranslationRoute) translate(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "aa1b2c3d-4e5f-4a6b-9c7d-8e9f0a1b2c3d")
		return
	}

	var req translationrequests.TranslateRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "bb2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e")
		return
	}

	result, err := route.translations.Translate(reqCtx.Request.Context(), principal.UserID, req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, translationresponses.NewTranslationView(result.Translation, result.Cached))
}

// detect godoc
// @Summary Detect the language of a text sample
// @Tags Translation API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body translationrequests.DetectRequest true "Text sample"
// @Success 200 {object} responses.Envelope{data=translation.DetectedLanguage} "Detected language"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Inference backend error"
// @Router /api/translation/detect [post]
func (route *TranslationRoute) detect(reqCtx *gin.Context) {
	if _, ok := middlewares.PrincipalFromContext(reqCtx); !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "cc3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f")
		return
	}

	var req translationrequests.DetectRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "dd4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f6a")
		return
	}

	detected, err := route.translations.Detect(reqCtx.Request.Context(), req.Text)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, detected)
}

// history godoc
// @Summary List recent translations
// @Description Returns the caller's most recent translations, newest first.
// @Tags Translation API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.Envelope{data=[]translationresponses.TranslationView} "Translations"
// @Router /api/translation/history [get]
func (route *TranslationRoute) history(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "ee5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a7b")
		return
	}

	history, err := route.translations.History(reqCtx.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, translationresponses.NewTranslationViews(history))
}
