package document

import (
	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	documentrequests "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/requests/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses"
	documentresponses "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type DocumentRoute struct {
	documents *document.Service
}

func NewDocumentRoute(documents *document.Service) *DocumentRoute {
	return &DocumentRoute{documents: documents}
}

func (route *DocumentRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/documents")
	group.GET("", route.listDocuments)
	group.POST("/generate", route.generateDocument)
	group.GET("/:documentId", route.getDocument)
	group.DELETE("/:documentId", route.deleteDocument)
}

// generateDocument godoc
// @Summary Generate a legal document
// @Description Renders a named template with the caller's data through the
// @Description inference backend and stores the result.
// @Tags Documents API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body documentrequests.GenerateDocumentRequest true "Template and data"
// @Success 201 {object} responses.Envelope{data=documentresponses.DocumentView} "Generated document"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Inference backend error"
// @Router /api/documents/generate [post]
func (route *DocumentRoute) generateDocument(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "f1a2b3c4-d5e6-4f7a-8b9c-0d1e2f3a4b5c")
		return
	}

	var req documentrequests.GenerateDocumentRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "a3b4c5d6-e7f8-4a9b-8c0d-1e2f3a4b5c6d")
		return
	}

	doc, err := route.documents.Generate(reqCtx.Request.Context(), principal.UserID, req.TemplateName, req.Data)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.Created(reqCtx, documentresponses.NewDocumentView(doc))
}

// listDocuments godoc
// @Summary List generated documents
// @Tags Documents API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.Envelope{data=[]documentresponses.DocumentView} "Documents, newest first"
// @Router /api/documents [get]
func (route *DocumentRoute) listDocuments(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "b5c6d7e8-f9a0-4b1c-8d2e-3f4a5b6c7d8e")
		return
	}

	documents, err := route.documents.List(reqCtx.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, documentresponses.NewDocumentViews(documents))
}

// getDocument godoc
// @Summary Get a generated document
// @Tags Documents API
// @Security BearerAuth
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} responses.Envelope{data=documentresponses.DocumentView} "Document"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Document not found"
// @Router /api/documents/{documentId} [get]
func (route *DocumentRoute) getDocument(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "c7d8e9f0-a1b2-4c3d-9e4f-5a6b7c8d9e0f")
		return
	}

	doc, err := route.documents.Get(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("documentId"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, documentresponses.NewDocumentView(doc))
}

// deleteDocument godoc
// @Summary Delete a generated document
// @Tags Documents API
// @Security BearerAuth
// @Param documentId path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Document not found"
// @Router /api/documents/{documentId} [delete]
func (route *DocumentRoute) deleteDocument(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "d9e0f1a2-b3c4-4d5e-8f6a-7b8c9d0e1f2a")
		return
	}

	if err := route.documents.Delete(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("documentId")); err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.NoContent(reqCtx)
}
