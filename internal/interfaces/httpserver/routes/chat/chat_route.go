package chat

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/metrics"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	chatrequests "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/requests/chat"
	sharerequests "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/requests/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses"
	chatresponses "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses/chat"
	shareresponses "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

// allowedUploadExtensions are the document types the agentic pipeline accepts.
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

type ChatRoute struct {
	conversations *conversation.Service
	shares        *share.Service
	maxUploadSize int64
}

func NewChatRoute(
	conversations *conversation.Service,
	shares *share.Service,
	cfg *config.Config,
) *ChatRoute {
	return &ChatRoute{
		conversations: conversations,
		shares:        shares,
		maxUploadSize: cfg.MaxUploadBytes,
	}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/chat/conversations")
	conversations.GET("", route.listConversations)
	conversations.POST("", route.createConversation)
	conversations.DELETE("", route.deleteAllConversations)
	conversations.GET("/:conversationId", route.getConversation)
	conversations.PATCH("/:conversationId", route.renameConversation)
	conversations.DELETE("/:conversationId", route.deleteConversation)
	conversations.GET("/:conversationId/info", route.getConversationInfo)
	conversations.GET("/:conversationId/messages", route.listMessages)
	conversations.POST("/:conversationId/messages", route.sendMessage)
	conversations.POST("/:conversationId/share", route.enableShare)
	conversations.DELETE("/:conversationId/share", route.disableShare)
}

// listConversations godoc
// @Summary List conversations
// @Description Lists the caller's conversations, most recently active first,
// @Description each annotated with its most recent message.
// @Tags Chat API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.Envelope{data=[]chatresponses.ConversationView} "Conversations"
// @Failure 401 {object} platformerrors.HTTPErrorResponse "Missing or invalid token"
// @Router /api/chat/conversations [get]
func (route *ChatRoute) listConversations(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e")
		return
	}

	entries, err := route.conversations.List(reqCtx.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.NewConversationListViews(entries))
}

// createConversation godoc
// @Summary Create a conversation
// @Description Opens a conversation in NORMAL or AGENTIC mode. When a first
// @Description message is given it seeds the title and is stored as the
// @Description opening user turn.
// @Tags Chat API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body chatrequests.CreateConversationRequest true "Conversation details"
// @Success 201 {object} responses.Envelope{data=chatresponses.ConversationView} "Conversation created"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed"
// @Router /api/chat/conversations [post]
func (route *ChatRoute) createConversation(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b")
		return
	}

	var req chatrequests.CreateConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "f6e5d4c3-b2a1-4f0e-9d8c-7b6a5f4e3d2c")
		return
	}

	conv, err := route.conversations.Create(reqCtx.Request.Context(), conversation.CreateInput{
		UserID:       principal.UserID,
		Title:        req.Title,
		Mode:         conversation.Mode(req.Mode),
		FirstMessage: req.FirstMessage,
	})
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	metrics.ConversationsCreatedTotal.Inc()
	responses.Created(reqCtx, chatresponses.NewConversationView(conv))
}

// getConversation godoc
// @Summary Get a conversation with its history
// @Tags Chat API
// @Security BearerAuth
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} responses.Envelope{data=chatresponses.ConversationDetail} "Conversation and messages"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId} [get]
func (route *ChatRoute) getConversation(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3c4d5e6f-7a8b-4c9d-a0e1-f2a3b4c5d6e7")
		return
	}

	conv, messages, err := route.conversations.Get(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.ConversationDetail{
		Conversation: chatresponses.NewConversationView(conv),
		Messages:     chatresponses.NewMessageViews(messages),
	})
}

// getConversationInfo godoc
// @Summary Get conversation metadata only
// @Description Returns the conversation row without loading its messages.
// @Tags Chat API
// @Security BearerAuth
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} responses.Envelope{data=chatresponses.ConversationView} "Conversation"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId}/info [get]
func (route *ChatRoute) getConversationInfo(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
		return
	}

	conv, err := route.conversations.Info(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.NewConversationView(conv))
}

// listMessages godoc
// @Summary List messages in a conversation
// @Tags Chat API
// @Security BearerAuth
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} responses.Envelope{data=[]chatresponses.MessageView} "Messages in chronological order"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId}/messages [get]
func (route *ChatRoute) listMessages(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "b8c9d0e1-f2a3-4b4c-9d5e-6f7a8b9c0d1e")
		return
	}

	_, messages, err := route.conversations.Get(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.NewMessageViews(messages))
}

// renameConversation godoc
// @Summary Rename a conversation
// @Tags Chat API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body chatrequests.RenameConversationRequest true "New title"
// @Success 200 {object} responses.Envelope{data=chatresponses.ConversationView} "Renamed conversation"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId} [patch]
func (route *ChatRoute) renameConversation(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "c2d3e4f5-a6b7-4c8d-9e0f-1a2b3c4d5e6f")
		return
	}

	var req chatrequests.RenameConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "d4e5f6a7-b8c9-4d0e-af1a-2b3c4d5e6f7a")
		return
	}

	conv, err := route.conversations.Rename(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId"), req.Title)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.NewConversationView(conv))
}

// deleteConversation godoc
// @Summary Delete a conversation
// @Description Removes the conversation, its messages and any share link.
// @Tags Chat API
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Success 204 "Deleted"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId} [delete]
func (route *ChatRoute) deleteConversation(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "e6f7a8b9-c0d1-4e2f-8a3b-4c5d6e7f8a9b")
		return
	}

	if err := route.conversations.Delete(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId")); err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.NoContent(reqCtx)
}

// deleteAllConversations godoc
// @Summary Delete every conversation the caller owns
// @Tags Chat API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.Envelope{data=chatresponses.DeletedResponse} "Deletion count"
// @Router /api/chat/conversations [delete]
func (route *ChatRoute) deleteAllConversations(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "f8a9b0c1-d2e3-4f4a-9b5c-6d7e8f9a0b1c")
		return
	}

	deleted, err := route.conversations.DeleteAll(reqCtx.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.DeletedResponse{Deleted: deleted})
}

// sendMessage godoc
// @Summary Send a message
// @Description Sends one user turn and returns the assistant reply. Accepts
// @Description either a JSON body or multipart form data; a multipart request
// @Description may attach one document (pdf, doc, docx or txt) which switches
// @Description an AGENTIC conversation to the upload-and-chat pipeline.
// @Tags Chat API
// @Security BearerAuth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body chatrequests.SendMessageRequest true "Message content"
// @Success 200 {object} responses.Envelope{data=chatresponses.SendMessageResponse} "Assistant reply"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed or unsupported file type"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Inference backend error"
// @Failure 504 {object} platformerrors.HTTPErrorResponse "Inference backend timed out"
// @Router /api/chat/conversations/{conversationId}/messages [post]
func (route *ChatRoute) sendMessage(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d")
		return
	}

	input := conversation.SendInput{
		UserID:         principal.UserID,
		ConversationID: reqCtx.Param("conversationId"),
	}

	if strings.HasPrefix(reqCtx.ContentType(), "multipart/form-data") {
		var req chatrequests.SendMessageRequest
		reqCtx.Request.Body = http.MaxBytesReader(reqCtx.Writer, reqCtx.Request.Body, route.maxUploadSize)
		if err := reqCtx.ShouldBind(&req); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid form data or file too large", "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f")
			return
		}
		input.Content = req.Content
		input.InputLanguage = req.InputLanguage
		input.OutputLanguage = req.OutputLanguage

		upload, err := route.readUpload(reqCtx)
		if err != nil {
			responses.HandleError(reqCtx, err)
			return
		}
		input.File = upload
	} else {
		var req chatrequests.SendMessageRequest
		if err := reqCtx.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "2e3f4a5b-6c7d-4e8f-9a0b-1c2d3e4f5a6b")
			return
		}
		input.Content = req.Content
		input.InputLanguage = req.InputLanguage
		input.OutputLanguage = req.OutputLanguage
	}

	result, err := route.conversations.Send(reqCtx.Request.Context(), input)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, chatresponses.NewSendMessageResponse(result))
}

// readUpload extracts the optional "file" part of a multipart turn.
func (route *ChatRoute) readUpload(reqCtx *gin.Context) (*conversation.FileUpload, error) {
	fileHeader, err := reqCtx.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			reqCtx.Request.Context(),
			platformerrors.LayerRoute,
			platformerrors.ErrorTypeValidation,
			"could not read uploaded file",
			err,
			"3a4b5c6d-7e8f-4a9b-8c0d-1e2f3a4b5c6d",
		)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExtensions[ext] {
		return nil, platformerrors.NewError(
			reqCtx.Request.Context(),
			platformerrors.LayerRoute,
			platformerrors.ErrorTypeValidation,
			"unsupported file type, expected pdf, doc, docx or txt",
			nil,
			"4c5d6e7f-8a9b-4c0d-9e1f-2a3b4c5d6e7f",
		)
	}
	if fileHeader.Size > route.maxUploadSize {
		return nil, platformerrors.NewError(
			reqCtx.Request.Context(),
			platformerrors.LayerRoute,
			platformerrors.ErrorTypeValidation,
			"file exceeds the upload size limit",
			nil,
			"5e6f7a8b-9c0d-4e1f-8a2b-3c4d5e6f7a8b",
		)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, platformerrors.NewError(
			reqCtx.Request.Context(),
			platformerrors.LayerRoute,
			platformerrors.ErrorTypeInternal,
			"could not open uploaded file",
			err,
			"6a7b8c9d-0e1f-4a2b-9c3d-4e5f6a7b8c9d",
		)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, platformerrors.NewError(
			reqCtx.Request.Context(),
			platformerrors.LayerRoute,
			platformerrors.ErrorTypeInternal,
			"could not read uploaded file",
			err,
			"7c8d9e0f-1a2b-4c3d-8e4f-5a6b7c8d9e0f",
		)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &conversation.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// enableShare godoc
// @Summary Enable sharing for a conversation
// @Description Creates a public share link, or returns the existing one
// @Description unchanged when the conversation is already shared.
// @Tags Chat API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body sharerequests.EnableShareRequest false "Optional view and expiry limits"
// @Success 200 {object} responses.Envelope{data=shareresponses.SharedLinkView} "Share link"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId}/share [post]
func (route *ChatRoute) enableShare(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "8e9f0a1b-2c3d-4e4f-9a5b-6c7d8e9f0a1b")
		return
	}

	var req sharerequests.EnableShareRequest
	if reqCtx.Request.ContentLength > 0 {
		if err := reqCtx.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "9a0b1c2d-3e4f-4a5b-8c6d-7e8f9a0b1c2d")
			return
		}
	}

	link, err := route.shares.Enable(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId"), share.Options{
		MaxViews:  req.MaxViews,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, shareresponses.NewSharedLinkView(link))
}

// disableShare godoc
// @Summary Disable sharing for a conversation
// @Description Deletes the share link. Previously issued tokens stop working
// @Description immediately.
// @Tags Chat API
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Success 204 "Sharing disabled"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Conversation not found"
// @Router /api/chat/conversations/{conversationId}/share [delete]
func (route *ChatRoute) disableShare(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "0b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e")
		return
	}

	if err := route.shares.Disable(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("conversationId")); err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.NoContent(reqCtx)
}
