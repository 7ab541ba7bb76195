package routes

import (
	"github.com/google/wire"

	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/auth"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/chat"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/public"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes/translation"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	chat.NewChatRoute,
	translation.NewTranslationRoute,
	document.NewDocumentRoute,
	public.NewPublicShareRoute,
)
