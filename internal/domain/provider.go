package domain

import (
	"github.com/google/wire"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
)

// ServiceProvider wires every domain service.
var ServiceProvider = wire.NewSet(
	user.NewService,
	conversation.NewService,
	share.NewTokenGenerator,
	share.NewService,
	translation.NewService,
	document.NewService,
)
