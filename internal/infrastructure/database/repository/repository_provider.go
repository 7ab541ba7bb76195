package repository

import (
	"github.com/google/wire"

	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository/conversationrepo"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository/documentrepo"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository/sharerepo"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository/translationrepo"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	userrepo.NewRefreshTokenGormRepository,
	conversationrepo.NewConversationGormRepository,
	conversationrepo.NewMessageGormRepository,
	sharerepo.NewShareGormRepository,
	translationrepo.NewTranslationGormRepository,
	documentrepo.NewDocumentGormRepository,
)
