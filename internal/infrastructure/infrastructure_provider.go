package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/aibackend"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/cache"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/repository"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/logger"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/scheduler"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/tokenauth"
)

// ProvideDB opens the Postgres connection from configuration.
func ProvideDB(cfg *config.Config) (*gorm.DB, error) {
	return database.NewDB(cfg.DatabaseURL)
}

// ProvideLogger hands the process logger to anything wire builds.
func ProvideLogger() zerolog.Logger {
	return logger.GetLogger()
}

// InfrastructureProvider wires storage, cache, backend client and token
// machinery.
var InfrastructureProvider = wire.NewSet(
	config.GetConfig,
	ProvideDB,
	ProvideLogger,
	transaction.NewDatabase,
	wire.Bind(new(conversation.TxRunner), new(*transaction.Database)),

	repository.RepositoryProvider,

	cache.NewClient,
	cache.NewStore,
	wire.Bind(new(conversation.ReplyCache), new(*cache.Store)),
	wire.Bind(new(translation.Cache), new(*cache.Store)),
	wire.Bind(new(user.Cache), new(*cache.Store)),

	aibackend.NewClient,
	wire.Bind(new(conversation.AIBackend), new(*aibackend.Client)),
	wire.Bind(new(translation.Backend), new(*aibackend.Client)),
	wire.Bind(new(document.Backend), new(*aibackend.Client)),

	tokenauth.NewManager,
	wire.Bind(new(user.TokenIssuer), new(*tokenauth.Manager)),

	scheduler.NewCleaner,
)
