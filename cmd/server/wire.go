//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
