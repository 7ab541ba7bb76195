package interfaces

import (
	"github.com/google/wire"

	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/routes"
)

var InterfacesProvider = wire.NewSet(
	routes.RouteProvider,
	httpserver.NewHttpServer,
)
