package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/world-service/internal/http/v1/world"
)

// Register wires all v1 operations into the provided API.
func Register(api huma.API) {
	world.Register(api)
}
