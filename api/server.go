package api

import (
	"github.com/gin-gonic/gin"

	"viralengine/pipeline"
	"viralengine/store"
	"viralengine/types"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Store  store.Store
	Runner *pipeline.Runner
	Voices []types.Voice
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterVoiceRoutes(r, deps)
	RegisterGenerationRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}
