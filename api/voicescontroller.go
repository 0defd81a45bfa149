package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"viralengine/types"
)

// DefaultVoices is the built-in voice catalog served when no upstream voice
// provider is configured.
var DefaultVoices = []types.Voice{
	{ID: "rachel", Name: "Rachel", Category: "narration", Description: "Calm, measured female voice for explainers"},
	{ID: "adam", Name: "Adam", Category: "narration", Description: "Deep male voice with a documentary feel"},
	{ID: "bella", Name: "Bella", Category: "conversational", Description: "Upbeat female voice for fast-paced content"},
	{ID: "antoni", Name: "Antoni", Category: "conversational", Description: "Warm male voice, well suited to storytelling"},
	{ID: "elli", Name: "Elli", Category: "energetic", Description: "Bright, youthful voice for viral hooks"},
}

// RegisterVoiceRoutes registers the voice catalog endpoint.
func RegisterVoiceRoutes(r *gin.Engine, deps Deps) {
	voices := deps.Voices
	if voices == nil {
		voices = DefaultVoices
	}
	r.GET("/api/voices", func(c *gin.Context) {
		c.JSON(http.StatusOK, voices)
	})
}
