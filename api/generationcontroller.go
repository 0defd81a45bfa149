package api

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viralengine/config"
	"viralengine/pipeline"
	"viralengine/store"
	"viralengine/types"
)

type generationController struct {
	store  store.Store
	runner *pipeline.Runner
}

// RegisterGenerationRoutes registers project submission, status, listing,
// and download endpoints.
func RegisterGenerationRoutes(r *gin.Engine, deps Deps) {
	ctl := &generationController{store: deps.Store, runner: deps.Runner}
	r.POST("/api/generate", ctl.generate)
	r.GET("/api/status/:project_id", ctl.status)
	r.GET("/api/projects", ctl.list)
	r.GET("/api/download/:project_id", ctl.download)
}

// generate starts the video generation process.
// POST /api/generate
func (ctl *generationController) generate(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if req.Duration == 0 {
		req.Duration = config.DefaultDuration
	}
	if req.Style == "" {
		req.Style = "engaging"
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &store.Project{
		Status: types.ProjectStatus{
			ProjectID:   uuid.NewString(),
			Status:      types.StatusPending,
			Progress:    0,
			CurrentStep: "Initializing project...",
		},
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctl.store.Create(c.Request.Context(), project); err != nil {
		log.Printf("Failed to create project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	log.Printf("Project %s queued: topic=%q voice=%s duration=%ds style=%s",
		project.Status.ProjectID, req.Topic, req.VoiceID, req.Duration, req.Style)
	ctl.runner.Start(project.Status.ProjectID)

	c.JSON(http.StatusOK, project.Status)
}

// status reports the current state of one project.
// GET /api/status/:project_id
func (ctl *generationController) status(c *gin.Context) {
	project, ok := ctl.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project.Status)
}

// list returns the status of every known project.
// GET /api/projects
func (ctl *generationController) list(c *gin.Context) {
	projects, err := ctl.store.List(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	statuses := make([]types.ProjectStatus, 0, len(projects))
	for _, p := range projects {
		statuses = append(statuses, p.Status)
	}
	c.JSON(http.StatusOK, statuses)
}

// download serves the locally rendered video for a completed project.
// GET /api/download/:project_id
func (ctl *generationController) download(c *gin.Context) {
	project, ok := ctl.load(c)
	if !ok {
		return
	}

	if project.Status.Status != types.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "project is not completed"})
		return
	}
	if project.VideoPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Video not found"})
		return
	}
	if _, err := os.Stat(project.VideoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Video not found"})
		return
	}

	c.FileAttachment(project.VideoPath, project.Status.ProjectID+".mp4")
}

func (ctl *generationController) load(c *gin.Context) (*store.Project, bool) {
	id := c.Param("project_id")
	project, err := ctl.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return nil, false
	}
	if err != nil {
		log.Printf("Failed to load project %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return nil, false
	}
	return project, true
}
