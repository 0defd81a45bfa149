package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"viralengine/config"
	"viralengine/events"
	"viralengine/store"
	"viralengine/types"
)

// Stage progress checkpoints, mirroring what the generation service reports
// to clients.
const (
	progressScriptStart = 10
	progressScriptDone  = 25
	progressAudioDone   = 45
	progressVisualsDone = 70
	progressProcessing  = 80
	progressCompleted   = 100
)

// Runner drives a project through the generation stages, updating the store
// after every transition so pollers always see the latest step.
type Runner struct {
	store     store.Store
	scripts   ScriptProvider
	renderer  Renderer
	uploader  *ArtifactUploader // optional
	events    *events.Publisher // optional
	stepDelay time.Duration
	outputDir string
}

// Config wires a Runner. Store, Scripts, and Renderer are required;
// Uploader and Events are optional. StepDelay paces the simulated stages
// and is zero in tests.
type Config struct {
	Store     store.Store
	Scripts   ScriptProvider
	Renderer  Renderer
	Uploader  *ArtifactUploader
	Events    *events.Publisher
	StepDelay time.Duration
	OutputDir string
}

// NewRunner creates a pipeline runner.
func NewRunner(cfg Config) *Runner {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = config.OutputDir
	}
	return &Runner{
		store:     cfg.Store,
		scripts:   cfg.Scripts,
		renderer:  cfg.Renderer,
		uploader:  cfg.Uploader,
		events:    cfg.Events,
		stepDelay: cfg.StepDelay,
		outputDir: outputDir,
	}
}

// Start launches generation for the project in the background.
func (r *Runner) Start(projectID string) {
	go func() {
		if err := r.Run(context.Background(), projectID); err != nil {
			log.Printf("Generation failed for project %s: %v", projectID, err)
		}
	}()
}

// Run executes the full generation sequence for one project. Any stage error
// marks the project failed with the error message visible to pollers.
func (r *Runner) Run(ctx context.Context, projectID string) error {
	rec, err := r.store.Get(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", projectID, err)
	}

	// Step 1: Script
	if err := r.advance(ctx, rec, types.StatusGeneratingScript, progressScriptStart,
		"Writing engaging script and scene descriptions..."); err != nil {
		return err
	}
	script, err := r.scripts.GenerateScript(ctx, rec.Request.Topic, rec.Request.Duration, rec.Request.Style)
	if err != nil {
		return r.fail(ctx, rec, fmt.Errorf("script generation: %w", err))
	}
	if err := r.advance(ctx, rec, types.StatusGeneratingScript, progressScriptDone,
		fmt.Sprintf("Script ready with %d scenes", len(script.Scenes))); err != nil {
		return err
	}
	r.pace()

	// Step 2: Voiceover
	if err := r.advance(ctx, rec, types.StatusGeneratingAudio, progressAudioDone,
		"Generating AI voiceover..."); err != nil {
		return err
	}
	r.pace()

	// Step 3: Visuals
	if err := r.advance(ctx, rec, types.StatusGeneratingVisuals, progressVisualsDone,
		fmt.Sprintf("Generating %d scene clips...", len(script.Scenes))); err != nil {
		return err
	}
	r.pace()

	// Step 4: Assemble
	if err := r.advance(ctx, rec, types.StatusProcessingVideo, progressProcessing,
		"Merging clips and adding subtitles"); err != nil {
		return err
	}
	outputPath := filepath.Join(r.outputDir, projectID+".mp4")
	if err := r.renderer.Render(ctx, rec.Request, script, outputPath); err != nil {
		return r.fail(ctx, rec, fmt.Errorf("video assembly: %w", err))
	}
	rec.VideoPath = outputPath

	videoURL := "/api/download/" + projectID
	if r.uploader != nil {
		url, err := r.uploader.Upload(ctx, projectID, outputPath)
		if err != nil {
			// Local serving still works; keep going.
			log.Printf("Warning: artifact upload failed for %s: %v", projectID, err)
		} else {
			videoURL = url
		}
	}

	rec.Status.Status = types.StatusCompleted
	rec.Status.Progress = progressCompleted
	rec.Status.CurrentStep = "Video ready!"
	rec.Status.VideoURL = videoURL
	if err := r.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("store completed project %s: %w", projectID, err)
	}
	r.publish(rec.Status)

	log.Printf("Project %s completed: %s", projectID, videoURL)
	return nil
}

// advance moves the project to the given stage and persists it.
func (r *Runner) advance(ctx context.Context, rec *store.Project, status string, progress int, step string) error {
	rec.Status.Status = status
	rec.Status.Progress = progress
	rec.Status.CurrentStep = step
	if err := r.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("store project %s: %w", rec.Status.ProjectID, err)
	}
	return nil
}

// fail marks the project failed and surfaces the error to pollers.
func (r *Runner) fail(ctx context.Context, rec *store.Project, cause error) error {
	rec.Status.Status = types.StatusFailed
	rec.Status.Error = cause.Error()
	rec.Status.CurrentStep = fmt.Sprintf("Error: %v", cause)
	if err := r.store.Update(ctx, rec); err != nil {
		log.Printf("Warning: failed to store failure for %s: %v", rec.Status.ProjectID, err)
	}
	r.publish(rec.Status)
	return cause
}

func (r *Runner) publish(status types.ProjectStatus) {
	if r.events == nil {
		return
	}
	if err := r.events.PublishStatus(status); err != nil {
		log.Printf("Warning: failed to publish event for %s: %v", status.ProjectID, err)
	}
}

func (r *Runner) pace() {
	if r.stepDelay > 0 {
		time.Sleep(r.stepDelay)
	}
}
