package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"viralengine/config"
	"viralengine/types"
)

// Renderer produces the final video file for a project.
type Renderer interface {
	Render(ctx context.Context, req types.GenerationRequest, script *Script, outputPath string) error
}

// FFmpegRenderer assembles the clip from a random background video, trimming
// it to the requested duration and converting to the 9:16 output format.
type FFmpegRenderer struct {
	BackgroundsDir string
}

func (r *FFmpegRenderer) Render(ctx context.Context, req types.GenerationRequest, script *Script, outputPath string) error {
	backgrounds, err := filepath.Glob(filepath.Join(r.BackgroundsDir, "*.mp4"))
	if err != nil {
		return err
	}
	if len(backgrounds) == 0 {
		return fmt.Errorf("no background videos found in %s", r.BackgroundsDir)
	}
	background := backgrounds[rand.Intn(len(backgrounds))]

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	duration := req.Duration
	if duration > config.MaxDuration {
		duration = config.MaxDuration
	}

	// Crop and scale to 9:16 vertical format (center crop for horizontal
	// backgrounds), trimmed to the requested duration.
	video := ffmpeg.Input(background, ffmpeg.KwArgs{"t": fmt.Sprintf("%d", duration)})
	videoCropped := ffmpeg.Filter(
		[]*ffmpeg.Stream{video},
		"crop",
		ffmpeg.Args{"ih*9/16:ih"},
	).Filter(
		"scale",
		ffmpeg.Args{fmt.Sprintf("%d:%d", config.VideoWidth, config.VideoHeight)},
	)

	err = ffmpeg.Output([]*ffmpeg.Stream{videoCropped}, outputPath, ffmpeg.KwArgs{
		"c:v":    config.VideoCodec,
		"c:a":    config.AudioCodec,
		"preset": config.VideoPreset,
	}).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	return nil
}

// StubRenderer writes a placeholder artifact so the download endpoint has
// something to serve. Used for local development without ffmpeg, and by
// tests.
type StubRenderer struct{}

func (StubRenderer) Render(ctx context.Context, req types.GenerationRequest, script *Script, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	payload := fmt.Sprintf("placeholder video: topic=%q scenes=%d\n", req.Topic, len(script.Scenes))
	return os.WriteFile(outputPath, []byte(payload), 0o644)
}
