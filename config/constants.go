package config

import "time"

// API Defaults
const (
	// DefaultBaseURL is where the generation API is expected when no base
	// URL is supplied.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultPort is the port the development server binds to.
	DefaultPort = "8000"
)

// Polling Constants
const (
	// PollInterval is the fixed cadence at which a session re-fetches its
	// project status.
	PollInterval = 2 * time.Second
)

// Generation Constants
const (
	// DefaultDuration is the requested video length in seconds when the
	// caller does not specify one.
	DefaultDuration = 60

	// MaxDuration is the maximum allowed video length in seconds (3 minutes)
	MaxDuration = 180
)

// Video Output Constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio)
	VideoWidth = 720

	// VideoHeight is the output video height (9:16 aspect ratio)
	VideoHeight = 1280

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"
)

// Directory Constants
const (
	// OutputDir is the directory for rendered videos
	OutputDir = "output"

	// BackgroundsDir is the directory containing background clips used by
	// the ffmpeg renderer
	BackgroundsDir = "backgroundvids"
)
