package types

// Voice is one entry of the remote voice catalog. Voices are fetched once
// and treated as read-only.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Styles lists the narration styles the generation service accepts.
var Styles = []string{"engaging", "educational", "dramatic", "humorous"}

// IsValidStyle reports whether style is one of the accepted narration styles.
func IsValidStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}

// GenerationRequest describes one video generation job. It is constructed
// once at submission time and never mutated.
type GenerationRequest struct {
	Topic    string `json:"topic"`
	VoiceID  string `json:"voice_id"`
	Duration int    `json:"duration"` // seconds
	Style    string `json:"style"`
}

// Validate checks the request before it is allowed near the network.
// Whether VoiceID references a voice that actually exists in the catalog is
// the caller's responsibility; only shape is checked here.
func (r GenerationRequest) Validate() error {
	if r.Topic == "" {
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	}
	if r.VoiceID == "" {
		return &ValidationError{Field: "voice_id", Reason: "must not be empty"}
	}
	if r.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be a positive number of seconds"}
	}
	if !IsValidStyle(r.Style) {
		return &ValidationError{Field: "style", Reason: "must be one of: " + joinStyles()}
	}
	return nil
}

func joinStyles() string {
	out := ""
	for i, s := range Styles {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// Project status vocabulary. The server owns the full set and may grow it;
// clients must treat unknown values as in-progress. Only the two terminal
// values are distinguished.
const (
	StatusPending           = "pending"
	StatusGeneratingScript  = "generating_script"
	StatusGeneratingAudio   = "generating_audio"
	StatusGeneratingVisuals = "generating_visuals"
	StatusProcessingVideo   = "processing_video"
	StatusCompleted         = "completed"
	StatusFailed            = "failed"
)

// ProjectStatus is the server's view of one generation project.
type ProjectStatus struct {
	ProjectID   string `json:"project_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"` // 0-100, displayed as last received
	CurrentStep string `json:"current_step"`
	VideoURL    string `json:"video_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Terminal reports whether the status ends the job's lifecycle.
func (s ProjectStatus) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}
