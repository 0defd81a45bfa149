package store

import (
	"context"
	"errors"
	"time"

	"viralengine/types"
)

// ErrNotFound is returned when a project id is unknown to the store.
var ErrNotFound = errors.New("store: project not found")

// Project is the server-side record of one generation job.
type Project struct {
	Status    types.ProjectStatus     `json:"status"`
	Request   types.GenerationRequest `json:"request"`
	VideoPath string                  `json:"video_path,omitempty"` // local rendered file, if any
	CreatedAt time.Time               `json:"created_at"`
}

// Store persists generation projects for the API server.
type Store interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
	List(ctx context.Context) ([]*Project, error)
}
