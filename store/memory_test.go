package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"viralengine/types"
)

func sampleProject(id string, createdAt time.Time) *Project {
	return &Project{
		Status: types.ProjectStatus{
			ProjectID:   id,
			Status:      types.StatusPending,
			CurrentStep: "Initializing project...",
		},
		Request: types.GenerationRequest{
			Topic: "pyramids", VoiceID: "rachel", Duration: 60, Style: "engaging",
		},
		CreatedAt: createdAt,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := sampleProject("p1", time.Now().UTC())
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status.ProjectID != "p1" || got.Request.Topic != "pyramids" {
		t.Fatalf("unexpected project: %+v", got)
	}

	got.Status.Status = types.StatusCompleted
	got.Status.Progress = 100
	got.VideoPath = "/tmp/p1.mp4"
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if again.Status.Status != types.StatusCompleted || again.VideoPath != "/tmp/p1.mp4" {
		t.Fatalf("update not persisted: %+v", again)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v; want ErrNotFound", err)
	}
	if err := s.Update(ctx, sampleProject("missing", time.Now())); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update error = %v; want ErrNotFound", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Create(ctx, sampleProject("p1", time.Now())); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, _ := s.Get(ctx, "p1")
	got.Status.Status = types.StatusFailed

	fresh, _ := s.Get(ctx, "p1")
	if fresh.Status.Status != types.StatusPending {
		t.Fatal("mutating a Get result leaked into the store")
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	for i, id := range []string{"c", "a", "b"} {
		if err := s.Create(ctx, sampleProject(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	projects, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("List returned %d projects; want 3", len(projects))
	}
	want := []string{"c", "a", "b"} // creation order
	for i, p := range projects {
		if p.Status.ProjectID != want[i] {
			t.Fatalf("List[%d] = %s; want %s", i, p.Status.ProjectID, want[i])
		}
	}
}
