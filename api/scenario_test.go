package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"viralengine/client"
	"viralengine/pipeline"
	"viralengine/session"
	"viralengine/store"
	"viralengine/types"
)

// TestFullGenerationLifecycle drives the real client and session against the
// full server: submit, poll through the intermediate stages, land on
// completed with a usable download URL.
func TestFullGenerationLifecycle(t *testing.T) {
	projectStore := store.NewMemoryStore()
	runner := pipeline.NewRunner(pipeline.Config{
		Store:     projectStore,
		Scripts:   pipeline.StubScripts{},
		Renderer:  pipeline.StubRenderer{},
		StepDelay: 30 * time.Millisecond,
		OutputDir: t.TempDir(),
	})
	srv := httptest.NewServer(NewRouter(Deps{Store: projectStore, Runner: runner}))
	defer srv.Close()

	api := client.NewClient(srv.URL)

	voices, err := api.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices: %v", err)
	}
	if len(voices) == 0 {
		t.Fatal("no voices in catalog")
	}

	sess := session.New(api, session.WithInterval(10*time.Millisecond))
	err = sess.Submit(context.Background(), types.GenerationRequest{
		Topic:    "The history of the pyramids",
		VoiceID:  voices[0].ID,
		Duration: 60,
		Style:    "engaging",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) && !sess.State().Terminal() {
		time.Sleep(10 * time.Millisecond)
	}

	snap := sess.Snapshot()
	if snap.State != session.StateCompleted {
		t.Fatalf("final state = %s (failure=%q pollErr=%q)", snap.State, snap.Failure, snap.PollErr)
	}
	if snap.Latest == nil || snap.Latest.Progress != 100 {
		t.Fatalf("latest status = %+v; want progress 100", snap.Latest)
	}
	if !strings.HasPrefix(snap.ResultURL, "/api/download/") {
		t.Fatalf("ResultURL = %q", snap.ResultURL)
	}
	if snap.ResultURL != "/api/download/"+snap.ProjectID {
		t.Fatalf("ResultURL %q does not match project %q", snap.ResultURL, snap.ProjectID)
	}
}
