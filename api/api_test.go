package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"viralengine/pipeline"
	"viralengine/store"
	"viralengine/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newTestServer wires the full API with the in-memory store and stub
// providers, the same shape main() builds minus the real integrations.
func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	projectStore := store.NewMemoryStore()
	runner := pipeline.NewRunner(pipeline.Config{
		Store:     projectStore,
		Scripts:   pipeline.StubScripts{},
		Renderer:  pipeline.StubRenderer{},
		OutputDir: t.TempDir(),
	})
	srv := httptest.NewServer(NewRouter(Deps{Store: projectStore, Runner: runner}))
	t.Cleanup(srv.Close)
	return srv, projectStore
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeStatus(t *testing.T, resp *http.Response) types.ProjectStatus {
	t.Helper()
	defer resp.Body.Close()
	var status types.ProjectStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return status
}

func TestVoicesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/voices")
	if err != nil {
		t.Fatalf("GET /api/voices: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var voices []types.Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		t.Fatalf("decode voices: %v", err)
	}
	if len(voices) != len(DefaultVoices) {
		t.Fatalf("voices = %d; want %d", len(voices), len(DefaultVoices))
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGenerateRejectsInvalidRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name    string
		payload interface{}
	}{
		{"missing topic", types.GenerationRequest{VoiceID: "rachel", Duration: 60, Style: "engaging"}},
		{"missing voice", types.GenerationRequest{Topic: "pyramids", Duration: 60, Style: "engaging"}},
		{"unknown style", types.GenerationRequest{Topic: "pyramids", VoiceID: "rachel", Duration: 60, Style: "noir"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/generate", c.payload)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", resp.StatusCode)
			}
		})
	}
}

func TestGenerateDefaults(t *testing.T) {
	srv, projectStore := newTestServer(t)

	// Duration and style are optional on the wire.
	resp := postJSON(t, srv.URL+"/api/generate", map[string]string{
		"topic": "pyramids", "voice_id": "rachel",
	})
	status := decodeStatus(t, resp)
	if status.ProjectID == "" {
		t.Fatal("no project id assigned")
	}

	rec, err := projectStore.Get(context.Background(), status.ProjectID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Request.Duration != 60 || rec.Request.Style != "engaging" {
		t.Fatalf("defaults not applied: %+v", rec.Request)
	}
}

func TestGenerateAndPollToCompletion(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/generate", types.GenerationRequest{
		Topic: "pyramids", VoiceID: "rachel", Duration: 60, Style: "engaging",
	})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("generate status = %d: %s", resp.StatusCode, body)
	}
	submitted := decodeStatus(t, resp)
	if submitted.Status != types.StatusPending {
		t.Fatalf("initial status = %q; want %q", submitted.Status, types.StatusPending)
	}

	var last types.ProjectStatus
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r, err := http.Get(srv.URL + "/api/status/" + submitted.ProjectID)
		if err != nil {
			t.Fatalf("GET status: %v", err)
		}
		last = decodeStatus(t, r)
		if last.Terminal() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if last.Status != types.StatusCompleted {
		t.Fatalf("final status = %+v; want completed", last)
	}
	if last.Progress != 100 || last.VideoURL != "/api/download/"+submitted.ProjectID {
		t.Fatalf("completed status incomplete: %+v", last)
	}

	// The artifact is downloadable once completed.
	dl, err := http.Get(srv.URL + last.VideoURL)
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", dl.StatusCode)
	}
	payload, _ := io.ReadAll(dl.Body)
	if len(payload) == 0 {
		t.Fatal("download body empty")
	}
}

func TestStatusUnknownProject(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/status/does-not-exist")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Project not found" {
		t.Fatalf("detail = %q", body["detail"])
	}
}

func TestDownloadBeforeCompletion(t *testing.T) {
	srv, projectStore := newTestServer(t)

	// Seed a project directly so the runner never touches it.
	err := projectStore.Create(context.Background(), &store.Project{
		Status: types.ProjectStatus{
			ProjectID: "stuck", Status: types.StatusGeneratingAudio, Progress: 45,
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/download/stuck")
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d; want 409", resp.StatusCode)
	}
}

func TestListProjects(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/generate", types.GenerationRequest{
			Topic: "pyramids", VoiceID: "rachel", Duration: 60, Style: "engaging",
		})
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/projects")
	if err != nil {
		t.Fatalf("GET projects: %v", err)
	}
	defer resp.Body.Close()

	var statuses []types.ProjectStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("projects = %d; want 2", len(statuses))
	}
}
