package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// ScriptProvider turns a topic into a narration script plus a scene list.
type ScriptProvider interface {
	GenerateScript(ctx context.Context, topic string, durationSeconds int, style string) (*Script, error)
}

// Script is the output of the script generation stage.
type Script struct {
	Narration string
	Scenes    []Scene
}

// Scene is one visual unit of the final video.
type Scene struct {
	Description string
}

// CohereScripts generates scripts with the Cohere chat API.
type CohereScripts struct {
	client *cohereclient.Client
	model  string
}

// NewCohereScripts creates a Cohere-backed script provider.
func NewCohereScripts(apiKey, model string) *CohereScripts {
	if model == "" {
		model = "command-r-08-2024"
	}
	// Create a custom HTTP client that forces HTTP/1.1 to avoid HTTP/2 protocol errors
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereScripts{client: client, model: model}
}

func (c *CohereScripts) GenerateScript(ctx context.Context, topic string, durationSeconds int, style string) (*Script, error) {
	prompt := fmt.Sprintf(
		"Write a %s narration script for a %d second short-form vertical video about %q. "+
			"Use short punchy sentences. Separate each visual scene with a blank line. "+
			"Return only the script text, no headings.",
		style, durationSeconds, topic,
	)

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return nil, errors.New("cohere chat returned empty response")
	}

	return parseScript(resp.Text), nil
}

// parseScript splits generated text into scenes on blank lines. Text without
// blank-line breaks becomes a single scene.
func parseScript(text string) *Script {
	script := &Script{Narration: strings.TrimSpace(text)}
	for _, block := range strings.Split(script.Narration, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		script.Scenes = append(script.Scenes, Scene{Description: block})
	}
	if len(script.Scenes) == 0 {
		script.Scenes = []Scene{{Description: script.Narration}}
	}
	return script
}

// StubScripts produces a deterministic script without calling any API. Used
// when no Cohere key is configured, and by tests.
type StubScripts struct{}

func (StubScripts) GenerateScript(ctx context.Context, topic string, durationSeconds int, style string) (*Script, error) {
	// One scene per ~15 seconds of requested runtime.
	sceneCount := durationSeconds / 15
	if sceneCount < 1 {
		sceneCount = 1
	}

	var b strings.Builder
	scenes := make([]Scene, 0, sceneCount)
	for i := 0; i < sceneCount; i++ {
		desc := fmt.Sprintf("Scene %d: a %s look at %s.", i+1, style, topic)
		scenes = append(scenes, Scene{Description: desc})
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(desc)
	}

	return &Script{Narration: b.String(), Scenes: scenes}, nil
}
