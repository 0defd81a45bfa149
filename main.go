package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"viralengine/api"
	"viralengine/config"
	"viralengine/events"
	"viralengine/pipeline"
	"viralengine/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":" + config.DefaultPort
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	projectStore := buildStore()
	runner := pipeline.NewRunner(pipeline.Config{
		Store:     projectStore,
		Scripts:   buildScripts(),
		Renderer:  buildRenderer(),
		Uploader:  pipeline.NewArtifactUploaderFromEnv(context.Background()),
		Events:    buildPublisher(),
		StepDelay: 2 * time.Second,
	})

	r := api.NewRouter(api.Deps{
		Store:  projectStore,
		Runner: runner,
	})

	log.Printf("Starting Viral Engine server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  GET  /api/voices")
	log.Println("  POST /api/generate")
	log.Println("  GET  /api/status/:project_id")
	log.Println("  GET  /api/projects")
	log.Println("  GET  /api/download/:project_id")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildStore prefers Redis when configured so project status survives a
// restart; otherwise projects live in process memory.
func buildStore() store.Store {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return store.NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Using in-memory store.", err)
		return store.NewMemoryStore()
	}

	log.Printf("Using Redis project store at %s", redisAddr)
	return store.NewRedisStore(rdb)
}

// buildScripts uses Cohere when a key is configured, otherwise the
// deterministic stub.
func buildScripts() pipeline.ScriptProvider {
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		return pipeline.NewCohereScripts(key, os.Getenv("COHERE_MODEL"))
	}
	log.Println("COHERE_API_KEY not set; using stub script provider")
	return pipeline.StubScripts{}
}

// buildRenderer uses ffmpeg when background clips are available, otherwise
// the stub renderer.
func buildRenderer() pipeline.Renderer {
	dir := config.GetEnvOrDefault("BACKGROUNDS_DIR", config.BackgroundsDir)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return &pipeline.FFmpegRenderer{BackgroundsDir: dir}
	}
	log.Printf("Backgrounds directory %q not found; using stub renderer", dir)
	return pipeline.StubRenderer{}
}

// buildPublisher wires Kafka lifecycle events when brokers are configured.
func buildPublisher() *events.Publisher {
	if os.Getenv("KAFKA_BOOTSTRAP_SERVERS") == "" {
		return nil
	}
	publisher, err := events.NewPublisher(events.BrokersFromEnv(), events.TopicFromEnv())
	if err != nil {
		log.Printf("Warning: failed to connect Kafka publisher: %v (events disabled)", err)
		return nil
	}
	return publisher
}
