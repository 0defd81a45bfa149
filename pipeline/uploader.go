package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"viralengine/common"
)

// ArtifactUploader pushes rendered videos to S3 and returns their public URL.
// When not configured, the pipeline falls back to serving the local file via
// the download endpoint.
type ArtifactUploader struct {
	s3         *common.S3
	bucket     string
	prefix     string
	publicBase string
}

// NewArtifactUploaderFromEnv returns an uploader if S3 is configured via env,
// or nil when it is not.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX,
// S3_PUBLIC_BASE_URL, S3_USE_PATH_STYLE=true
func NewArtifactUploaderFromEnv(ctx context.Context) *ArtifactUploader {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil
	}

	cfg := common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := common.NewS3(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (uploads disabled)", err)
		return nil
	}

	prefix := strings.TrimSpace(os.Getenv("S3_PREFIX"))
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}

	publicBase := strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL"))
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	return &ArtifactUploader{
		s3:         client,
		bucket:     bucket,
		prefix:     prefix,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Upload stores the rendered video and returns the URL it is reachable at.
func (u *ArtifactUploader) Upload(ctx context.Context, projectID, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	key := u.prefix + "videos/" + projectID + ".mp4"
	if err := u.s3.Put(ctx, u.bucket, key, f, "video/mp4", "public, max-age=300"); err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	return u.publicBase + "/" + key, nil
}
