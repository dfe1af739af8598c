package regression

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/concrete-strength/internal/storage"
)

// Source yields the raw bytes of a model artifact
type Source interface {
	Open(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the artifact from the local filesystem
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string {
	return s.Path
}

// ObjectSource downloads the artifact from a bucket
type ObjectSource struct {
	Store storage.S3Service
	Key   string
}

func (s ObjectSource) Open(ctx context.Context) ([]byte, error) {
	return s.Store.DownloadFile(ctx, s.Key)
}

func (s ObjectSource) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Store.Bucket(), s.Key)
}

// Load reads and decodes the artifact once. Any error means the model is unusable.
func Load(ctx context.Context, src Source) (Model, error) {
	data, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", src, err)
	}

	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact %s: %w", src, err)
	}

	log.Info().
		Str("source", src.String()).
		Str("kind", model.Kind()).
		Strs("features", model.FeatureNames()).
		Msg("Model artifact loaded")

	return model, nil
}
