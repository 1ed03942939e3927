package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

// ObjectSourceConfig locates a corpus document in an S3-compatible bucket.
type ObjectSourceConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
	UseSSL    bool
}

// ObjectSource fetches the YAML corpus from object storage (S3, R2, MinIO).
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewObjectSource constructs the storage-backed source.
func NewObjectSource(cfg ObjectSourceConfig, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	secure := cfg.UseSSL
	if endpoint := strings.ToLower(strings.TrimSpace(cfg.Endpoint)); strings.HasPrefix(endpoint, "http://") {
		secure = false
	} else if strings.HasPrefix(endpoint, "https://") {
		secure = true
	}
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("component", "corpus.object"),
	}, nil
}

// Load implements faq.CorpusSource.
func (s *ObjectSource) Load(ctx context.Context) ([]faq.Entry, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get corpus object: %w", err)
	}
	defer obj.Close()

	data, err := readLimited(obj)
	if err != nil {
		return nil, fmt.Errorf("read corpus object: %w", err)
	}
	entries, err := decodeEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Describe(), err)
	}
	s.logger.Debug("corpus object fetched", "bucket", s.bucket, "key", s.key, "bytes", len(data))
	return entries, nil
}

// Describe implements faq.CorpusSource.
func (s *ObjectSource) Describe() string {
	return "s3://" + s.bucket + "/" + s.key
}

var _ faq.CorpusSource = (*ObjectSource)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
