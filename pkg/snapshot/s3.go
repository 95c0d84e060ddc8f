package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// S3API is the subset of *s3.Client that S3Store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures an S3 client for NewS3StoreFromConfig.
type S3Config struct {
	Bucket string
	Prefix string // key prefix, e.g. "snapshots/"

	// Region overrides the region from the shared AWS configuration.
	Region string

	// Endpoint points the client at an S3-compatible service such as MinIO.
	// Path-style addressing is used when it is set.
	Endpoint string
}

// S3Store writes each snapshot as a JSON object named by its zero-padded
// sequence number, plus a copy of the newest one under "latest.json".
//
// Example usage:
//
//	store, err := snapshot.NewS3StoreFromConfig(ctx, snapshot.S3Config{
//	    Bucket: "my-bucket",
//	    Prefix: "vtree/",
//	})
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates a store on an existing client.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// NewS3StoreFromConfig loads the default AWS configuration and creates a
// store with a new client.
func NewS3StoreFromConfig(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, vterrors.New("VT040").WithDetail("s3 bucket is not set")
	}
	var optfns []func(*config.LoadOptions) error
	if cfg.Region != "" {
		optfns = append(optfns, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, optfns...)
	if err != nil {
		return nil, vterrors.New("VT040").WithDetailf("load aws config: %v", err).Wrap(err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Store(client, cfg.Bucket, cfg.Prefix), nil
}

func (s *S3Store) key(seq uint64) string {
	return fmt.Sprintf("%s%020d.json", s.prefix, seq)
}

func (s *S3Store) latestKey() string {
	return s.prefix + "latest.json"
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return writeFailed(snap.Seq, err)
	}
	for _, key := range []string{s.key(snap.Seq), s.latestKey()} {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
			Metadata: map[string]string{
				"seq":  fmt.Sprint(snap.Seq),
				"kind": snap.Kind,
			},
		})
		if err != nil {
			return writeFailed(snap.Seq, fmt.Errorf("s3 put %s: %w", key, err))
		}
	}
	return nil
}

// Get implements Store.
func (s *S3Store) Get(ctx context.Context, seq uint64) (Snapshot, error) {
	return s.get(ctx, s.key(seq))
}

// Latest implements Store.
func (s *S3Store) Latest(ctx context.Context) (Snapshot, error) {
	return s.get(ctx, s.latestKey())
}

func (s *S3Store) get(ctx context.Context, key string) (Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Snapshot{}, notFound("s3://%s/%s", s.bucket, key)
		}
		return Snapshot{}, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("s3 read %s: %w", key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("s3 decode %s: %w", strings.TrimPrefix(key, s.prefix), err)
	}
	return snap, nil
}

// Close implements Store. The client has nothing to release.
func (s *S3Store) Close() error {
	return nil
}
