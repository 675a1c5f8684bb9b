package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/genemanifest/blobstore"
)

// Client is the subset of the S3 API used by Store.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Options configures New.
type Options struct {
	Region   string
	Profile  string
	Endpoint string
	// UsePathStyle addresses buckets as path segments (needed by most
	// S3-compatible endpoints).
	UsePathStyle bool
	// DownloadConcurrency is the number of parallel ranged GETs used by
	// Download. Defaults to 1.
	DownloadConcurrency int
	// PartSize is the ranged GET size used by Download. Defaults to the
	// transfer manager default.
	PartSize int64
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(*Options) {
	return func(o *Options) { o.Region = region }
}

// WithProfile selects a shared-config profile.
func WithProfile(profile string) func(*Options) {
	return func(o *Options) { o.Profile = profile }
}

// WithEndpoint overrides the service endpoint and switches to path-style addressing.
func WithEndpoint(endpoint string) func(*Options) {
	return func(o *Options) {
		o.Endpoint = endpoint
		o.UsePathStyle = true
	}
}

// WithDownloadConcurrency sets the number of parallel ranged GETs used by Download.
func WithDownloadConcurrency(n int) func(*Options) {
	return func(o *Options) { o.DownloadConcurrency = n }
}

// Store implements blobstore.Store and blobstore.Lister for S3.
type Store struct {
	client     Client
	downloader *manager.Downloader
}

var (
	_ blobstore.Store      = (*Store)(nil)
	_ blobstore.Lister     = (*Store)(nil)
	_ blobstore.Downloader = (*Store)(nil)
)

// New loads the default AWS configuration chain and creates a Store.
func New(ctx context.Context, optFns ...func(*Options)) (*Store, error) {
	opts := Options{DownloadConcurrency: 1}
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return NewStore(client, func(o *Options) { *o = opts }), nil
}

// NewStore creates a Store around an existing client.
func NewStore(client Client, optFns ...func(*Options)) *Store {
	opts := Options{DownloadConcurrency: 1}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.DownloadConcurrency <= 0 {
		opts.DownloadConcurrency = 1
	}

	return &Store{
		client: client,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.Concurrency = opts.DownloadConcurrency
			if opts.PartSize > 0 {
				d.PartSize = opts.PartSize
			}
		}),
	}
}

// Open streams an object.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, translateError(err)
	}
	return resp.Body, nil
}

// Download fetches an object into w using ranged GETs.
func (s *Store) Download(ctx context.Context, bucket, key string, w io.WriterAt) (int64, error) {
	n, err := s.downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return n, translateError(err)
	}
	return n, nil
}

// List returns all keys in bucket starting with prefix.
func (s *Store) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translateError(err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func translateError(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", blobstore.ErrNotFound, err)
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %w", blobstore.ErrNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %w", blobstore.ErrNotFound, err)
	}
	return err
}
