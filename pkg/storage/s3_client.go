package storage

import (
	"context"
	"fmt"

	"go-inquiry-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Provider represents the S3-compatible storage provider
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
)

// S3ClientConfig holds configuration for S3-compatible storage
type S3ClientConfig struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific settings
	WasabiEndpoint string // e.g., "s3.ap-southeast-1.wasabisys.com"
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// NewS3ClientConfig maps the attachment section of the config.
func NewS3ClientConfig(cfg config.AttachmentConfig) S3ClientConfig {
	provider := S3ProviderAWS
	if cfg.S3Provider == string(S3ProviderWasabi) {
		provider = S3ProviderWasabi
	}

	out := S3ClientConfig{
		Provider:        provider,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.Bucket,
	}

	if provider == S3ProviderWasabi {
		switch {
		case cfg.WasabiEndpoint != "":
			out.WasabiEndpoint = cfg.WasabiEndpoint
		case WasabiEndpoints[out.Region] != "":
			out.WasabiEndpoint = WasabiEndpoints[out.Region]
		default:
			out.WasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"
		}
	}

	return out
}

// NewS3Client creates an S3 client with the given config
// Supports both AWS S3 and Wasabi
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == S3ProviderWasabi {
		// Wasabi requires custom endpoint and path-style addressing
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		}), nil
	}

	return s3.NewFromConfig(awsCfg), nil
}

// ObjectPutter is the slice of the S3 API the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}
