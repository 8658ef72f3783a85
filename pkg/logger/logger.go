package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	appConfig "statsdb/pkg/config"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Name of the log file inside the configured log directory.
const logFileName = "statsdb.log"

// Returned by UploadToS3Bucket when there is no file or no bucket to upload to.
var ErrArchiveDisabled = errors.New("log archiving is disabled")

// S3 client subset used to archive the logs.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Logger that we will use across the service.
// Writes to stdout and, when a log dir is set, to a rotated file that can be archived to S3.
type Logger struct {
	*slog.Logger
	file     *lumberjack.Logger
	bucket   string
	uploader ObjectUploader
}

// New creates the logger from the log and bucket configuration.
func New(cfg *appConfig.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *appConfig.Config, stdout io.Writer) (*Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	l := &Logger{}
	w := stdout
	noColor := false

	if dir := strings.TrimSpace(cfg.Log.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("couldn't create the log dir: %w", err)
		}

		l.file = &lumberjack.Logger{
			Filename:   filepath.Join(dir, logFileName),
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		}
		w = io.MultiWriter(stdout, l.file)
		noColor = true
	}

	l.Logger = slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		AddSource:  true,
		NoColor:    noColor,
	}))

	if l.file != nil && cfg.Bucket.LogBucket != "" {
		l.bucket = cfg.Bucket.LogBucket
		l.uploader = newS3Client(&cfg.Bucket)
	}

	return l, nil
}

// Create the S3 client for the configured bucket.
func newS3Client(bucket *appConfig.BucketConfiguration) *s3.Client {
	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
		}
	})
}

// ArchivingEnabled reports whether the log file can be uploaded.
func (l *Logger) ArchivingEnabled() bool {
	return l.file != nil && l.uploader != nil
}

// Upload the current log file to the S3 bucket, then start a new file.
func (l *Logger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	if !l.ArchivingEnabled() {
		return ErrArchiveDisabled
	}

	f, err := os.Open(l.file.Filename)
	if err != nil {
		return fmt.Errorf("failed to open the log file: %w", err)
	}
	defer f.Close()

	_, err = l.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(objectKey),
		Body:   f,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Start clean after sending.
	return l.file.Rotate()
}

// Close the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
