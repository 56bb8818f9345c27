// Package s3 はAmazon S3へ画像を書き込むストレージアダプターを提供します。
package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// PutObjectAPI はS3クライアントのうち本パッケージが使う操作です。
// 読み出し・一覧・削除は行いません。
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// S3Storage はS3へオブジェクトを書き込みます。
type S3Storage struct {
	client PutObjectAPI
}

// S3StorageがObjectStorageを実装していることをコンパイル時に検証します。
var _ usecase.ObjectStorage = (*S3Storage)(nil)

// Options はS3クライアントの任意設定です。
type Options struct {
	Endpoint     string // S3互換エンドポイント（空ならAWS標準）
	UsePathStyle bool
}

// NewS3Storage は起動時に読み込んだaws.ConfigからS3Storageを生成します。
func NewS3Storage(cfg aws.Config, opts Options) *S3Storage {
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return &S3Storage{client: client}
}

// NewS3StorageWithClient は任意のクライアント実装でS3Storageを生成します。
func NewS3StorageWithClient(client PutObjectAPI) *S3Storage {
	return &S3Storage{client: client}
}

// Upload はbodyをtarget.Bucket/target.Keyへ書き込みます。
func (s *S3Storage) Upload(ctx context.Context, target entity.StorageTarget, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(target.Bucket),
		Key:           aws.String(target.Key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s/%s: %w", target.Bucket, target.Key, err)
	}

	slog.Info("uploaded object", "bucket", target.Bucket, "key", target.Key, "size", size)
	return nil
}
