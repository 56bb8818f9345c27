// Package minio はS3互換ストレージ（MinIOなど）へ画像を書き込むストレージアダプターを提供します。
// ローカル開発でAWSの代わりに使います。
package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// PutObjectAPI はminioクライアントのうち本パッケージが使う操作です。
type PutObjectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioStorage はS3互換エンドポイントへオブジェクトを書き込みます。
type MinioStorage struct {
	client PutObjectAPI
}

// MinioStorageがObjectStorageを実装していることをコンパイル時に検証します。
var _ usecase.ObjectStorage = (*MinioStorage)(nil)

// NewMinioStorage は静的な認証情報でMinioStorageを生成します。
func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStorage{client: client}, nil
}

// NewMinioStorageWithClient は任意のクライアント実装でMinioStorageを生成します。
func NewMinioStorageWithClient(client PutObjectAPI) *MinioStorage {
	return &MinioStorage{client: client}
}

// Upload はbodyをtarget.Bucket/target.Keyへ書き込みます。
func (m *MinioStorage) Upload(ctx context.Context, target entity.StorageTarget, body io.Reader, size int64, contentType string) error {
	info, err := m.client.PutObject(ctx, target.Bucket, target.Key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio put object %s/%s: %w", target.Bucket, target.Key, err)
	}

	slog.Info("uploaded object", "bucket", info.Bucket, "key", info.Key, "size", info.Size, "etag", info.ETag)
	return nil
}
