package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
)

type mockPutObjectAPI struct {
	putFn func(ctx context.Context, params *awss3.PutObjectInput) (*awss3.PutObjectOutput, error)
	calls int
}

func (m *mockPutObjectAPI) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	m.calls++
	return m.putFn(ctx, params)
}

func TestS3Storage_Upload(t *testing.T) {
	target := entity.NewStorageTarget("ppe-detection-input-v1", "s3-sample-images/", "site.png")

	tests := []struct {
		name        string
		putErr      error
		expectedErr string
	}{
		{name: "success"},
		{name: "error: access denied", putErr: errors.New("AccessDenied"), expectedErr: "AccessDenied"},
		{name: "error: no such bucket", putErr: errors.New("NoSuchBucket"), expectedErr: "s3 put object ppe-detection-input-v1/s3-sample-images/site.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockPutObjectAPI{
				putFn: func(ctx context.Context, params *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
					assert.Equal(t, "ppe-detection-input-v1", aws.ToString(params.Bucket))
					assert.Equal(t, "s3-sample-images/site.png", aws.ToString(params.Key))
					assert.Equal(t, int64(4), aws.ToInt64(params.ContentLength))
					assert.Equal(t, "image/png", aws.ToString(params.ContentType))
					body, err := io.ReadAll(params.Body)
					require.NoError(t, err)
					assert.Equal(t, []byte("data"), body)
					return &awss3.PutObjectOutput{}, tt.putErr
				},
			}

			err := NewS3StorageWithClient(api).Upload(context.Background(), target, bytes.NewReader([]byte("data")), 4, "image/png")

			assert.Equal(t, 1, api.calls)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.ErrorIs(t, err, tt.putErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
