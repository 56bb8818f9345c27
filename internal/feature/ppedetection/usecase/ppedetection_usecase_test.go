package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// mockObjectStorage はObjectStorageインターフェースのモック実装です。
type mockObjectStorage struct {
	UploadFunc  func(ctx context.Context, target entity.StorageTarget, body []byte, size int64, contentType string) error
	UploadCalls int
}

func (m *mockObjectStorage) Upload(ctx context.Context, target entity.StorageTarget, body io.Reader, size int64, contentType string) error {
	m.UploadCalls++
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, target, data, size, contentType)
	}
	return nil
}

// mockPPEDetector はPPEDetectorインターフェースのモック実装です。
type mockPPEDetector struct {
	DetectFunc  func(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error)
	DetectCalls int
}

func (m *mockPPEDetector) DetectProtectiveEquipment(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
	m.DetectCalls++
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, req)
	}
	return nil, errors.New("DetectFunc is not implemented")
}

// memStagedFile はメモリ上のStagedFileです。
type memStagedFile struct {
	data    []byte
	removed bool
}

type nopSeekCloser struct{ *bytes.Reader }

func (nopSeekCloser) Close() error { return nil }

func (f *memStagedFile) Open() (io.ReadSeekCloser, error) {
	if f.removed {
		return nil, errors.New("staged file removed")
	}
	return nopSeekCloser{bytes.NewReader(f.data)}, nil
}

func (f *memStagedFile) Size() int64 { return int64(len(f.data)) }

func (f *memStagedFile) Remove() error {
	f.removed = true
	return nil
}

// mockStager はStagerインターフェースのモック実装です。
type mockStager struct {
	StageErr error
	staged   []*memStagedFile
}

func (m *mockStager) Stage(img entity.UploadedImage) (usecase.StagedFile, error) {
	if m.StageErr != nil {
		return nil, m.StageErr
	}
	f := &memStagedFile{data: append([]byte(nil), img.Data...)}
	m.staged = append(m.staged, f)
	return f, nil
}

func (m *mockStager) allRemoved() bool {
	for _, f := range m.staged {
		if !f.removed {
			return false
		}
	}
	return true
}

var testStorageConfig = usecase.StorageConfig{Bucket: "ppe-detection-input-v1", Prefix: "s3-sample-images/"}

func TestPPEDetectionUsecase_Inspect_Success(t *testing.T) {
	ctx := context.Background()
	img := entity.UploadedImage{Filename: "worker.jpg", Data: []byte("fake-image")}

	storage := &mockObjectStorage{
		UploadFunc: func(ctx context.Context, target entity.StorageTarget, body []byte, size int64, contentType string) error {
			assert.Equal(t, "ppe-detection-input-v1", target.Bucket)
			assert.Equal(t, "s3-sample-images/worker.jpg", target.Key)
			assert.Equal(t, []byte("fake-image"), body)
			assert.Equal(t, int64(len("fake-image")), size)
			assert.Equal(t, "image/jpeg", contentType)
			return nil
		},
	}
	detector := &mockPPEDetector{
		DetectFunc: func(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
			assert.Equal(t, []byte("fake-image"), req.Image)
			assert.Equal(t, float32(80.0), req.MinConfidence)
			assert.Equal(t, []string{"HEAD_COVER", "FACE_COVER", "HAND_COVER"}, req.RequiredEquipmentTypes)
			return &entity.DetectionResponse{Persons: []entity.Person{
				{BodyParts: []entity.BodyPart{
					{Name: "FACE", EquipmentDetections: []entity.EquipmentDetection{
						{Type: "FACE_COVER", Confidence: 92.3, CoversBodyPart: entity.CoversBodyPart{Value: true}},
					}},
				}},
			}}, nil
		},
	}
	stager := &mockStager{}

	uc := usecase.NewPPEDetectionUsecase(storage, detector, stager, testStorageConfig)
	ins := uc.Inspect(ctx, img)

	require.True(t, ins.Succeeded(), "unexpected failure: %+v", ins.Failure)
	assert.NotEmpty(t, ins.ID)
	assert.True(t, ins.Uploaded)
	assert.Equal(t, "Uploaded to S3 bucket `ppe-detection-input-v1` successfully!", ins.UploadMessage)
	require.NotNil(t, ins.Response)
	require.NotNil(t, ins.Report)
	assert.Equal(t, "FACE_COVER on FACE: ✅ Yes (92.3%)", ins.Report.Lines[1].Text)
	assert.Equal(t, 1, storage.UploadCalls)
	assert.Equal(t, 1, detector.DetectCalls)
	assert.True(t, stager.allRemoved(), "staged file must be removed")
}

func TestPPEDetectionUsecase_Inspect_NoPersons(t *testing.T) {
	detector := &mockPPEDetector{
		DetectFunc: func(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
			return &entity.DetectionResponse{}, nil
		},
	}
	uc := usecase.NewPPEDetectionUsecase(&mockObjectStorage{}, detector, &mockStager{}, testStorageConfig)

	ins := uc.Inspect(context.Background(), entity.UploadedImage{Filename: "empty.png", Data: []byte("png")})

	require.True(t, ins.Succeeded())
	assert.Equal(t, []entity.ReportLine{
		{Kind: entity.ReportLineWarning, Text: "No person detected in the image."},
	}, ins.Report.Lines)
}

func TestPPEDetectionUsecase_Inspect_Failures(t *testing.T) {
	testCases := []struct {
		name             string
		img              entity.UploadedImage
		stageErr         error
		uploadErr        error
		detectErr        error
		expectedKind     entity.FailureKind
		expectedMessage  string
		expectedUploaded bool
		expectedUploads  int
		expectedDetects  int
	}{
		{
			name:            "error: empty image data",
			img:             entity.UploadedImage{Filename: "a.jpg"},
			expectedKind:    entity.FailureInvalidImage,
			expectedMessage: "image data is empty",
		},
		{
			name:            "error: missing filename",
			img:             entity.UploadedImage{Data: []byte("x")},
			expectedKind:    entity.FailureInvalidImage,
			expectedMessage: "image filename is empty",
		},
		{
			name:            "error: staging fails",
			img:             entity.UploadedImage{Filename: "a.jpg", Data: []byte("x")},
			stageErr:        errors.New("no space left on device"),
			expectedKind:    entity.FailureStorage,
			expectedMessage: "Failed to upload to S3: no space left on device",
		},
		{
			name:            "error: storage permission denied skips detection",
			img:             entity.UploadedImage{Filename: "a.jpg", Data: []byte("x")},
			uploadErr:       errors.New("AccessDenied: Access Denied"),
			expectedKind:    entity.FailureStorage,
			expectedMessage: "Failed to upload to S3: AccessDenied: Access Denied",
			expectedUploads: 1,
		},
		{
			name:             "error: detection throttled after upload",
			img:              entity.UploadedImage{Filename: "a.jpg", Data: []byte("x")},
			detectErr:        errors.New("ThrottlingException: Rate exceeded"),
			expectedKind:     entity.FailureDetection,
			expectedMessage:  "Rekognition detection failed: ThrottlingException: Rate exceeded",
			expectedUploaded: true,
			expectedUploads:  1,
			expectedDetects:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := &mockObjectStorage{
				UploadFunc: func(ctx context.Context, target entity.StorageTarget, body []byte, size int64, contentType string) error {
					return tc.uploadErr
				},
			}
			detector := &mockPPEDetector{
				DetectFunc: func(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
					if tc.detectErr != nil {
						return nil, tc.detectErr
					}
					return &entity.DetectionResponse{}, nil
				},
			}
			stager := &mockStager{StageErr: tc.stageErr}
			uc := usecase.NewPPEDetectionUsecase(storage, detector, stager, testStorageConfig)

			ins := uc.Inspect(context.Background(), tc.img)

			require.NotNil(t, ins.Failure)
			assert.Equal(t, tc.expectedKind, ins.Failure.Kind)
			assert.Equal(t, tc.expectedMessage, ins.Failure.Message)
			assert.Equal(t, tc.expectedUploaded, ins.Uploaded)
			if tc.expectedUploaded {
				assert.NotEmpty(t, ins.UploadMessage)
			}
			assert.Nil(t, ins.Report)
			assert.Nil(t, ins.Response)
			assert.Equal(t, tc.expectedUploads, storage.UploadCalls)
			assert.Equal(t, tc.expectedDetects, detector.DetectCalls)
			assert.True(t, stager.allRemoved(), "staged file must be removed on every path")
		})
	}
}
