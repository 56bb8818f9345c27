// Package usecase はppedetectionフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"ppe_backend/internal/feature/ppedetection/domain"
	"ppe_backend/internal/feature/ppedetection/domain/entity"
)

// ObjectStorage は画像をオブジェクトストレージへ書き込むリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ObjectStorage interface {
	// Upload はbodyの内容をtargetへ書き込みます。既存オブジェクトは上書きされます。
	Upload(ctx context.Context, target entity.StorageTarget, body io.Reader, size int64, contentType string) error
}

// PPEDetector は画像から保護具を検出する外部サービスのインターフェースです。
type PPEDetector interface {
	DetectProtectiveEquipment(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error)
}

// StagedFile はアップロード前に一時的に書き出した画像です。
type StagedFile interface {
	// Open は書き出した内容を先頭から読むためのリーダーを返します。
	Open() (io.ReadSeekCloser, error)
	Size() int64
	// Remove は一時ファイルを削除します。
	Remove() error
}

// Stager は画像を一時領域へ書き出します。
type Stager interface {
	Stage(img entity.UploadedImage) (StagedFile, error)
}

// StorageConfig はアップロード先の固定設定です。
type StorageConfig struct {
	Bucket string
	Prefix string
}

// ppeDetectionUsecase は保存・検出・レポート生成のビジネスロジックを提供します。
type ppeDetectionUsecase struct {
	storage  ObjectStorage
	detector PPEDetector
	stager   Stager
	cfg      StorageConfig
	newID    func() string
}

// NewPPEDetectionUsecase はppeDetectionUsecaseの新しいインスタンスを生成します。
// クライアントは起動時に一度だけ生成し、ここで注入します。
func NewPPEDetectionUsecase(storage ObjectStorage, detector PPEDetector, stager Stager, cfg StorageConfig) *ppeDetectionUsecase {
	return &ppeDetectionUsecase{
		storage:  storage,
		detector: detector,
		stager:   stager,
		cfg:      cfg,
		newID:    uuid.NewString,
	}
}

// Inspect は画像を保存してからPPE検出を行い、レポートまでを1回の操作として実行します。
// どのステップの失敗もエラーとしては返さず、Inspection.Failureに種類とメッセージを格納します。
// 保存に失敗した場合は検出を行いません。一時ファイルはすべての経路で削除されます。
func (u *ppeDetectionUsecase) Inspect(ctx context.Context, img entity.UploadedImage) *entity.Inspection {
	ins := &entity.Inspection{
		ID:     u.newID(),
		Target: entity.NewStorageTarget(u.cfg.Bucket, u.cfg.Prefix, img.Filename),
	}

	if err := validateImage(img); err != nil {
		ins.Failure = &entity.Failure{Kind: entity.FailureInvalidImage, Message: err.Error()}
		return ins
	}

	staged, err := u.stager.Stage(img)
	if err != nil {
		ins.Failure = storageFailure(err)
		return ins
	}
	defer func() {
		if err := staged.Remove(); err != nil {
			slog.Warn("一時ファイルの削除に失敗", "error", err, "inspection_id", ins.ID)
		}
	}()

	if err := u.upload(ctx, ins.Target, staged, img.MIMEType()); err != nil {
		ins.Failure = storageFailure(err)
		return ins
	}
	ins.Uploaded = true
	ins.UploadMessage = fmt.Sprintf("Uploaded to S3 bucket `%s` successfully!", u.cfg.Bucket)

	data, err := readStaged(staged)
	if err != nil {
		ins.Failure = detectionFailure(err)
		return ins
	}

	resp, err := u.detector.DetectProtectiveEquipment(ctx, entity.NewDetectionRequest(data))
	if err != nil {
		ins.Failure = detectionFailure(err)
		return ins
	}
	if resp == nil {
		resp = &entity.DetectionResponse{}
	}

	report := BuildReport(resp)
	ins.Response = resp
	ins.Report = &report
	return ins
}

func (u *ppeDetectionUsecase) upload(ctx context.Context, target entity.StorageTarget, staged StagedFile, contentType string) error {
	f, err := staged.Open()
	if err != nil {
		return fmt.Errorf("failed to open staged file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("一時ファイルのクローズに失敗", "error", err)
		}
	}()
	return u.storage.Upload(ctx, target, f, staged.Size(), contentType)
}

func readStaged(staged StagedFile) ([]byte, error) {
	f, err := staged.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("一時ファイルのクローズに失敗", "error", err)
		}
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged file: %w", err)
	}
	return data, nil
}

func validateImage(img entity.UploadedImage) error {
	if img.Filename == "" {
		return domain.ErrNoFilename
	}
	if len(img.Data) == 0 {
		return domain.ErrEmptyImage
	}
	return nil
}

func storageFailure(err error) *entity.Failure {
	return &entity.Failure{Kind: entity.FailureStorage, Message: fmt.Sprintf("Failed to upload to S3: %v", err)}
}

func detectionFailure(err error) *entity.Failure {
	return &entity.Failure{Kind: entity.FailureDetection, Message: fmt.Sprintf("Rekognition detection failed: %v", err)}
}
