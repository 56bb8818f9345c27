// Package handler はppedetectionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ppe_backend/internal/api"
	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/transport/web"
)

// AllowedExtensions はアップロードを受け付ける拡張子です。
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// PPEDetectionUsecase はPPE検出のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PPEDetectionUsecase interface {
	Inspect(ctx context.Context, img entity.UploadedImage) *entity.Inspection
}

// PPEDetectionHandler はアップロード画面とPPE検出のHTTPリクエストを処理します。
type PPEDetectionHandler struct {
	uc     PPEDetectionUsecase
	bucket string
}

// NewPPEDetectionHandler はPPEDetectionHandlerの新しいインスタンスを生成します。
func NewPPEDetectionHandler(uc PPEDetectionUsecase, bucket string) *PPEDetectionHandler {
	return &PPEDetectionHandler{uc: uc, bucket: bucket}
}

// Index はアップロード画面を表示します。
//
// エンドポイント: GET /
func (h *PPEDetectionHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, gin.H{"Bucket": h.bucket})
}

// Detect は画像をアップロードしてS3へ保存し、PPEを検出します。
//
// エンドポイント: POST /v1/ppe/detect
// Content-Type: multipart/form-data
// フィールド: image（jpg / jpeg / png）
func (h *PPEDetectionHandler) Detect(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	img := entity.UploadedImage{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
	}
	if _, ok := AllowedExtensions[img.Extension()]; !ok {
		slog.Warn("許可されていない拡張子", "filename", file.Filename, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "only .jpg, .jpeg and .png files are allowed"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	img.Data, err = io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	ins := h.uc.Inspect(c.Request.Context(), img)
	if ins.Failure != nil {
		slog.Error("PPE検出フローが失敗",
			"inspection_id", ins.ID, "kind", ins.Failure.Kind, "message", ins.Failure.Message,
			"bucket", ins.Target.Bucket, "key", ins.Target.Key, "uploaded", ins.Uploaded)
	} else {
		slog.Info("PPE検出が完了",
			"inspection_id", ins.ID, "bucket", ins.Target.Bucket, "key", ins.Target.Key,
			"persons", len(ins.Response.Persons))
	}

	c.JSON(statusFor(ins), toResponse(ins))
}

func statusFor(ins *entity.Inspection) int {
	if ins.Failure == nil {
		return http.StatusOK
	}
	if ins.Failure.Kind == entity.FailureInvalidImage {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func toResponse(ins *entity.Inspection) api.PPEDetectionResponse {
	out := api.PPEDetectionResponse{
		ID:            ins.ID,
		Bucket:        ins.Target.Bucket,
		Key:           ins.Target.Key,
		Uploaded:      ins.Uploaded,
		UploadMessage: ins.UploadMessage,
	}
	if ins.Response != nil {
		out.Raw = ins.Response
	}
	if ins.Report != nil {
		lines := make([]api.ReportLineResponse, 0, len(ins.Report.Lines))
		for _, l := range ins.Report.Lines {
			lines = append(lines, api.ReportLineResponse{Kind: string(l.Kind), Text: l.Text})
		}
		out.Report = &api.ReportResponse{Lines: lines, Text: ins.Report.Text()}
	}
	if ins.Failure != nil {
		out.Error = &api.FailureResponse{Kind: string(ins.Failure.Kind), Message: ins.Failure.Message}
	}
	return out
}
