package entity

// FailureKind は1回の操作を終了させた失敗の種類です。
type FailureKind string

const (
	FailureInvalidImage FailureKind = "invalid_image"
	FailureStorage      FailureKind = "storage"
	FailureDetection    FailureKind = "detection"
)

// Failure は失敗の種類と、利用者にそのまま表示するメッセージです。
type Failure struct {
	Kind    FailureKind
	Message string
}

// Inspection はアップロード→保存→検出→レポートの1回分の結果です。
// 失敗してもそこまでに得られたフィールド（アップロード結果など）は保持されます。
type Inspection struct {
	ID            string
	Target        StorageTarget
	Uploaded      bool
	UploadMessage string
	Response      *DetectionResponse
	Report        *Report
	Failure       *Failure
}

// Succeeded は全ステップが成功したかどうかを返します。
func (i *Inspection) Succeeded() bool {
	return i.Failure == nil
}
