// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReportLineResponse は簡易レポートの1行です。
type ReportLineResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ReportResponse は人物・部位ごとのチェックリストです。
type ReportResponse struct {
	Lines []ReportLineResponse `json:"lines"`
	Text  string               `json:"text"`
}

// FailureResponse は操作を終了させた失敗です。messageは外部サービスのエラー文をそのまま含みます。
type FailureResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// PPEDetectionResponse は POST /v1/ppe/detect のレスポンスです。
// 失敗時も、それまでに完了したステップの結果（uploadedなど）を含みます。
type PPEDetectionResponse struct {
	ID            string           `json:"id"`
	Bucket        string           `json:"bucket"`
	Key           string           `json:"key"`
	Uploaded      bool             `json:"uploaded"`
	UploadMessage string           `json:"upload_message,omitempty"`
	Raw           any              `json:"raw,omitempty"`
	Report        *ReportResponse  `json:"report,omitempty"`
	Error         *FailureResponse `json:"error,omitempty"`
}
