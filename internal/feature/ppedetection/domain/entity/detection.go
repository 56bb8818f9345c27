package entity

const (
	// DefaultMinConfidence は検出APIに渡す最小信頼度（0〜100）です。
	DefaultMinConfidence float32 = 80.0

	EquipmentHeadCover = "HEAD_COVER"
	EquipmentFaceCover = "FACE_COVER"
	EquipmentHandCover = "HAND_COVER"
)

// RequiredEquipmentTypes は要約対象とする保護具の種類です。
func RequiredEquipmentTypes() []string {
	return []string{EquipmentHeadCover, EquipmentFaceCover, EquipmentHandCover}
}

// DetectionRequest はPPE検出APIへのリクエストです。呼び出しごとに生成します。
type DetectionRequest struct {
	Image                  []byte
	MinConfidence          float32
	RequiredEquipmentTypes []string
}

// NewDetectionRequest は固定設定（最小信頼度80.0、頭・顔・手の保護具）でリクエストを生成します。
func NewDetectionRequest(image []byte) DetectionRequest {
	return DetectionRequest{
		Image:                  image,
		MinConfidence:          DefaultMinConfidence,
		RequiredEquipmentTypes: RequiredEquipmentTypes(),
	}
}

// DetectionResponse は外部サービスが返す検出結果です。
// JSONタグは外部サービスのフィールド名に合わせており、生レスポンスの表示にそのまま使います。
type DetectionResponse struct {
	ModelVersion string   `json:"ProtectiveEquipmentModelVersion,omitempty"`
	Persons      []Person `json:"Persons"`
	Summary      *Summary `json:"Summary,omitempty"`
}

// Person は画像内で検出された1人の人物です。
type Person struct {
	ID          *int32       `json:"Id,omitempty"`
	Confidence  *float32     `json:"Confidence,omitempty"`
	BoundingBox *BoundingBox `json:"BoundingBox,omitempty"`
	BodyParts   []BodyPart   `json:"BodyParts"`
}

// BodyPart は人物の身体部位（FACE, HEAD, LEFT_HAND, RIGHT_HAND）です。
type BodyPart struct {
	Name                string               `json:"Name"`
	Confidence          *float32             `json:"Confidence,omitempty"`
	EquipmentDetections []EquipmentDetection `json:"EquipmentDetections"`
}

// EquipmentDetection は身体部位上で検出された保護具です。
type EquipmentDetection struct {
	Type           string         `json:"Type"`
	Confidence     float32        `json:"Confidence"` // 0〜100
	CoversBodyPart CoversBodyPart `json:"CoversBodyPart"`
	BoundingBox    *BoundingBox   `json:"BoundingBox,omitempty"`
}

// CoversBodyPart は保護具が部位を覆っているかどうかです。
type CoversBodyPart struct {
	Value      bool     `json:"Value"`
	Confidence *float32 `json:"Confidence,omitempty"`
}

// BoundingBox は画像サイズに対する比率で表した矩形です。
type BoundingBox struct {
	Left   float32 `json:"Left"`
	Top    float32 `json:"Top"`
	Width  float32 `json:"Width"`
	Height float32 `json:"Height"`
}

// Summary は必須保護具の着用状況ごとの人物IDです。
type Summary struct {
	PersonsWithRequiredEquipment    []int32 `json:"PersonsWithRequiredEquipment"`
	PersonsWithoutRequiredEquipment []int32 `json:"PersonsWithoutRequiredEquipment"`
	PersonsIndeterminate            []int32 `json:"PersonsIndeterminate"`
}
