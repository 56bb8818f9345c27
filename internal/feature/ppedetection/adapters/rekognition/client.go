// Package rekognition はAWS Rekognitionを使用したPPE検出クライアントを提供します。
package rekognition

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// DetectProtectiveEquipmentAPI はRekognitionクライアントのうち本パッケージが使う操作です。
type DetectProtectiveEquipmentAPI interface {
	DetectProtectiveEquipment(ctx context.Context, params *awsrekognition.DetectProtectiveEquipmentInput, optFns ...func(*awsrekognition.Options)) (*awsrekognition.DetectProtectiveEquipmentOutput, error)
}

// RekognitionPPEDetector はAWS Rekognitionを使用して保護具を検出します。
type RekognitionPPEDetector struct {
	client DetectProtectiveEquipmentAPI
}

// RekognitionPPEDetectorがPPEDetectorを実装していることをコンパイル時に検証します。
var _ usecase.PPEDetector = (*RekognitionPPEDetector)(nil)

// NewRekognitionPPEDetector は起動時に読み込んだaws.ConfigからRekognitionPPEDetectorを生成します。
func NewRekognitionPPEDetector(cfg aws.Config) *RekognitionPPEDetector {
	return &RekognitionPPEDetector{client: awsrekognition.NewFromConfig(cfg)}
}

// NewRekognitionPPEDetectorWithClient は任意のクライアント実装でRekognitionPPEDetectorを生成します。
func NewRekognitionPPEDetectorWithClient(client DetectProtectiveEquipmentAPI) *RekognitionPPEDetector {
	return &RekognitionPPEDetector{client: client}
}

// DetectProtectiveEquipment は画像バイト列から保護具を検出します。
func (r *RekognitionPPEDetector) DetectProtectiveEquipment(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
	required := make([]types.ProtectiveEquipmentType, 0, len(req.RequiredEquipmentTypes))
	for _, t := range req.RequiredEquipmentTypes {
		required = append(required, types.ProtectiveEquipmentType(t))
	}

	out, err := r.client.DetectProtectiveEquipment(ctx, &awsrekognition.DetectProtectiveEquipmentInput{
		Image: &types.Image{Bytes: req.Image},
		SummarizationAttributes: &types.ProtectiveEquipmentSummarizationAttributes{
			MinConfidence:          aws.Float32(req.MinConfidence),
			RequiredEquipmentTypes: required,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition API request failed: %w", err)
	}

	return toEntity(out), nil
}

func toEntity(out *awsrekognition.DetectProtectiveEquipmentOutput) *entity.DetectionResponse {
	resp := &entity.DetectionResponse{
		ModelVersion: aws.ToString(out.ProtectiveEquipmentModelVersion),
		Persons:      make([]entity.Person, 0, len(out.Persons)),
	}
	for _, p := range out.Persons {
		person := entity.Person{
			ID:          p.Id,
			Confidence:  p.Confidence,
			BoundingBox: toBoundingBox(p.BoundingBox),
			BodyParts:   make([]entity.BodyPart, 0, len(p.BodyParts)),
		}
		for _, bp := range p.BodyParts {
			part := entity.BodyPart{
				Name:                string(bp.Name),
				Confidence:          bp.Confidence,
				EquipmentDetections: make([]entity.EquipmentDetection, 0, len(bp.EquipmentDetections)),
			}
			for _, eq := range bp.EquipmentDetections {
				det := entity.EquipmentDetection{
					Type:        string(eq.Type),
					Confidence:  aws.ToFloat32(eq.Confidence),
					BoundingBox: toBoundingBox(eq.BoundingBox),
				}
				if eq.CoversBodyPart != nil {
					det.CoversBodyPart = entity.CoversBodyPart{
						Value:      eq.CoversBodyPart.Value,
						Confidence: eq.CoversBodyPart.Confidence,
					}
				}
				part.EquipmentDetections = append(part.EquipmentDetections, det)
			}
			person.BodyParts = append(person.BodyParts, part)
		}
		resp.Persons = append(resp.Persons, person)
	}
	if s := out.Summary; s != nil {
		resp.Summary = &entity.Summary{
			PersonsWithRequiredEquipment:    s.PersonsWithRequiredEquipment,
			PersonsWithoutRequiredEquipment: s.PersonsWithoutRequiredEquipment,
			PersonsIndeterminate:            s.PersonsIndeterminate,
		}
	}
	return resp
}

func toBoundingBox(b *types.BoundingBox) *entity.BoundingBox {
	if b == nil {
		return nil
	}
	return &entity.BoundingBox{
		Left:   aws.ToFloat32(b.Left),
		Top:    aws.ToFloat32(b.Top),
		Width:  aws.ToFloat32(b.Width),
		Height: aws.ToFloat32(b.Height),
	}
}
