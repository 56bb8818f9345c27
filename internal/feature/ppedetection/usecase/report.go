package usecase

import (
	"fmt"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
)

// NoPersonMessage は人物が1人も検出されなかった場合の警告文です。
const NoPersonMessage = "No person detected in the image."

// BuildReport は検出結果を人物・部位ごとのチェックリストに変換します。
// 入力の順序を保ち、集約や信頼度による再フィルタは行いません。
// 同じ入力に対しては常に同じ出力を返します。
func BuildReport(resp *entity.DetectionResponse) entity.Report {
	if resp == nil || len(resp.Persons) == 0 {
		return entity.Report{Lines: []entity.ReportLine{
			{Kind: entity.ReportLineWarning, Text: NoPersonMessage},
		}}
	}

	lines := make([]entity.ReportLine, 0, len(resp.Persons)*4)
	for i, person := range resp.Persons {
		lines = append(lines, entity.ReportLine{
			Kind: entity.ReportLinePerson,
			Text: fmt.Sprintf("👤 Person %d", i+1),
		})
		// 部位が空の人物は見出しのみ
		for _, part := range person.BodyParts {
			if len(part.EquipmentDetections) == 0 {
				lines = append(lines, entity.ReportLine{
					Kind: entity.ReportLineItem,
					Text: fmt.Sprintf("%s: ❌ No PPE detected", part.Name),
				})
				continue
			}
			for _, eq := range part.EquipmentDetections {
				lines = append(lines, entity.ReportLine{
					Kind: entity.ReportLineItem,
					Text: fmt.Sprintf("%s on %s: %s (%.1f%%)", eq.Type, part.Name, coversLabel(eq.CoversBodyPart.Value), eq.Confidence),
				})
			}
		}
	}
	return entity.Report{Lines: lines}
}

func coversLabel(covers bool) string {
	if covers {
		return "✅ Yes"
	}
	return "❌ No"
}
