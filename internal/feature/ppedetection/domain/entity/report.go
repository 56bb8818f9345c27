package entity

import "strings"

// ReportLineKind は簡易レポートの行の種類です。
type ReportLineKind string

const (
	ReportLineWarning ReportLineKind = "warning" // 人物が検出されなかった場合の警告
	ReportLinePerson  ReportLineKind = "person"  // 人物ごとの見出し
	ReportLineItem    ReportLineKind = "item"    // 部位・保護具ごとの行
)

// ReportLine は簡易レポートの1行です。
type ReportLine struct {
	Kind ReportLineKind `json:"kind"`
	Text string         `json:"text"`
}

// Report は検出結果から導出した人物・部位ごとのチェックリストです。
type Report struct {
	Lines []ReportLine `json:"lines"`
}

// Text はレポートをプレーンテキストに整形します。項目行には "- " を付けます。
func (r Report) Text() string {
	var b strings.Builder
	for _, l := range r.Lines {
		if l.Kind == ReportLineItem {
			b.WriteString("- ")
		}
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
