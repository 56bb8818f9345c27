// Package web はアップロード画面のHTMLテンプレートを埋め込みます。
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// IndexTemplate はアップロード画面のテンプレート名です。
const IndexTemplate = "index.html"

// Templates は埋め込みテンプレートをパースして返します。
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
