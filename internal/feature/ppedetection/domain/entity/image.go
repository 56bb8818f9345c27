// Package entity はppedetectionフィーチャーのドメインモデルを定義します。
package entity

import (
	"path/filepath"
	"strings"
)

// UploadedImage はユーザーがアップロードした1枚の画像を表します。
// 1回の操作でのみ使用され、転送後は保持しません。
type UploadedImage struct {
	Filename    string // 元のファイル名
	ContentType string // multipartヘッダーのContent-Type（空の場合あり）
	Data        []byte // 画像の生バイト列
}

// Extension は小文字・ドットなしの拡張子を返します（例: "jpg"）。
func (i UploadedImage) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(i.Filename)), ".")
}

// MIMEType は拡張子から決まるContent-Typeを返します。
// 拡張子が未知の場合はmultipartヘッダーの値、それもなければapplication/octet-streamです。
func (i UploadedImage) MIMEType() string {
	switch i.Extension() {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	}
	if i.ContentType != "" {
		return i.ContentType
	}
	return "application/octet-stream"
}

// StorageTarget はアップロード先のバケットとキーの組です。
// 同じキーへの書き込みは既存オブジェクトを上書きします。
type StorageTarget struct {
	Bucket string
	Key    string
}

// NewStorageTarget は prefix + filename をキーとするStorageTargetを生成します。
func NewStorageTarget(bucket, prefix, filename string) StorageTarget {
	return StorageTarget{Bucket: bucket, Key: prefix + filename}
}
