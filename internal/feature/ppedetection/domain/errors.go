// Package domain はppedetectionフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrEmptyImage は画像データが空の場合に返されます。
	ErrEmptyImage = errors.New("image data is empty")
	// ErrNoFilename はファイル名がない場合に返されます（キーを組み立てられない）。
	ErrNoFilename = errors.New("image filename is empty")
)
