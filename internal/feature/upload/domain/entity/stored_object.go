// Package entity はuploadフィーチャーのドメインモデルを定義します。
package entity

// StoredObject はBlobストアに保存されたオブジェクトの記述子です。
// 生成後は変更しません。
type StoredObject struct {
	URL                string // 公開URL
	DownloadURL        string // ダウンロード用URL
	Pathname           string // ストア内のオブジェクト名
	ContentType        string
	ContentDisposition string
	Size               int64
	Width              int // 画像として解釈できた場合のみ設定
	Height             int
}
