package protocol

import "errors"

// 解析時のエラー種別
// 接続ごとの扱い（応答に変換するか、閉じるだけか）は server 側のポリシーが決める
var (
	ErrEmptyRequest      = errors.New("リクエストが空です")
	ErrBadRequestLine    = errors.New("リクエストラインが不正です")
	ErrUnsupportedMethod = errors.New("サポートされていないメソッドです")
	ErrHeaderTooLarge    = errors.New("リクエストヘッダが大きすぎます")
)
