package server

import (
	"errors"

	"yadoya/internal/protocol"
)

// ErrorPolicy はエラー種別ごとの扱いを一箇所で決める構造体
// 解析エラーは接続ごとの 4xx 応答に変換し、それ以外（読み書きの失敗など）は
// 接続を閉じるだけにとどめる。起動時のエラー（設定・ファイル・バインド）は
// ここを通らず、呼び出し元でそのまま致命扱いになる
type ErrorPolicy struct{}

// StatusFor はエラーを応答ステータスに対応付ける
// 2番目の戻り値が false の場合は応答せずに接続を閉じる
func (ErrorPolicy) StatusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, protocol.ErrUnsupportedMethod):
		return 405, true
	case errors.Is(err, protocol.ErrHeaderTooLarge):
		return 431, true
	case errors.Is(err, protocol.ErrEmptyRequest), errors.Is(err, protocol.ErrBadRequestLine):
		return 400, true
	default:
		// 読み込み自体の失敗はこの接続だけを閉じる
		return 0, false
	}
}
