package protocol

import (
	"fmt"
	"strings"
)

// ステータスコードに対応する文言
var statusText = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
}

// StatusText はステータスコードの文言を返す
// 未知のコードは空文字列を返す
func StatusText(code int) string {
	return statusText[code]
}

// Response は応答を保持する構造体
// シリアライズするまでは各フィールドを変更できる
type Response struct {
	Version       string
	StatusCode    int
	StatusMessage string
	Headers       []string
	Body          string
}

// NewResponse は応答を作成する
func NewResponse(version string, code int, message string) *Response {
	return &Response{
		Version:       version,
		StatusCode:    code,
		StatusMessage: message,
	}
}

// NewStatus はバージョン "1.1" と定義済みの文言で応答を作成する
func NewStatus(code int) *Response {
	return NewResponse("1.1", code, StatusText(code))
}

// SetStatus はステータスコードと文言を設定する
func (r *Response) SetStatus(code int, message string) {
	r.StatusCode = code
	r.StatusMessage = message
}

// SetBody はボディを設定する
func (r *Response) SetBody(body string) {
	r.Body = body
}

// AddHeader はヘッダ行を追加する（"Key: Value" 形式の行をそのまま保持する）
func (r *Response) AddHeader(header string) {
	r.Headers = append(r.Headers, header)
}

// Bytes は応答をワイヤーフォーマットにシリアライズする
// 形式: ステータス行 CRLF、各ヘッダ行 CRLF、空行 CRLF、ボディ
// ボディの後に終端文字は付けない
func (r *Response) Bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/%s %d %s\r\n", r.Version, r.StatusCode, r.StatusMessage)
	for _, h := range r.Headers {
		b.WriteString(h)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(r.Body)
	return []byte(b.String())
}
