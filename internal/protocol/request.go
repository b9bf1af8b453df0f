package protocol

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Method はHTTPメソッドを表す
type Method string

// 受け付けるメソッド
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// ParseMethod はメソッドトークンを検証する
// 受け付けるのは GET / POST / PUT / DELETE のみ（大文字小文字を区別する）
func ParseMethod(token string) (Method, error) {
	switch Method(token) {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return Method(token), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, token)
	}
}

// Request は解析済みのリクエストを保持する構造体
// Headers は受信した行をそのままの順で保持し、先頭要素はリクエストライン
// Body は常に空（ボディは読まない）
type Request struct {
	Method  Method
	Path    string
	Version string
	Headers []string
	Body    string
}

const readChunkSize = 512

var headerEnd = []byte("\r\n\r\n")

// ReadRequest は接続からヘッダ部を読み込んで解析する
// 空行の終端が現れるまでバッファを伸ばしながら読み、max バイトを超えたら
// ErrHeaderTooLarge を返す。終端の前にストリームが尽きた場合は、そこまでに
// 届いた行だけを解析する
func ReadRequest(r io.Reader, max int) (*Request, error) {
	raw, err := readHead(r, max)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// readHead は空行の終端か上限バイト数までを読み込む
func readHead(r io.Reader, max int) ([]byte, error) {
	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)

		if idx := bytes.Index(buf, headerEnd); idx >= 0 {
			// 終端までのヘッダ部が上限に収まっていること
			if idx+len(headerEnd) > max {
				return nil, ErrHeaderTooLarge
			}
			return buf[:idx+len(headerEnd)], nil
		}
		if len(buf) > max {
			return nil, ErrHeaderTooLarge
		}
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return nil, fmt.Errorf("リクエストの読み込みに失敗: %w", err)
		}
	}
}

// Parse は生のバイト列をリクエストに解析する
// CRLF で分割し、最初の空行までをヘッダ行として集める。リクエストラインは
// 単一スペースで分割され、メソッド・パス・バージョンの3要素が必要
func Parse(raw []byte) (*Request, error) {
	var headers []string
	for _, line := range strings.Split(string(raw), "\r\n") {
		if line == "" {
			break
		}
		headers = append(headers, line)
	}

	if len(headers) == 0 {
		return nil, ErrEmptyRequest
	}

	words := strings.Split(headers[0], " ")
	if len(words) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadRequestLine, headers[0])
	}

	method, err := ParseMethod(words[0])
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:  method,
		Path:    words[1],
		Version: words[2],
		Headers: headers,
		Body:    "",
	}, nil
}
