// Package protocol は、HTTP/1.x のワイヤーフォーマットを扱います。
//
// このパッケージは、接続から読み取った生のバイト列の解析と、
// 応答のシリアライズを担当します。
//
// 責務:
//   - リクエストヘッダ部の読み込み（空行まで、上限バイト数つき）
//   - リクエストラインとヘッダ行の解析
//   - 応答のワイヤーフォーマットへのシリアライズ
//
// 仕様:
//   - 行区切りは CRLF、ヘッダ部の終端は空行
//   - メソッドは GET / POST / PUT / DELETE のみ受け付ける
//   - リクエストボディは読まない（常に空として扱う）
//   - 応答は "HTTP/<version> <code> <message>" 形式で、ヘッダなしの場合は
//     ステータス行・空行・ボディのみになる
package protocol
