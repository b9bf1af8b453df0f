// Package server は、TCP接続の受け付けとワーカープールによる処理を管理します。
//
// このパッケージは、リッスンソケットの所有、接続の受け付け、
// ワーカープールへのディスパッチ、接続ごとの一連の処理
// （読み込み → 解析 → 経路解決 → 応答の書き込み）を担当します。
//
// 責務:
//   - リッスンソケットの作成と管理
//   - 接続の受け付けと有限キューへの投入
//   - 固定数ワーカーによる接続処理
//   - エラー種別ごとの扱いの決定（ErrorPolicy）
//   - グレースフルシャットダウンへの対応
//
// 仕様:
//   - キューは有限（queue_size）で、満杯の間は受け付けループが待つ
//   - 接続は処理後に必ず閉じる（keep-alive はサポートしない）
//   - 解析エラーは 4xx 応答に変換し、サーバー自体は停止しない
//   - 読み書きには設定されたデッドラインを適用する
package server
