// Package router はリクエストパスと配信ページの対応付けを担当します
package router

import (
	"yadoya/internal/page"
)

// Policy はルート不一致時の振る舞いを表す
type Policy string

// 不一致ポリシー
const (
	PolicyFallback Policy = "fallback"  // 先頭ページを200で返す（既定）
	PolicyNotFound Policy = "not_found" // 404 として扱う
)

// Router はパスからページを引く経路表を保持する構造体
// 経路表は起動時に一度だけ構築され、以後変更されない
type Router struct {
	table    map[string]page.Page
	fallback page.Page
	policy   Policy
}

// New は経路表を構築する
// pages は1件以上であること（Store がこの不変条件を保証する）
// ページ名が重複している場合は先に定義されたページが優先される
func New(pages []page.Page, policy Policy) *Router {
	table := make(map[string]page.Page, len(pages))
	for _, p := range pages {
		if _, ok := table[p.Name]; !ok {
			table[p.Name] = p
		}
	}

	return &Router{
		table:    table,
		fallback: pages[0],
		policy:   policy,
	}
}

// Resolve はパスに対応するページを返す
// 照合は完全一致（大文字小文字を区別し、正規化しない）
// 一致しない場合はポリシーに従う: fallback なら先頭ページを返し、
// not_found なら2番目の戻り値が false になる
func (r *Router) Resolve(path string) (page.Page, bool) {
	if p, ok := r.table[path]; ok {
		return p, true
	}

	if r.policy == PolicyNotFound {
		return page.Page{}, false
	}
	return r.fallback, true
}
