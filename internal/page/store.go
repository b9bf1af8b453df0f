// Package page は配信するページのメモリ内キャッシュを管理します
package page

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Descriptor は設定ファイルに書かれるページの定義
type Descriptor struct {
	Name string `json:"name" validate:"required"` // ルートキー（リクエストパスと照合される）
	Path string `json:"path" validate:"required"` // web_root からの相対パス
}

// Page はルートキーとキャッシュ済みの内容の組
// 起動時に一度だけ構築され、以後変更されない
type Page struct {
	Name     string // ルートキー
	Path     string // web_root からの相対パス
	Contents string // ファイルの内容（読み込み時のまま、変換なし）
}

// Store は起動時に構築される不変のページ集合を保持する構造体
// ページ列は必ず1件以上になる（定義が空なら index.html を合成する）
type Store struct {
	pages []Page
}

// New は web_root 以下のページを読み込んで Store を構築する
// web_root が存在しなければ作成し、定義されたファイルが存在しなければ
// 中間ディレクトリごと空ファイルとして作成する
// ここでの失敗はすべて起動を中断すべきエラーとして返す
func New(webRoot string, descriptors []Descriptor, verbose bool) (*Store, error) {
	if err := ensureDir(webRoot, verbose); err != nil {
		return nil, fmt.Errorf("web_root の作成に失敗: %w", err)
	}

	// 定義が空の場合は index.html を1件合成する
	if len(descriptors) == 0 {
		if verbose {
			log.Println("ページが定義されていないため index.html を作成します")
		}

		p, err := createFile(webRoot, Descriptor{Name: "index.html", Path: "index.html"}, verbose)
		if err != nil {
			return nil, err
		}
		return &Store{pages: []Page{p}}, nil
	}

	pages := make([]Page, 0, len(descriptors))
	for _, d := range descriptors {
		full := filepath.Join(webRoot, d.Path)

		// ファイルが存在しなければ空ファイルを作成する
		if _, err := os.Stat(full); err != nil {
			p, err := createFile(webRoot, d, verbose)
			if err != nil {
				return nil, err
			}
			pages = append(pages, p)
			continue
		}

		// 内容を一度だけ読み込んでキャッシュする
		// 起動後にファイルを編集しても再起動までは反映されない
		contents, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("ページの読み込みに失敗 (%s): %w", full, err)
		}
		pages = append(pages, Page{Name: d.Name, Path: d.Path, Contents: string(contents)})
	}

	return &Store{pages: pages}, nil
}

// Pages はページ列を定義順で返す
func (s *Store) Pages() []Page {
	return s.pages
}

// First はページ列の先頭を返す
// Store は空にならないため、呼び出しは常に安全
func (s *Store) First() Page {
	return s.pages[0]
}

// Len はページ数を返す
func (s *Store) Len() int {
	return len(s.pages)
}

// ensureDir はディレクトリが存在しなければ作成する
func ensureDir(dir string, verbose bool) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if verbose {
		log.Printf("ディレクトリを作成しました: %s", dir)
	}
	return nil
}

// createFile は中間ディレクトリごと空ファイルを作成し、空のページを返す
func createFile(webRoot string, d Descriptor, verbose bool) (Page, error) {
	full := filepath.Join(webRoot, d.Path)

	if err := ensureDir(filepath.Dir(full), verbose); err != nil {
		return Page{}, fmt.Errorf("ディレクトリの作成に失敗 (%s): %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, nil, 0o644); err != nil {
		return Page{}, fmt.Errorf("ファイルの作成に失敗 (%s): %w", full, err)
	}
	if verbose {
		log.Printf("ファイルを作成しました: %s", full)
	}

	return Page{Name: d.Name, Path: d.Path, Contents: ""}, nil
}
