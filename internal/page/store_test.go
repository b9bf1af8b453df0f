package page

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStoreEmptyDescriptors はページ定義が空の場合の合成をテストする
func TestStoreEmptyDescriptors(t *testing.T) {
	webRoot := filepath.Join(t.TempDir(), "web")

	store, err := New(webRoot, nil, false)
	if err != nil {
		t.Fatalf("Store の構築に失敗しました: %v", err)
	}

	// ちょうど1件の index.html が合成される
	if store.Len() != 1 {
		t.Fatalf("ページ数が一致しません: got %d, want 1", store.Len())
	}
	p := store.First()
	if p.Name != "index.html" {
		t.Errorf("ページ名が一致しません: got %s, want index.html", p.Name)
	}
	if p.Contents != "" {
		t.Errorf("内容が空ではありません: %q", p.Contents)
	}

	// 空ファイルがディスク上に作成されている
	info, err := os.Stat(filepath.Join(webRoot, "index.html"))
	if err != nil {
		t.Fatalf("index.html が作成されていません: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("index.html が空ではありません: %d bytes", info.Size())
	}
}

// TestStoreExistingFile は既存ファイルの内容がそのままキャッシュされることをテストする
func TestStoreExistingFile(t *testing.T) {
	webRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(webRoot, "index.html"), []byte("Hello"), 0o644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}

	store, err := New(webRoot, []Descriptor{{Name: "/", Path: "index.html"}}, false)
	if err != nil {
		t.Fatalf("Store の構築に失敗しました: %v", err)
	}

	p := store.First()
	if p.Contents != "Hello" {
		t.Errorf("内容が一致しません: got %q, want %q", p.Contents, "Hello")
	}
}

// TestStoreMissingFileCreated は存在しないファイルが中間ディレクトリごと作成されることをテストする
func TestStoreMissingFileCreated(t *testing.T) {
	webRoot := t.TempDir()

	store, err := New(webRoot, []Descriptor{{Name: "/about", Path: "sub/dir/about.html"}}, false)
	if err != nil {
		t.Fatalf("Store の構築に失敗しました: %v", err)
	}

	p := store.First()
	if p.Name != "/about" {
		t.Errorf("ページ名が一致しません: got %s, want /about", p.Name)
	}
	if p.Contents != "" {
		t.Errorf("内容が空ではありません: %q", p.Contents)
	}

	if _, err := os.Stat(filepath.Join(webRoot, "sub", "dir", "about.html")); err != nil {
		t.Errorf("ファイルが作成されていません: %v", err)
	}
}

// TestStoreCreatesWebRoot は web_root が存在しない場合に作成されることをテストする
func TestStoreCreatesWebRoot(t *testing.T) {
	webRoot := filepath.Join(t.TempDir(), "missing", "web")

	if _, err := New(webRoot, nil, false); err != nil {
		t.Fatalf("Store の構築に失敗しました: %v", err)
	}

	info, err := os.Stat(webRoot)
	if err != nil {
		t.Fatalf("web_root が作成されていません: %v", err)
	}
	if !info.IsDir() {
		t.Error("web_root がディレクトリではありません")
	}
}

// TestStoreNeverEmpty はどの構成でもページ列が1件以上になることをテストする
func TestStoreNeverEmpty(t *testing.T) {
	testCases := []struct {
		name        string
		descriptors []Descriptor
	}{
		{"定義なし", nil},
		{"定義1件", []Descriptor{{Name: "/", Path: "index.html"}}},
		{"定義複数", []Descriptor{
			{Name: "/", Path: "index.html"},
			{Name: "/about", Path: "about.html"},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := New(t.TempDir(), tc.descriptors, false)
			if err != nil {
				t.Fatalf("Store の構築に失敗しました: %v", err)
			}
			if store.Len() < 1 {
				t.Errorf("ページ列が空です")
			}
		})
	}
}
