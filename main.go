package main

import (
	"context"
	"fmt"
	"log"

	"yadoya/internal/config"
	"yadoya/internal/page"
	"yadoya/internal/router"
	"yadoya/internal/server"
)

func main() {
	// 設定を読み込む（存在しなければ既定の設定を生成する）
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ページキャッシュを構築
	store, err := page.New(cfg.WebRoot, cfg.Pages, cfg.Verbose)
	if err != nil {
		log.Fatalf("ページの読み込みに失敗しました: %v", err)
	}

	if cfg.Verbose {
		printBanner(cfg, store)
	}

	// サーバーを作成
	rt := router.New(store.Pages(), router.Policy(cfg.OnNoMatch))
	srv := server.New(cfg, rt)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}

// printBanner は起動時に設定の概要を表示する
func printBanner(cfg *config.Config, store *page.Store) {
	fmt.Println("================ CONFIG ================")
	fmt.Printf("Verbose Output:\t%t\n", cfg.Verbose)
	fmt.Printf("Thread Count:\t%d\n", cfg.ThreadCount)
	fmt.Printf("Port:\t\t%d\n", cfg.Port)
	fmt.Printf("Web Root:\t%s\n", cfg.WebRoot)
	fmt.Printf("Page Count:\t%d\n", store.Len())
	fmt.Println("========================================")
	fmt.Println()
}
