// Package main はyadoyaサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"yadoya/internal/config"
	"yadoya/internal/page"
	"yadoya/internal/router"
	"yadoya/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		configPath = flag.String("config", config.DefaultPath, "設定ファイルのパス")
		port       = flag.Int("port", 0, "リッスンするポート (設定ファイルを上書き)")
		threads    = flag.Int("threads", 0, "ワーカー数 (設定ファイルを上書き)")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("yadoya - 静的ページ配信サーバー")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *port != 0 {
		cfg.Port = *port
	}
	if *threads != 0 {
		cfg.ThreadCount = *threads
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定の検証に失敗しました: %v", err)
	}

	// ページキャッシュを構築
	store, err := page.New(cfg.WebRoot, cfg.Pages, cfg.Verbose)
	if err != nil {
		log.Fatalf("ページの読み込みに失敗しました: %v", err)
	}

	// サーバーを作成
	rt := router.New(store.Pages(), router.Policy(cfg.OnNoMatch))
	srv := server.New(cfg, rt)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	log.Printf("yadoya サーバーを起動します: %s", cfg.Addr())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
