package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"yadoya/internal/config"
	"yadoya/internal/protocol"
	"yadoya/internal/router"
)

// シャットダウン時にワーカーの完了を待つ上限
const shutdownTimeout = 5 * time.Second

// Server はリッスンソケットとワーカープールを管理する構造体
type Server struct {
	config   *config.Config
	router   *router.Router
	policy   ErrorPolicy
	listener net.Listener
	jobs     chan net.Conn
	wg       sync.WaitGroup
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, rt *router.Router) *Server {
	return &Server{
		config: cfg,
		router: rt,
	}
}

// Start はサーバーを起動する
// バインドに失敗した場合はエラーを返す。起動後はコンテキストの
// キャンセルか SIGINT / SIGTERM を受けるまで動き続ける
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("ポート %d のバインドに失敗: %w", s.config.Port, err)
	}
	s.listener = ln
	s.jobs = make(chan net.Conn, s.config.QueueSize)

	// 固定数のワーカーを起動する
	for i := 0; i < s.config.ThreadCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	// 受け付けループを別ゴルーチンで起動
	go s.acceptLoop()

	log.Printf("サーバーを起動しました: %s (ワーカー数: %d)", s.config.Addr(), s.config.ThreadCount)

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 新しい接続の受け付けを止め、キューに残った接続の処理完了を待つ
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("リスナーのクローズに失敗: %w", err)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		return fmt.Errorf("ワーカーの停止がタイムアウトしました")
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}

// acceptLoop は接続を受け付けてキューに投入する
// キューが満杯の間は投入がブロックし、その分だけ受け付けが待たされる
// （これが明示的なバックプレッシャになる）
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// リスナーが閉じられたら受け付けを終了し、ワーカーに終了を伝える
			if errors.Is(err, net.ErrClosed) {
				close(s.jobs)
				return
			}
			// 個別の受け付け失敗でサーバー全体は止めない
			log.Printf("接続の受け付けに失敗しました: %v", err)
			continue
		}
		s.jobs <- conn
	}
}

// worker はキューから接続を取り出して処理する
func (s *Server) worker() {
	defer s.wg.Done()
	for conn := range s.jobs {
		s.handle(conn)
	}
}

// handle は1つの接続を処理する
// 読み込み → 解析 → 経路解決 → 応答の書き込み、の後に必ず接続を閉じる
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	id := uuid.New().String()

	s.applyDeadlines(conn)

	req, err := protocol.ReadRequest(conn, s.config.MaxHeaderBytes)
	if err != nil {
		s.handleError(conn, id, err)
		return
	}

	res := s.buildResponse(req)
	if _, err := conn.Write(res.Bytes()); err != nil {
		log.Printf("応答の書き込みに失敗しました: id=%s remote=%s: %v", id, conn.RemoteAddr(), err)
		return
	}

	if s.config.Verbose {
		log.Printf("リクエストを処理しました: id=%s remote=%s method=%s path=%s status=%d",
			id, conn.RemoteAddr(), req.Method, req.Path, res.StatusCode)
	}
}

// buildResponse は経路解決の結果から応答を組み立てる
func (s *Server) buildResponse(req *protocol.Request) *protocol.Response {
	p, ok := s.router.Resolve(req.Path)
	if !ok {
		return protocol.NewStatus(404)
	}

	res := protocol.NewStatus(200)
	res.SetBody(p.Contents)
	return res
}

// handleError はポリシーに従ってエラーを応答に変換する
func (s *Server) handleError(conn net.Conn, id string, err error) {
	code, ok := s.policy.StatusFor(err)
	if !ok {
		log.Printf("リクエストの読み込みに失敗しました: id=%s remote=%s: %v", id, conn.RemoteAddr(), err)
		return
	}

	res := protocol.NewStatus(code)
	if _, werr := conn.Write(res.Bytes()); werr != nil {
		log.Printf("エラー応答の書き込みに失敗しました: id=%s remote=%s: %v", id, conn.RemoteAddr(), werr)
		return
	}

	if s.config.Verbose {
		log.Printf("不正なリクエストを処理しました: id=%s remote=%s status=%d: %v", id, conn.RemoteAddr(), code, err)
	}
}

// applyDeadlines は設定された読み書きデッドラインを接続に適用する
func (s *Server) applyDeadlines(conn net.Conn) {
	now := time.Now()
	if s.config.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(now.Add(time.Duration(s.config.ReadTimeout) * time.Second))
	}
	if s.config.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(now.Add(time.Duration(s.config.WriteTimeout) * time.Second))
	}
}
