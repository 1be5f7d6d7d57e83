package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/abcfe/abcfe-wallet/api"
	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/wallet"
)

// Server REST API 서버 구조체 (읽기 전용 지갑 조회)
type Server struct {
	port       int
	httpServer *http.Server
	store      wallet.Store
	notices    *walletlist.Notices
	wsHub      *api.WSHub
}

// NewServer API 서버 인스턴스 생성. notices는 nil 가능
func NewServer(port int, store wallet.Store, notices *walletlist.Notices) *Server {
	return &Server{
		port:    port,
		store:   store,
		notices: notices,
		wsHub:   api.NewWSHub(),
	}
}

// Handler 라우터 반환
func (s *Server) Handler() http.Handler {
	return setupRouter(s.store, s.notices, s.wsHub)
}

// Start API 서버 시작
func (s *Server) Start() error {
	// WebSocket Hub 시작
	go s.wsHub.Run()

	addr := fmt.Sprintf(":%d", s.port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("REST API Server starting on port ", s.port)
	logger.Info("WebSocket available at ws://localhost:", s.port, "/ws")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("REST API Server error: ", err)
		}
	}()

	return nil
}

// Stop API 서버 종료
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	logger.Info("Shutting down REST API Server...")
	s.wsHub.Stop()
	return s.httpServer.Shutdown(ctx)
}

// GetWSHub WebSocket Hub 반환
func (s *Server) GetWSHub() *api.WSHub {
	return s.wsHub
}
