package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abcfe/abcfe-wallet/api/rest"
	"github.com/abcfe/abcfe-wallet/common/logger"
	conf "github.com/abcfe/abcfe-wallet/config"
	"github.com/abcfe/abcfe-wallet/internal/onboarding"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/keystore"
	"github.com/abcfe/abcfe-wallet/storage"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// storeTimeout bounds one wallet store call from the UI.
const storeTimeout = 5 * time.Second

type App struct {
	stop       chan struct{}
	Conf       conf.Config
	DB         *leveldb.DB // Mutex within db should not be copied
	Store      wallet.Store
	KeyStore   *keystore.KeyStore
	Generator  wallet.Generator
	Bus        EventBus.Bus
	Notices    *walletlist.Notices
	restServer *rest.Server

	// sqlite 사용 시 닫을 대상
	closer io.Closer
}

// New loads config, logging and storage. console tees debug logs to stdout
// and must be false when the terminal UI runs.
func New(configPath string, console bool) (*App, error) {
	cfg, err := conf.NewConfig(configPath)
	if err != nil {
		fmt.Println("Failed to initialized application: ", err)
		return nil, err
	}

	if err := logger.InitLogger(cfg, console); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return nil, err
	}

	db, err := storage.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to load db: ", err)
		return nil, err
	}

	app := &App{
		stop:     make(chan struct{}),
		Conf:     *cfg,
		DB:       db,
		KeyStore: keystore.New(db, cfg.KeyStore.Passphrase, cfg.KeyStore.ScryptN),
		Bus:      EventBus.New(),
		Notices:  walletlist.NewNotices(),
	}

	switch cfg.Store.Driver {
	case conf.StoreDriverSQLite:
		s, err := storage.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			logger.Error("Failed to open sqlite store: ", err)
			db.Close()
			return nil, err
		}
		app.Store = s
		app.closer = s
	default:
		app.Store = storage.NewLevelStore(db)
	}
	logger.Info("wallet store: ", cfg.Store.Driver)

	gen, err := wallet.NewGenerator(cfg.Generator.Network, app.KeyStore)
	if err != nil {
		app.Cleanup()
		return nil, err
	}
	app.Generator = gen
	logger.Info("address network: ", cfg.Generator.Network)

	if err := app.Notices.Subscribe(app.Bus); err != nil {
		app.Cleanup()
		return nil, errors.Wrap(err, "subscribe notices")
	}

	app.restServer = rest.NewServer(cfg.Server.RestPort, app.Store, app.Notices)
	if err := app.restServer.GetWSHub().Subscribe(app.Bus); err != nil {
		app.Cleanup()
		return nil, errors.Wrap(err, "subscribe websocket hub")
	}

	return app, nil
}

// Env returns the wizard's collaborators.
func (p *App) Env() onboarding.Env {
	return onboarding.Env{
		Generator: p.Generator,
		Timeout:   time.Duration(p.Conf.Generator.TimeoutSeconds) * time.Second,
	}
}

// NewController builds the wallet list controller over the configured store.
func (p *App) NewController() *walletlist.Controller {
	return walletlist.New(p.Store, p.Env(), p.Bus, storeTimeout)
}

// LogPath returns the log file for a day.
func (p *App) LogPath(day time.Time) string {
	return logger.FilePath(&p.Conf, day)
}

// NewRest starts the REST API server when a port is configured.
func (p *App) NewRest() error {
	if p.Conf.Server.RestPort <= 0 {
		logger.Info("REST API disabled")
		return nil
	}
	if err := p.restServer.Start(); err != nil {
		return fmt.Errorf("failed to start REST API server: %w", err)
	}
	return nil
}

// Cleanup 애플리케이션 정리
func (p *App) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// REST API 서버 종료
	if p.restServer != nil {
		if err := p.restServer.Stop(ctx); err != nil {
			logger.Error("Error stopping REST API server: ", err)
		}
	}

	if p.closer != nil {
		if err := p.closer.Close(); err != nil {
			logger.Error("Error closing wallet store: ", err)
		}
	}

	// DB 연결 닫기
	if p.DB != nil {
		if err := p.DB.Close(); err != nil {
			logger.Error("Error closing DB connection: ", err)
		}
	}

	logger.Info("All resources cleaned up")
	logger.Sync()
}

func (p *App) Wait() {
	<-p.stop // 채널에서 값 읽으려고 시도
}

func (p *App) Terminate() {
	p.Cleanup() // 자원 정리 후 종료
	close(p.stop)
}

func (p *App) SigHandler() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM) // OS 시그널을 채널로 전달
	go func() {
		sig := <-sigCh
		logger.Info("Arrived terminate signal: ", sig)
		p.Terminate()
	}()
}
