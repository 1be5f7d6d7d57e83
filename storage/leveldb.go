package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	log "github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/common/utils"
	"github.com/abcfe/abcfe-wallet/config"
	prt "github.com/abcfe/abcfe-wallet/protocol"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

func InitDB(cfg *config.Config) (*leveldb.DB, error) {
	dbPath := filepath.Join(cfg.DB.Path, "leveldb_wallets.db")

	if err := os.MkdirAll(cfg.DB.Path, 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		log.Error("Failed to open db: ", err)
		return nil, err
	}

	log.Info("Successfully opened db: ", dbPath)
	return db, nil
}

// LevelStore keeps the whole wallet list as one JSON array under
// PrefixWallets. Appends are read-modify-write, serialized by mu.
type LevelStore struct {
	mu sync.Mutex
	db *leveldb.DB
}

func NewLevelStore(db *leveldb.DB) *LevelStore {
	return &LevelStore{db: db}
}

func (s *LevelStore) FetchAll(ctx context.Context) ([]wallet.Wallet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &wallet.StoreError{Op: "fetch", Err: err}
	}
	wallets, err := s.load()
	if err != nil {
		return nil, &wallet.StoreError{Op: "fetch", Err: err}
	}
	return wallets, nil
}

func (s *LevelStore) Append(ctx context.Context, w wallet.Wallet) error {
	if err := ctx.Err(); err != nil {
		return &wallet.StoreError{Op: "append", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.load()
	if err != nil {
		return &wallet.StoreError{Op: "append", Err: err}
	}
	wallets = append(wallets, w)

	data, err := utils.SerializeData(wallets)
	if err != nil {
		return &wallet.StoreError{Op: "append", Err: err}
	}
	if err := s.db.Put([]byte(prt.PrefixWallets), data, nil); err != nil {
		return &wallet.StoreError{Op: "append", Err: errors.Wrap(err, "save wallets")}
	}
	return nil
}

func (s *LevelStore) load() ([]wallet.Wallet, error) {
	data, err := s.db.Get([]byte(prt.PrefixWallets), nil)
	if err == leveldb.ErrNotFound {
		return []wallet.Wallet{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get wallets")
	}

	var wallets []wallet.Wallet
	if err := utils.DeserializeData(data, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}
