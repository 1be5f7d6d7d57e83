package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/abcfe/abcfe-wallet/config"
	prt "github.com/abcfe/abcfe-wallet/protocol"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

func memDB(t *testing.T) *leveldb.DB {
	t.Helper()
	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sample(addr, name string) wallet.Wallet {
	return wallet.Wallet{Address: addr, Name: name, Color: wallet.RGB(0, 0.48, 1), Emoji: "🙂"}
}

func TestLevelStoreEmpty(t *testing.T) {
	s := NewLevelStore(memDB(t))

	wallets, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

// 추가 순서 유지, 중복 주소 허용
func TestLevelStoreAppendKeepsOrder(t *testing.T) {
	s := NewLevelStore(memDB(t))
	ctx := context.Background()

	in := []wallet.Wallet{sample("a", "one"), sample("b", "two"), sample("a", "again")}
	for _, w := range in {
		require.NoError(t, s.Append(ctx, w))
	}

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestLevelStoreConcurrentAppends(t *testing.T) {
	s := NewLevelStore(memDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, sample(string(rune('a'+i)), "w")))
		}(i)
	}
	wg.Wait()

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestLevelStoreCorruptRecord(t *testing.T) {
	db := memDB(t)
	require.NoError(t, db.Put([]byte(prt.PrefixWallets), []byte("{not json"), nil))
	s := NewLevelStore(db)

	_, err := s.FetchAll(context.Background())
	var se *wallet.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "fetch", se.Op)

	err = s.Append(context.Background(), sample("a", "w"))
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "append", se.Op)
}

func TestLevelStoreCancelledContext(t *testing.T) {
	s := NewLevelStore(memDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Append(ctx, sample("a", "w")), context.Canceled)
	got, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInitDB(t *testing.T) {
	cfg := &config.Config{}
	// ~ 확장 후에는 끝의 / 가 없음
	cfg.DB.Path = filepath.Join(t.TempDir(), "db")

	db, err := InitDB(cfg)
	require.NoError(t, err)
	defer db.Close()
	assert.DirExists(t, filepath.Join(cfg.DB.Path, "leveldb_wallets.db"))

	require.NoError(t, NewLevelStore(db).Append(context.Background(), sample("a", "w")))
}
