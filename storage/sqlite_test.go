package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.sqlite")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	ctx := context.Background()

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	in := []wallet.Wallet{sample("a", "one"), sample("b", "two"), sample("a", "dup")}
	for _, w := range in {
		require.NoError(t, s.Append(ctx, w))
	}
	got, err = s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	require.NoError(t, s.Close())

	// 다시 열면 마이그레이션은 변경 없음
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err = s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSQLiteStoreClosed(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "wallets.sqlite"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.FetchAll(context.Background())
	var se *wallet.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "fetch", se.Op)
}
