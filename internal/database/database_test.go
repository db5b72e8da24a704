package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb, err := ConnectRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, rdb.Close())
}

func TestConnectRedis_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := ConnectRedis(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to ping redis")
}

func TestConnectMongo_BadURI(t *testing.T) {
	t.Parallel()

	_, _, err := ConnectMongo(context.Background(), "not-a-uri", "accounts")
	require.Error(t, err)
}

func TestConnectMongo_UnreachableHost(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, _, err := ConnectMongo(ctx, "mongodb://127.0.0.1:1", "accounts")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to ping user store")
}
