package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/super-rummy/internal/protocol"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_ReserveCode(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	ok, err := store.ReserveCode(ctx, "012345", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// 另一个进程拿不到同一个代码
	ok, err = store.ReserveCode(ctx, "012345", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// 过期后可以重新占用
	mr.FastForward(2 * time.Minute)
	ok, err = store.ReserveCode(ctx, "012345", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.RefreshCode(ctx, "012345", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("code:012345"))

	require.NoError(t, store.ReleaseCode(ctx, "012345"))
	assert.False(t, mr.Exists("code:012345"))
}

func TestRedisStore_SaveLoadDeleteLobby(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	data := &LobbyData{
		Code: "654321",
		Players: []PlayerData{
			{ID: "alice", Name: "Alice", Human: true},
			{ID: "bot", Name: "电脑熊猫"},
		},
		Settings:  protocol.DefaultSettings().WithMeldLimit(4),
		CreatedAt: time.Now().Unix(),
	}

	require.NoError(t, store.SaveLobby(ctx, data))
	require.NoError(t, store.SaveLobby(ctx, nil))

	loaded, err := store.LoadLobby(ctx, "654321")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, data.Players, loaded.Players)
	assert.Equal(t, 4, loaded.Settings.MeldLimit())

	codes, err := store.GetAllLobbyCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"654321"}, codes)

	require.NoError(t, store.DeleteLobby(ctx, "654321"))
	loaded, err = store.LoadLobby(ctx, "654321")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_Result(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	missing, err := store.LoadResult(ctx, "000001")
	require.NoError(t, err)
	assert.Nil(t, missing)

	data := &ResultData{
		Code:       "000001",
		WinnerID:   "alice",
		HandValues: map[string]int{"alice": 0, "bob": 35},
		Names:      map[string]string{"alice": "Alice", "bob": "Bob"},
		EndedAt:    time.Now().Unix(),
	}
	require.NoError(t, store.SaveResult(ctx, data))

	loaded, err := store.LoadResult(ctx, "000001")
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
	assert.Equal(t, resultExpiration, mr.TTL("round:result:000001"))
}

func TestRedisStore_CorruptData(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("lobby:999999", "{not json"))

	_, err := store.LoadLobby(context.Background(), "999999")
	assert.Error(t, err)
}
