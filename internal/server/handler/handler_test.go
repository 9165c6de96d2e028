package handler

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/super-rummy/internal/game/lobby"
	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/server/storage"
	"github.com/palemoky/super-rummy/internal/testutil"
)

type bogusAction struct{}

func (bogusAction) Type() protocol.ActionType { return "bogus" }

func setupHandler(t *testing.T, maintenance bool) (*Handler, *lobby.Manager) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := lobby.NewManager(storage.NewRedisStore(rdb), round.NewRegistry(), 4, time.Minute)
	t.Cleanup(m.Wait)

	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(maintenance).Maybe()

	return NewHandler(HandlerDeps{Server: srv, Lobbies: m}), m
}

func connect(t *testing.T, m *lobby.Manager, id, name string) *testutil.SimpleClient {
	t.Helper()
	c := testutil.NewSimpleClient(id, name)
	_, err := m.Create(c)
	require.NoError(t, err)
	c.Reset()
	return c
}

func lastError(t *testing.T, c *testutil.SimpleClient) *protocol.ErrorEvent {
	t.Helper()
	ev, ok := c.LastEvent().(*protocol.ErrorEvent)
	require.True(t, ok, "expected error event, got %T", c.LastEvent())
	return ev
}

func lastLobby(t *testing.T, c *testutil.SimpleClient) protocol.ClientLobby {
	t.Helper()
	events := testutil.EventsOf[*protocol.LobbyEvent](c)
	require.NotEmpty(t, events)
	return events[len(events)-1].Lobby
}

func TestHandle_Pong(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")

	h.Handle(alice, &protocol.PongAction{})
	assert.Empty(t, alice.Events())
}

func TestHandle_UnknownAction(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")

	h.Handle(alice, bogusAction{})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, alice).Code)
}

func TestHandle_Name(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")

	h.Handle(alice, &protocol.NameAction{Name: "  Alice  "})
	assert.Equal(t, "Alice", alice.GetName())
	assert.Equal(t, "Alice", lastLobby(t, alice).Players[0].Name)

	h.Handle(alice, &protocol.NameAction{Name: "!!!"})
	assert.Equal(t, protocol.ErrCodeInvalidName, lastError(t, alice).Code)
	assert.Equal(t, "Alice", alice.GetName())
}

func TestHandle_AI(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")

	h.Handle(alice, &protocol.AIAction{Action: protocol.AIRemove})
	assert.Equal(t, protocol.ErrCodeNoAIPlayer, lastError(t, alice).Code)

	h.Handle(alice, &protocol.AIAction{Action: protocol.AIAdd})
	players := lastLobby(t, alice).Players
	require.Len(t, players, 2)
	assert.False(t, players[1].Human)

	h.Handle(alice, &protocol.AIAction{Action: protocol.AIRemove})
	assert.Len(t, lastLobby(t, alice).Players, 1)
}

func TestHandle_JoinAndSettings(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")
	bob := connect(t, m, "b", "bob")

	h.Handle(bob, &protocol.JoinAction{Code: "nope"})
	assert.Equal(t, protocol.ErrCodeLobbyNotFound, lastError(t, bob).Code)

	h.Handle(bob, &protocol.JoinAction{Code: alice.GetLobby()})
	assert.Equal(t, alice.GetLobby(), bob.GetLobby())
	assert.Len(t, lastLobby(t, alice).Players, 2)

	settings := protocol.DefaultSettings()
	settings.HandSize = 5
	h.Handle(bob, &protocol.SettingsAction{Settings: settings})
	assert.Equal(t, 5, lastLobby(t, alice).Settings.HandSize)
	assert.Equal(t, 5, lastLobby(t, bob).Settings.HandSize)
}

func TestHandle_StartAndPlay(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, false)
	alice := connect(t, m, "a", "alice")

	h.Handle(alice, &protocol.DrawAction{CardID: "x"})
	assert.Equal(t, protocol.ErrCodeGameNotStart, lastError(t, alice).Code)

	h.Handle(alice, &protocol.StartAction{})
	assert.Equal(t, protocol.ErrCodeNotEnoughPlayers, lastError(t, alice).Code)

	h.Handle(alice, &protocol.AIAction{Action: protocol.AIAdd})
	alice.Reset()
	h.Handle(alice, &protocol.StartAction{})

	starts := testutil.EventsOf[*protocol.StartEvent](alice)
	require.Len(t, starts, 1)
	start := starts[0]
	assert.Equal(t, "a", start.CurrentPlayerID)

	h.Handle(alice, &protocol.DiscardAction{CardID: "x"})
	assert.Equal(t, protocol.ErrCodeWrongPhase, lastError(t, alice).Code)

	h.Handle(alice, &protocol.DrawAction{CardID: "x"})
	assert.Equal(t, protocol.ErrCodeCardNotFound, lastError(t, alice).Code)

	// 两个座位各发 7 张，再翻开一张弃牌，剩下的牌堆顶
	top := start.CardIDs[len(start.CardIDs)-16]
	h.Handle(alice, &protocol.DrawAction{CardID: top})
	turn, ok := alice.LastEvent().(*protocol.TurnEvent)
	require.True(t, ok)
	assert.Equal(t, protocol.TurnPlay, turn.State)

	h.Handle(alice, &protocol.MeldAction{CardIDs: []string{"x"}})
	assert.Equal(t, protocol.ErrCodeCardNotFound, lastError(t, alice).Code)

	h.Handle(alice, &protocol.LayAction{CardIDs: []string{top}, MeldNumber: 3})
	assert.Equal(t, protocol.ErrCodeInvalidMeld, lastError(t, alice).Code)

	h.Handle(alice, &protocol.AIAction{Action: protocol.AIAdd})
	assert.Equal(t, protocol.ErrCodeGameStarted, lastError(t, alice).Code)
}

func TestHandle_StartInMaintenance(t *testing.T) {
	t.Parallel()
	h, m := setupHandler(t, true)
	alice := connect(t, m, "a", "alice")
	h.Handle(alice, &protocol.AIAction{Action: protocol.AIAdd})

	h.Handle(alice, &protocol.StartAction{})
	assert.Equal(t, protocol.ErrCodeServerMaintenance, lastError(t, alice).Code)
	assert.Equal(t, 0, m.ActiveRounds())
}
