// internal/game/game_test.go
package game

import (
	"testing"

	"github.com/jason-s-yu/reversi/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGame returns a game with both players assigned, local as R.
func setupTestGame(t *testing.T, localIsFirst bool) *Game {
	t.Helper()
	g := New()
	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignLocalColor(board.ColorA))
	require.NoError(t, g.AssignRemote("bob", board.ColorB))
	require.NoError(t, g.StartNewGame(localIsFirst))
	return g
}

func TestTurnCallsRejectedUntilPlayersAssigned(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.SetTurn(true), ErrPlayersUnassigned)
	assert.ErrorIs(t, g.StartNewGame(true), ErrPlayersUnassigned)

	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignLocalColor(board.ColorA))
	_, err := g.ApplyRemoteMove(0, 0)
	assert.ErrorIs(t, err, ErrPlayersUnassigned)
	assert.ErrorIs(t, g.Restore("                ", "alice"), ErrPlayersUnassigned)

	// nothing leaked onto the board
	b := g.Board()
	assert.Equal(t, board.SnapshotLen, b.Count(board.Empty))
}

func TestStartNewGameSetsTurnAndBoard(t *testing.T) {
	g := setupTestGame(t, true)
	assert.Equal(t, Local, g.Turn())
	assert.False(t, g.Over())
	st := g.State()
	assert.True(t, st.Started)
	assert.True(t, st.LocalTurn)
	assert.Equal(t, []string{"    ", " RB ", " BR ", "    "}, st.Rows)

	g = setupTestGame(t, false)
	assert.Equal(t, Remote, g.Turn())
	assert.Equal(t, []string{"    ", " BR ", " RB ", "    "}, g.State().Rows)
}

func TestMovesAlternateTurn(t *testing.T) {
	g := setupTestGame(t, true)

	flipped, err := g.ApplyLocalMove(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
	assert.Equal(t, Remote, g.Turn())

	_, err = g.ApplyRemoteMove(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Local, g.Turn())

	st := g.State()
	assert.Equal(t, 4, st.Local.Cells)
	assert.Equal(t, 2, st.Remote.Cells)
}

func TestOutOfBoundsMoveKeepsTurn(t *testing.T) {
	g := setupTestGame(t, true)
	before := g.State()
	_, err := g.ApplyLocalMove(9, 9)
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
	assert.Equal(t, before, g.State())
}

func TestAssignRemoteColorConflict(t *testing.T) {
	g := New()
	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignLocalColor(board.ColorB))
	assert.ErrorIs(t, g.AssignRemote("bob", board.ColorB), ErrColorConflict)
	assert.ErrorIs(t, g.AssignRemote("", board.ColorA), ErrEmptyName)
}

func TestAssignRemoteDerivesLocalColor(t *testing.T) {
	g := New()
	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignRemote("bob", board.ColorA))
	assert.Equal(t, board.ColorB, g.Local().Color)
}

func TestAssignLocalName(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.AssignLocalName(""), ErrEmptyName)
	assert.ErrorIs(t, g.AssignLocalName("this-name-is-way-too-long"), ErrNameTooLong)
	require.NoError(t, g.AssignLocalName("exactly-twenty-chars"))
	assert.Equal(t, "exactly-twenty-chars", g.Local().Name)
}

func TestRestoreFromSnapshot(t *testing.T) {
	g := New()
	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignRemote("bob", board.ColorB))
	require.NoError(t, g.Restore("R   RB  BBR     ", "alice"))

	st := g.State()
	assert.True(t, st.LocalTurn)
	assert.Equal(t, "R   RB  BBR     ", st.Board)
	assert.Equal(t, 3, st.Local.Cells)
	assert.Equal(t, 3, st.Remote.Cells)

	require.NoError(t, g.Restore("R   RB  BBR     ", "bob"))
	assert.Equal(t, Remote, g.Turn())

	assert.ErrorIs(t, g.Restore("short", "bob"), board.ErrMalformedSnapshot)
}

func TestRemoteGoneAndEnd(t *testing.T) {
	g := setupTestGame(t, true)
	require.NoError(t, g.MarkRemoteGone())
	st := g.State()
	assert.True(t, st.RemoteGone)
	assert.False(t, st.LocalTurn)

	require.NoError(t, g.EndGame())
	assert.True(t, g.State().GameOver)

	// a new start clears both flags
	require.NoError(t, g.StartNewGame(false))
	st = g.State()
	assert.False(t, st.GameOver)
	assert.False(t, st.RemoteGone)
}

func TestRemoteGoneAndEndNeedPlayers(t *testing.T) {
	g := New()
	require.NoError(t, g.AssignLocalName("alice"))
	require.NoError(t, g.AssignLocalColor(board.ColorA))

	assert.ErrorIs(t, g.MarkRemoteGone(), ErrPlayersUnassigned)
	assert.ErrorIs(t, g.EndGame(), ErrPlayersUnassigned)
	st := g.State()
	assert.False(t, st.RemoteGone)
	assert.False(t, st.GameOver)
}

func TestStateIsACopy(t *testing.T) {
	g := setupTestGame(t, true)
	st := g.State()
	st.Rows[0] = "RRRR"
	assert.Equal(t, "    ", g.State().Rows[0])
}

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status string
		want   OutcomeKind
	}{
		{"DRAW", OutcomeDraw},
		{"OPP_DISCONNECTED", OutcomeOpponentLeft},
		{"alice", OutcomeWin},
		{"bob", OutcomeLoss},
	}
	for _, tc := range cases {
		got := ClassifyStatus(tc.status, "alice")
		assert.Equal(t, tc.want, got.Kind, tc.status)
	}
	assert.Equal(t, "Winner winner chicken dinner!", ClassifyStatus("alice", "alice").Message())
}
