package job

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/mash/pkgs/ast"
)

func sleepCmd(secs int) ast.Command {
	return &ast.Exec{Argv: []string{"sleep", fmt.Sprint(secs)}}
}

func TestAddAssignsSequentialJIDs(t *testing.T) {
	table := NewTable()

	first, err := table.Add("sleep 1", true, sleepCmd(1), 100)
	require.NoError(t, err)
	second, err := table.Add("sleep 2", true, sleepCmd(2), 101)
	require.NoError(t, err)

	assert.Equal(t, 1, first.JID)
	assert.Equal(t, 2, second.JID)
	assert.Equal(t, BG, first.State)
}

func TestAddForeground(t *testing.T) {
	table := NewTable()

	rec, err := table.Add("cat", false, &ast.Exec{Argv: []string{"cat"}}, 200)
	require.NoError(t, err)

	assert.Equal(t, FG, rec.State)
	assert.Equal(t, 200, table.Foreground())

	_, ok := table.Remove(200)
	require.True(t, ok)
	assert.Equal(t, 0, table.Foreground(), "removing the foreground job clears the foreground word")
}

func TestRemoveRecomputesNextJID(t *testing.T) {
	table := NewTable()

	for i := 0; i < 3; i++ {
		_, err := table.Add("sleep", true, sleepCmd(i), 300+i)
		require.NoError(t, err)
	}

	// Drop the middle job; the next allocation continues past the
	// largest live jid.
	_, ok := table.Remove(301)
	require.True(t, ok)

	rec, err := table.Add("sleep", true, sleepCmd(9), 310)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.JID)
}

func TestTableOverflow(t *testing.T) {
	table := NewTable()

	for i := 0; i < MaxJobs; i++ {
		_, err := table.Add("sleep", true, sleepCmd(i), 1000+i)
		require.NoError(t, err)
	}

	_, err := table.Add("sleep", true, sleepCmd(99), 2000)
	assert.ErrorIs(t, err, ErrFull)
}

func TestJIDAllocationAfterClearingHighIDs(t *testing.T) {
	table := NewTable()

	// Fill the table, then free every slot except jid 1 and jid 2.
	pids := make([]int, MaxJobs)
	for i := 0; i < MaxJobs; i++ {
		rec, err := table.Add("sleep", true, sleepCmd(i), 4000+i)
		require.NoError(t, err)
		pids[rec.JID-1] = rec.PID
	}
	for jid := 3; jid <= MaxJobs; jid++ {
		_, ok := table.Remove(pids[jid-1])
		require.True(t, ok)
	}

	// Clearing recomputed the next id past the largest live jid; the
	// next allocation lands on 3 without colliding with 1 or 2.
	require.Equal(t, 2, table.MaxJID(), "expected jids 1 and 2 alive")
	rec, err := table.Add("sleep", true, sleepCmd(50), 5000)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.JID)

	seen := map[int]bool{}
	for _, r := range table.Jobs() {
		assert.False(t, seen[r.JID], "duplicate jid %d", r.JID)
		assert.GreaterOrEqual(t, r.JID, 1)
		assert.LessOrEqual(t, r.JID, MaxJobs)
		seen[r.JID] = true
	}
}

func TestLookups(t *testing.T) {
	table := NewTable()

	added, err := table.Add("sleep 5", true, sleepCmd(5), 600)
	require.NoError(t, err)

	byJID, ok := table.ByJID(added.JID)
	require.True(t, ok)
	assert.Equal(t, added, byJID)

	byPID, ok := table.ByPID(600)
	require.True(t, ok)
	assert.Equal(t, added, byPID)

	_, ok = table.ByJID(99)
	assert.False(t, ok)
	_, ok = table.ByPID(999)
	assert.False(t, ok)
}

func TestPreReapedAdd(t *testing.T) {
	table := NewTable()

	// The monitor observed the pid before the main loop could insert
	// the record: Remove for an unknown pid remembers it.
	_, ok := table.Remove(700)
	assert.False(t, ok)

	_, err := table.Add("true", false, &ast.Exec{Argv: []string{"true"}}, 700)
	assert.ErrorIs(t, err, ErrAlreadyDone)
	assert.Equal(t, 0, table.Foreground(), "a pre-reaped foreground job never publishes itself")

	// The marker is consumed; the pid can be reused later.
	_, err = table.Add("true", true, &ast.Exec{Argv: []string{"true"}}, 700)
	require.NoError(t, err)
}

func TestSetStopped(t *testing.T) {
	table := NewTable()

	rec, err := table.Add("sleep 30", false, sleepCmd(30), 800)
	require.NoError(t, err)
	require.Equal(t, 800, table.Foreground())

	stopped, ok := table.SetStopped(800)
	require.True(t, ok)
	assert.Equal(t, Stopped, stopped.State)
	assert.Equal(t, rec.JID, stopped.JID)
	assert.Equal(t, 0, table.Foreground(), "stopping the foreground job clears the foreground word")
}

func TestSetStateForeground(t *testing.T) {
	table := NewTable()

	rec, err := table.Add("sleep 30", true, sleepCmd(30), 900)
	require.NoError(t, err)

	promoted, ok := table.SetState(rec.JID, FG)
	require.True(t, ok)
	assert.Equal(t, FG, promoted.State)
	assert.Equal(t, 900, table.Foreground())
}

func TestWaitForeground(t *testing.T) {
	table := NewTable()

	// No foreground job: returns immediately.
	done := make(chan struct{})
	go func() {
		table.WaitForeground()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForeground blocked with no foreground job")
	}

	// With a foreground job it blocks until the monitor clears it.
	_, err := table.Add("sleep 1", false, sleepCmd(1), 1100)
	require.NoError(t, err)

	released := make(chan struct{})
	go func() {
		table.WaitForeground()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("WaitForeground returned while the job was foreground")
	case <-time.After(50 * time.Millisecond):
	}

	table.Remove(1100)

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("WaitForeground did not observe the cleared foreground word")
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", BG.String())
	assert.Equal(t, "Running", FG.String())
	assert.Equal(t, "Stopped", Stopped.String())
	assert.Equal(t, "Invalid", Invalid.String())
}
