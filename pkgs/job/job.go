// Package job tracks the shell's child process groups: the fixed-capacity
// job table, the foreground word, and the monitor goroutine that observes
// child status changes and terminal signals.
package job

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/aledsdavies/mash/pkgs/ast"
)

// MaxJobs is the capacity of the job table.
const MaxJobs = 32

// State is the lifecycle state of a job record.
type State int

const (
	Invalid State = iota
	BG
	FG
	Stopped
)

func (s State) String() string {
	switch s {
	case BG, FG:
		return "Running"
	case Stopped:
		return "Stopped"
	}
	return "Invalid"
}

// Record describes one job: a process group originating from one input
// line. PID is the process group leader.
type Record struct {
	JID     int
	PID     int
	State   State
	Command ast.Command
	Line    string
}

// ErrFull is returned by Add when every slot is occupied.
var ErrFull = errors.New("job table full")

// ErrAlreadyDone is returned by Add when the child was reaped before the
// record could be inserted. The job finished; there is nothing to track.
var ErrAlreadyDone = errors.New("job already finished")

// Table is the registry of known child process groups. Mutating methods
// establish the critical section internally; the monitor goroutine and
// the main loop never touch fields directly.
type Table struct {
	mu        sync.Mutex
	slots     [MaxJobs]Record
	nextJID   int
	preReaped map[int]struct{}

	fg   atomic.Int64
	wake chan struct{}
}

// NewTable creates an empty job table.
func NewTable() *Table {
	return &Table{
		nextJID:   1,
		preReaped: make(map[int]struct{}),
		wake:      make(chan struct{}, 1),
	}
}

// Add records a new job in the first free slot and allocates its job id.
// When bg is false the job becomes the foreground job. Add must be called
// right after the child is started; if the monitor reaped the child in
// the window between start and Add, ErrAlreadyDone is returned and no
// record is created.
func (t *Table) Add(line string, bg bool, cmd ast.Command, pid int) (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.preReaped[pid]; ok {
		delete(t.preReaped, pid)
		return Record{}, ErrAlreadyDone
	}

	slot := -1
	for i := range t.slots {
		if t.slots[i].State == Invalid {
			slot = i
			break
		}
	}
	if slot < 0 {
		return Record{}, ErrFull
	}

	state := BG
	if !bg {
		state = FG
	}

	rec := Record{
		JID:     t.allocJID(),
		PID:     pid,
		State:   state,
		Command: cmd,
		Line:    line,
	}
	t.slots[slot] = rec

	if state == FG {
		t.fg.Store(int64(pid))
	}
	return rec, nil
}

// allocJID hands out the next job id, wrapping to 1 past the capacity and
// skipping ids still held by live records. Caller holds t.mu.
func (t *Table) allocJID() int {
	jid := t.nextJID
	if jid > MaxJobs {
		jid = 1
	}
	for t.jidInUse(jid) {
		jid++
		if jid > MaxJobs {
			jid = 1
		}
	}
	t.nextJID = jid + 1
	return jid
}

func (t *Table) jidInUse(jid int) bool {
	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].JID == jid {
			return true
		}
	}
	return false
}

// Remove clears the record for pid and returns it. When no record exists
// the pid is remembered so a racing Add observes ErrAlreadyDone. Removing
// the foreground job clears the foreground word.
func (t *Table) Remove(pid int) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].PID == pid {
			rec := t.slots[i]
			t.slots[i] = Record{}
			t.nextJID = t.maxJIDLocked() + 1
			if t.fg.Load() == int64(pid) {
				t.clearForegroundLocked()
			}
			return rec, true
		}
	}

	t.preReaped[pid] = struct{}{}
	return Record{}, false
}

// SetStopped marks the job for pid as Stopped. Stopping the foreground
// job clears the foreground word so the main loop resumes reading.
func (t *Table) SetStopped(pid int) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].PID == pid {
			t.slots[i].State = Stopped
			if t.fg.Load() == int64(pid) {
				t.clearForegroundLocked()
			}
			return t.slots[i], true
		}
	}
	return Record{}, false
}

// SetState moves the job with the given jid into state. Moving a job to
// FG also publishes it as the foreground job.
func (t *Table) SetState(jid int, state State) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].JID == jid {
			t.slots[i].State = state
			if state == FG {
				t.fg.Store(int64(t.slots[i].PID))
			}
			return t.slots[i], true
		}
	}
	return Record{}, false
}

// ByJID returns a copy of the record with the given job id.
func (t *Table) ByJID(jid int) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].JID == jid {
			return t.slots[i], true
		}
	}
	return Record{}, false
}

// ByPID returns a copy of the record whose process group leader is pid.
func (t *Table) ByPID(pid int) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].PID == pid {
			return t.slots[i], true
		}
	}
	return Record{}, false
}

// Jobs returns copies of every live record in job-id order.
func (t *Table) Jobs() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	var jobs []Record
	for i := range t.slots {
		if t.slots[i].State != Invalid {
			jobs = append(jobs, t.slots[i])
		}
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].JID < jobs[b].JID })
	return jobs
}

// MaxJID returns the largest job id among live records, 0 when empty.
func (t *Table) MaxJID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxJIDLocked()
}

func (t *Table) maxJIDLocked() int {
	max := 0
	for i := range t.slots {
		if t.slots[i].State != Invalid && t.slots[i].JID > max {
			max = t.slots[i].JID
		}
	}
	return max
}

// Foreground returns the pid of the foreground process group, 0 when no
// foreground job is running. Safe to call from any goroutine without
// taking the table lock.
func (t *Table) Foreground() int {
	return int(t.fg.Load())
}

// WaitForeground blocks until the foreground word reads 0, which the
// monitor stores when the foreground job terminates or stops. The wake
// channel is buffered so a wake sent between the load and the receive is
// never lost; the loop re-checks after every wake.
func (t *Table) WaitForeground() {
	for t.fg.Load() != 0 {
		<-t.wake
	}
}

// clearForegroundLocked resets the foreground word and wakes a pending
// WaitForeground. Caller holds t.mu.
func (t *Table) clearForegroundLocked() {
	t.fg.Store(0)
	select {
	case t.wake <- struct{}{}:
	default:
	}
}
