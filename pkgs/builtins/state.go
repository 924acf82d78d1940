package builtins

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// State is the process-wide shell state shared by the builtins: the
// working directory and the file-creation mask.
type State struct {
	mu    sync.Mutex
	pwd   string
	umask int
}

// NewState captures the starting directory (the PWD environment variable
// when set, the real working directory otherwise) and the current
// process umask.
func NewState() *State {
	pwd := os.Getenv("PWD")
	if pwd == "" {
		pwd, _ = os.Getwd()
	}
	um := unix.Umask(0)
	unix.Umask(um)
	return &State{pwd: pwd, umask: um}
}

// Pwd returns the current working directory.
func (s *State) Pwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pwd
}

// SetPwd records a directory change.
func (s *State) SetPwd(pwd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pwd = pwd
}

// Umask returns the last mask set through SetUmask.
func (s *State) Umask() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.umask
}

// SetUmask applies mask to the real process umask, so forked children
// and redirection opens inherit it.
func (s *State) SetUmask(mask int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unix.Umask(mask)
	s.umask = mask
}
