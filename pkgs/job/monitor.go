package job

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Monitor owns the shell's signal handling: it drains child status
// changes into the job table and forwards terminal signals to the
// foreground process group.
type Monitor struct {
	table *Table
	out   io.Writer
	sig   chan os.Signal
}

// StartMonitor installs the signal handlers and starts the monitor
// goroutine. out receives user-facing notifications (stopped jobs).
func StartMonitor(table *Table, out io.Writer) *Monitor {
	m := &Monitor{
		table: table,
		out:   out,
		sig:   make(chan os.Signal, 64),
	}
	signal.Notify(m.sig, unix.SIGCHLD, unix.SIGINT, unix.SIGTSTP)
	go m.loop()
	return m
}

// Stop uninstalls the handlers and ends the monitor goroutine.
func (m *Monitor) Stop() {
	signal.Stop(m.sig)
	close(m.sig)
}

func (m *Monitor) loop() {
	for sig := range m.sig {
		switch sig {
		case unix.SIGCHLD:
			m.reap()
		case unix.SIGINT:
			m.forward(unix.SIGINT)
		case unix.SIGTSTP:
			m.forward(unix.SIGTSTP)
		}
	}
}

// reap drains every pending child status change. SIGCHLD coalesces, so a
// single delivery may stand for several children.
func (m *Monitor) reap() {
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if pid <= 0 || err != nil {
			return
		}
		m.handle(pid, ws)
	}
}

// handle applies one wait status to the job table.
func (m *Monitor) handle(pid int, ws unix.WaitStatus) {
	switch {
	case ws.Exited() || ws.Signaled():
		rec, known := m.table.Remove(pid)
		logrus.WithFields(logrus.Fields{
			"pid":    pid,
			"jid":    rec.JID,
			"known":  known,
			"status": ws,
		}).Debug("child terminated")

	case ws.Stopped():
		if rec, ok := m.table.SetStopped(pid); ok {
			fmt.Fprintf(m.out, "[%d] (%d) Stopped %s\n", rec.JID, rec.PID, rec.Line)
			logrus.WithFields(logrus.Fields{"pid": pid, "jid": rec.JID}).Debug("job stopped")
		}
	}
}

// forward re-delivers a terminal signal to the whole foreground process
// group. With no foreground job the signal is dropped.
func (m *Monitor) forward(sig syscall.Signal) {
	fg := m.table.Foreground()
	if fg == 0 {
		logrus.WithField("signal", sig).Debug("no foreground job, signal dropped")
		return
	}
	if err := unix.Kill(-fg, sig); err != nil {
		logrus.WithFields(logrus.Fields{"pgid": fg, "signal": sig}).
			WithError(err).Debug("signal forward failed")
	}
}
