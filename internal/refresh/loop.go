// Package refresh schedules the periodic dashboard updates and bridges them
// into the Bubble Tea runtime.
package refresh

import (
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
)

// TickMsg is sent on every countdown tick.
type TickMsg struct {
	Time time.Time
}

// QuoteMsg is sent when the dashboard should advance to the next quote.
type QuoteMsg struct {
	Time time.Time
}

// DayChangedMsg is sent at local midnight so the current day's record can
// be reloaded.
type DayChangedMsg struct {
	Time time.Time
}

// MidnightSpec is the cron expression for the day-rollover job.
const MidnightSpec = "0 0 * * *"

// bufferSize bounds the pending message queue. Jobs never block on a full
// queue; the message is dropped and the next tick supersedes it.
const bufferSize = 16

// Loop owns a cron scheduler whose jobs emit tea.Msg values.
type Loop struct {
	cron    *cron.Cron
	msgCh   chan tea.Msg
	stopCh  chan struct{}
	mu      sync.Mutex
	running bool
	stopped bool
}

// New creates a Loop. Jobs run in the local timezone.
func New() *Loop {
	return &Loop{
		cron:   cron.New(cron.WithLogger(cron.PrintfLogger(log.Default()))),
		msgCh:  make(chan tea.Msg, bufferSize),
		stopCh: make(chan struct{}),
	}
}

// Handle identifies a registered job.
type Handle struct {
	loop *Loop
	id   cron.EntryID
	once sync.Once
}

// Cancel removes the job. Calling it more than once is a no-op.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.loop.cron.Remove(h.id)
	})
}

// Every registers fn to run every d. Intervals below one second are rounded
// up to one second.
func (l *Loop) Every(d time.Duration, fn func(time.Time) tea.Msg) *Handle {
	id := l.cron.Schedule(cron.Every(d), l.job(fn))
	return &Handle{loop: l, id: id}
}

// Cron registers fn on a standard five-field cron expression.
func (l *Loop) Cron(spec string, fn func(time.Time) tea.Msg) (*Handle, error) {
	id, err := l.cron.AddJob(spec, l.job(fn))
	if err != nil {
		return nil, fmt.Errorf("scheduling %q: %w", spec, err)
	}
	return &Handle{loop: l, id: id}, nil
}

func (l *Loop) job(fn func(time.Time) tea.Msg) cron.Job {
	return cron.FuncJob(func() {
		l.send(fn(time.Now()))
	})
}

// send queues msg without blocking.
func (l *Loop) send(msg tea.Msg) {
	if msg == nil {
		return
	}
	select {
	case l.msgCh <- msg:
	default:
		// Queue full; drop.
	}
}

// Start begins running jobs and returns the command that delivers the first
// message. It returns nil if the loop is already running or stopped.
func (l *Loop) Start() tea.Cmd {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running || l.stopped {
		return nil
	}
	l.running = true
	l.cron.Start()

	return l.WaitForNext()
}

// Stop halts the scheduler and releases any pending WaitForNext command.
// It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true
	if l.running {
		l.cron.Stop()
		l.running = false
	}
	close(l.stopCh)
}

// WaitForNext returns a tea.Cmd that blocks until a job emits a message.
// Call it again after handling each message to keep listening.
func (l *Loop) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-l.msgCh:
			return msg
		case <-l.stopCh:
			return nil
		}
	}
}
