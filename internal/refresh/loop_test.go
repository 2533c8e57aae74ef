package refresh

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func tick(t time.Time) tea.Msg { return TickMsg{Time: t} }

func TestJobDeliversMessage(t *testing.T) {
	l := New()
	defer l.Stop()

	h := l.Every(time.Second, tick)
	entry := l.cron.Entry(h.id)
	if !entry.Valid() {
		t.Fatal("job not registered")
	}
	entry.Job.Run()

	msg := l.WaitForNext()()
	if _, ok := msg.(TickMsg); !ok {
		t.Fatalf("WaitForNext = %T, want TickMsg", msg)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	l := New()
	defer l.Stop()

	h := l.Every(time.Second, tick)
	other := l.Every(time.Second, tick)

	h.Cancel()
	h.Cancel()

	if l.cron.Entry(h.id).Valid() {
		t.Error("cancelled job still registered")
	}
	if !l.cron.Entry(other.id).Valid() {
		t.Error("cancelling one job removed another")
	}

	var nilHandle *Handle
	nilHandle.Cancel()
}

func TestCronRejectsBadSpec(t *testing.T) {
	l := New()
	defer l.Stop()

	if _, err := l.Cron("not a spec", tick); err == nil {
		t.Error("Cron accepted an invalid spec")
	}
	h, err := l.Cron(MidnightSpec, func(t time.Time) tea.Msg { return DayChangedMsg{Time: t} })
	if err != nil {
		t.Fatalf("Cron(%q): %v", MidnightSpec, err)
	}
	next := l.cron.Entry(h.id).Schedule.Next(time.Date(2026, 10, 16, 23, 59, 0, 0, time.Local))
	want := time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next midnight = %v, want %v", next, want)
	}
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	l := New()
	defer l.Stop()

	h := l.Every(time.Second, tick)
	job := l.cron.Entry(h.id).Job

	done := make(chan struct{})
	go func() {
		for i := 0; i < bufferSize+5; i++ {
			job.Run()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job blocked on a full queue")
	}
	if got := len(l.msgCh); got != bufferSize {
		t.Errorf("queued = %d, want %d", got, bufferSize)
	}
}

func TestStopReleasesWaiter(t *testing.T) {
	l := New()
	if cmd := l.Start(); cmd == nil {
		t.Fatal("Start returned nil on first call")
	}
	if cmd := l.Start(); cmd != nil {
		t.Error("second Start returned a command")
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- l.WaitForNext()() }()

	l.Stop()
	l.Stop()

	select {
	case msg := <-got:
		if msg != nil {
			t.Errorf("WaitForNext after Stop = %v, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForNext still blocked after Stop")
	}
	if cmd := l.Start(); cmd != nil {
		t.Error("Start after Stop returned a command")
	}
}
