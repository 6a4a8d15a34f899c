package engine

import "fmt"

// Mode is the kind of countdown the timer is running.
type Mode int

const (
	ModeIdle Mode = iota
	ModeFocus
	ModeShortBreak
	ModeLongBreak
)

var modeNames = map[Mode]string{
	ModeIdle:       "idle",
	ModeFocus:      "focus",
	ModeShortBreak: "short_break",
	ModeLongBreak:  "long_break",
}

func (m Mode) String() string {
	return modeNames[m]
}

// IsBreak reports whether the mode is one of the two break kinds.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Timer is the countdown state machine. It holds one session's countdown
// and the running cycle count; it does not schedule its own ticks. The
// caller drives it with Tick from a single tick source.
type Timer struct {
	Active    bool
	Remaining int // seconds
	Mode      Mode
	Cycles    int
}

func NewTimer() *Timer {
	return &Timer{Mode: ModeIdle}
}

// Start begins a countdown of the given length. Starting from any state is
// allowed; the cycle count is preserved.
func (t *Timer) Start(minutes int, mode Mode) {
	t.Active = true
	t.Remaining = minutes * 60
	t.Mode = mode
}

// Tick applies one second of countdown. It reports true exactly once: on
// the tick that takes Remaining to zero, which also deactivates the timer.
// Callers must run completion side effects after Tick returns, not during.
func (t *Timer) Tick() bool {
	if !t.Active || t.Remaining <= 0 {
		return false
	}
	t.Remaining--
	if t.Remaining == 0 {
		t.Active = false
		return true
	}
	return false
}

// Pause stops the countdown, preserving the remaining time.
func (t *Timer) Pause() {
	t.Active = false
}

// Resume continues a paused countdown from the preserved remaining time.
// A finished or idle timer (no time left) cannot be resumed.
func (t *Timer) Resume() {
	if t.Remaining > 0 {
		t.Active = true
	}
}

// Stop cancels the current countdown and returns to idle. The cycle count
// is preserved.
func (t *Timer) Stop() {
	t.Active = false
	t.Remaining = 0
	t.Mode = ModeIdle
}

// Extend adds seconds to a countdown that still has time on it.
func (t *Timer) Extend(seconds int) {
	if t.Remaining > 0 {
		t.Remaining += seconds
	}
}

func (t *Timer) IncrementCycle() {
	t.Cycles++
}

func (t *Timer) ResetCycles() {
	t.Cycles = 0
}

// Done reports whether the current countdown has run out. Idle timers are
// never done; they have nothing to finish.
func (t *Timer) Done() bool {
	return t.Mode != ModeIdle && !t.Active && t.Remaining == 0
}

// FormatTime renders a second count as zero-padded MM:SS. Minutes are not
// capped: 7500 seconds renders as "125:00".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
