package engine

// Hooks are the fire-and-forget collaborator callbacks the presentation
// layer provides. Nil hooks are skipped.
type Hooks struct {
	Notify            func(title, body string)
	PlaySound         func()
	FlashTitle        func(message string, durationMs int)
	Celebrate         func()
	IncrementPomodoro func(taskID string)
	OnSessionEnd      func()
}

func (h Hooks) notify(title, body string) {
	if h.Notify != nil {
		h.Notify(title, body)
	}
}

func (h Hooks) playSound() {
	if h.PlaySound != nil {
		h.PlaySound()
	}
}

func (h Hooks) flashTitle(message string, durationMs int) {
	if h.FlashTitle != nil {
		h.FlashTitle(message, durationMs)
	}
}

// TickEvent tells the caller what, if anything, a tick completed.
type TickEvent int

const (
	TickNone TickEvent = iota
	TickFocusDone
	TickBreakDone
)

// FocusResult describes what one completed focus session produced.
type FocusResult struct {
	TaskID       string
	Points       int
	Doubled      bool
	LongBreak    bool
	BreakMinutes int
	Extended     bool
}

// MaxBankDraw caps how many banked minutes one draw adds to a break.
const MaxBankDraw = 5

// Session composes the timer, ledger and inventory into the pomodoro
// protocol. It holds no persistent state of its own; callers persist the
// ledger, inventory and tasks after each event turn.
type Session struct {
	Timer     *Timer
	Ledger    *Ledger
	Inventory *Inventory
	Settings  *Settings

	hooks        Hooks
	activeTaskID string
	lastFocus    *FocusResult
}

func NewSession(timer *Timer, ledger *Ledger, inv *Inventory, settings *Settings, hooks Hooks) *Session {
	return &Session{
		Timer:     timer,
		Ledger:    ledger,
		Inventory: inv,
		Settings:  settings,
		hooks:     hooks,
	}
}

func (s *Session) ActiveTaskID() string {
	return s.activeTaskID
}

// LastFocus returns the outcome of the most recent completed focus
// session, or nil.
func (s *Session) LastFocus() *FocusResult {
	return s.lastFocus
}

// StartFocus begins a focus countdown for the given task.
func (s *Session) StartFocus(taskID string) {
	s.activeTaskID = taskID
	s.Timer.Start(s.Settings.FocusDuration, ModeFocus)
}

// Tick advances the countdown by one second. Completion side effects run
// only after the timer has committed the zero transition, so a completion
// is never credited twice and never observed mid-mutation.
func (s *Session) Tick() TickEvent {
	mode := s.Timer.Mode
	if !s.Timer.Tick() {
		return TickNone
	}
	switch {
	case mode == ModeFocus:
		s.completeFocus()
		return TickFocusDone
	case mode.IsBreak():
		s.completeBreak()
		return TickBreakDone
	}
	return TickNone
}

// completeFocus runs the focus-completion protocol: credit the task and
// the cycle, award (possibly doubled) points, then start the break with
// any extension applied.
func (s *Session) completeFocus() {
	if s.hooks.IncrementPomodoro != nil && s.activeTaskID != "" {
		s.hooks.IncrementPomodoro(s.activeTaskID)
	}
	s.Timer.IncrementCycle()

	// 1 point per focus minute.
	points := s.Settings.FocusDuration
	result := FocusResult{TaskID: s.activeTaskID, Points: points}

	if effect := s.Inventory.ActiveEffectOf(EffectDoublePoints); effect != nil {
		result.Points = points * effect.Value
		result.Doubled = true
		s.Inventory.ConsumeEffect(effect.ItemID)
	}
	s.Ledger.Award(result.Points)

	result.LongBreak = s.isLongBreak()
	if result.LongBreak {
		result.BreakMinutes = s.Settings.LongBreakDuration
	} else {
		result.BreakMinutes = s.Settings.ShortBreakDuration
	}
	if effect := s.Inventory.ActiveEffectOf(EffectExtendBreak); effect != nil {
		result.BreakMinutes += effect.Value
		result.Extended = true
		s.Inventory.ConsumeEffect(effect.ItemID)
	}

	s.lastFocus = &result

	mode := ModeShortBreak
	if result.LongBreak {
		mode = ModeLongBreak
	}
	s.Timer.Start(result.BreakMinutes, mode)

	if s.Settings.NotificationsEnabled {
		s.hooks.notify("Focus Session Complete!", "Great job! Time for a break.")
	}
	if s.Settings.SoundEnabled {
		s.hooks.playSound()
	}
	s.hooks.flashTitle("🎉 Break Time!", 3000)
	if s.hooks.Celebrate != nil {
		s.hooks.Celebrate()
	}
}

func (s *Session) completeBreak() {
	if s.Settings.NotificationsEnabled {
		s.hooks.notify("Break Complete!", "Ready to focus again?")
	}
	if s.Settings.SoundEnabled {
		s.hooks.playSound()
	}
	s.hooks.flashTitle("✨ Back to Work!", 3000)
}

// isLongBreak applies the long-break rule to the just-incremented cycle
// count: every CyclesForLongBreak-th completion, never on zero.
func (s *Session) isLongBreak() bool {
	n := s.Settings.CyclesForLongBreak
	return s.Timer.Cycles > 0 && s.Timer.Cycles%n == 0
}

// CancelFocus abandons the running focus session: no points, no effect
// consumption, straight back to idle.
func (s *Session) CancelFocus() {
	s.Timer.Stop()
	s.activeTaskID = ""
	s.lastFocus = nil
	if s.hooks.OnSessionEnd != nil {
		s.hooks.OnSessionEnd()
	}
}

func (s *Session) Pause() {
	s.Timer.Pause()
}

func (s *Session) Resume() {
	s.Timer.Resume()
}

// DrawFromTimeBank moves up to MaxBankDraw banked minutes onto the running
// break countdown. Returns the minutes added, zero when the bank is empty
// or no break is running.
func (s *Session) DrawFromTimeBank() int {
	if !s.Timer.Mode.IsBreak() || s.Timer.Remaining <= 0 {
		return 0
	}
	minutes := min(MaxBankDraw, s.Inventory.TimeBank)
	if minutes <= 0 || !s.Inventory.UseTimeBank(minutes) {
		return 0
	}
	s.Timer.Extend(minutes * 60)
	return minutes
}

// FinishBreak ends the break and returns to idle. Unused whole minutes are
// banked when the user owns the time-bank item.
func (s *Session) FinishBreak() {
	if s.Timer.Mode.IsBreak() && s.Inventory.Owns(ItemTimeBank) {
		s.Inventory.AddToTimeBank(s.Timer.Remaining / 60)
	}
	s.Timer.Stop()
	s.activeTaskID = ""
	if s.hooks.OnSessionEnd != nil {
		s.hooks.OnSessionEnd()
	}
}
