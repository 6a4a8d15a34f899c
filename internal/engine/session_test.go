package engine

import (
	"testing"
	"time"
)

type hookRecorder struct {
	notices      []string
	sounds       int
	flashes      []string
	celebrations int
	pomodoros    []string
	sessionEnds  int
}

func (r *hookRecorder) hooks() Hooks {
	return Hooks{
		Notify:            func(title, body string) { r.notices = append(r.notices, title) },
		PlaySound:         func() { r.sounds++ },
		FlashTitle:        func(message string, _ int) { r.flashes = append(r.flashes, message) },
		Celebrate:         func() { r.celebrations++ },
		IncrementPomodoro: func(taskID string) { r.pomodoros = append(r.pomodoros, taskID) },
		OnSessionEnd:      func() { r.sessionEnds++ },
	}
}

func newTestSession(t *testing.T) (*Session, *hookRecorder) {
	t.Helper()
	rec := &hookRecorder{}
	settings := DefaultSettings()
	ledger := ledgerAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return NewSession(NewTimer(), ledger, NewInventory(), &settings, rec.hooks()), rec
}

// runFocus ticks a started focus session to completion.
func runFocus(s *Session) TickEvent {
	for {
		if ev := s.Tick(); ev != TickNone {
			return ev
		}
	}
}

func TestSessionFocusCompletion(t *testing.T) {
	s, rec := newTestSession(t)
	s.StartFocus("task-1")

	if s.Timer.Mode != ModeFocus || s.Timer.Remaining != 25*60 {
		t.Fatalf("unexpected timer after start: %+v", s.Timer)
	}

	events := 0
	for i := 0; i < 25*60; i++ {
		if s.Tick() == TickFocusDone {
			events++
		}
	}
	if events != 1 {
		t.Fatalf("focus completion should fire exactly once, fired %d times", events)
	}

	// 1 point per focus minute.
	if s.Ledger.Total != 25 {
		t.Fatalf("expected 25 points, got %d", s.Ledger.Total)
	}
	if s.Timer.Cycles != 1 {
		t.Fatalf("expected 1 cycle, got %d", s.Timer.Cycles)
	}
	if len(rec.pomodoros) != 1 || rec.pomodoros[0] != "task-1" {
		t.Fatalf("task callback not invoked correctly: %v", rec.pomodoros)
	}

	// A short break starts automatically.
	if s.Timer.Mode != ModeShortBreak {
		t.Fatalf("expected short break, got %v", s.Timer.Mode)
	}
	if s.Timer.Remaining != 5*60 {
		t.Fatalf("expected 5 min break, got %d s", s.Timer.Remaining)
	}

	res := s.LastFocus()
	if res == nil || res.Points != 25 || res.Doubled || res.LongBreak || res.Extended {
		t.Fatalf("unexpected focus result: %+v", res)
	}
	if rec.celebrations != 1 || rec.sounds != 1 || len(rec.notices) != 1 {
		t.Fatalf("hooks misfired: %+v", rec)
	}
}

func TestSessionLongBreakEveryFourth(t *testing.T) {
	s, _ := newTestSession(t)

	// Cycles 1..3 short, 4 long, 5..7 short, 8 long.
	wantLong := map[int]bool{4: true, 8: true, 12: true}
	for cycle := 1; cycle <= 12; cycle++ {
		s.StartFocus("t")
		runFocus(s)
		if got := s.LastFocus().LongBreak; got != wantLong[cycle] {
			t.Fatalf("cycle %d: longBreak = %v, want %v", cycle, got, wantLong[cycle])
		}
		s.FinishBreak()
	}
}

func TestSessionDoublePoints(t *testing.T) {
	s, _ := newTestSession(t)
	s.Ledger.Award(100)
	spent := 0
	s.Inventory.Purchase(ItemDoublePoints, alwaysSpend(&spent))
	s.Inventory.UseConsumable(ItemDoublePoints)

	before := s.Ledger.Total
	s.StartFocus("t")
	runFocus(s)

	res := s.LastFocus()
	if !res.Doubled || res.Points != 50 {
		t.Fatalf("expected doubled 50 points, got %+v", res)
	}
	if s.Ledger.Total != before+50 {
		t.Fatalf("expected +50 points, got %d", s.Ledger.Total-before)
	}

	// Exactly one use consumed.
	e := s.Inventory.ActiveEffectOf(EffectDoublePoints)
	if e == nil || e.RemainingUses != 9 {
		t.Fatalf("expected 9 uses left, got %+v", e)
	}
}

func TestSessionBreakExtension(t *testing.T) {
	s, _ := newTestSession(t)
	spent := 0
	s.Inventory.Purchase(ItemBreakExtender, alwaysSpend(&spent))
	s.Inventory.UseConsumable(ItemBreakExtender)

	s.StartFocus("t")
	runFocus(s)

	res := s.LastFocus()
	if !res.Extended {
		t.Fatal("break should be extended")
	}
	// 5 min short break + 2 min extension.
	if res.BreakMinutes != 7 {
		t.Fatalf("expected 7 min break, got %d", res.BreakMinutes)
	}
	if s.Timer.Remaining != 7*60 {
		t.Fatalf("timer should run the extended break, got %d s", s.Timer.Remaining)
	}

	e := s.Inventory.ActiveEffectOf(EffectExtendBreak)
	if e == nil || e.RemainingUses != 4 {
		t.Fatalf("expected 4 uses left, got %+v", e)
	}
}

func TestSessionCancelAwardsNothing(t *testing.T) {
	s, rec := newTestSession(t)
	spent := 0
	s.Inventory.Purchase(ItemDoublePoints, alwaysSpend(&spent))
	s.Inventory.UseConsumable(ItemDoublePoints)

	s.StartFocus("t")
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	s.CancelFocus()

	if s.Ledger.Total != 0 {
		t.Fatalf("cancelled session must award nothing, got %d", s.Ledger.Total)
	}
	if e := s.Inventory.ActiveEffectOf(EffectDoublePoints); e == nil || e.RemainingUses != 10 {
		t.Fatalf("cancelled session must not consume effects, got %+v", e)
	}
	if s.Timer.Mode != ModeIdle || s.Timer.Cycles != 0 {
		t.Fatalf("cancel should return to idle without a cycle, got %+v", s.Timer)
	}
	if len(rec.pomodoros) != 0 {
		t.Fatal("cancelled session must not credit the task")
	}
	if rec.sessionEnds != 1 {
		t.Fatalf("expected one session-end callback, got %d", rec.sessionEnds)
	}
}

func TestSessionPauseResume(t *testing.T) {
	s, _ := newTestSession(t)
	s.StartFocus("t")

	for i := 0; i < 60; i++ {
		s.Tick()
	}
	s.Pause()
	remaining := s.Timer.Remaining

	for i := 0; i < 300; i++ {
		if s.Tick() != TickNone {
			t.Fatal("paused session must not progress")
		}
	}
	if s.Timer.Remaining != remaining {
		t.Fatal("pause must freeze the countdown")
	}

	s.Resume()
	for i := 0; i < remaining-1; i++ {
		s.Tick()
	}
	if s.Timer.Remaining != 1 {
		t.Fatalf("expected 1 s left, got %d", s.Timer.Remaining)
	}
	if ev := s.Tick(); ev != TickFocusDone {
		t.Fatalf("expected focus completion, got %v", ev)
	}
}

func TestSessionBreakCompletion(t *testing.T) {
	s, rec := newTestSession(t)
	s.StartFocus("t")
	runFocus(s)

	if ev := runFocus(s); ev != TickBreakDone {
		t.Fatalf("expected break completion, got %v", ev)
	}
	if !s.Timer.Done() {
		t.Fatal("break timer should be done")
	}
	if len(rec.notices) != 2 {
		t.Fatalf("expected focus + break notices, got %v", rec.notices)
	}
	// Break completion awards nothing extra.
	if s.Ledger.Total != 25 {
		t.Fatalf("break must not award points, got %d", s.Ledger.Total)
	}
}

func TestSessionTimeBankDraw(t *testing.T) {
	s, _ := newTestSession(t)
	s.Inventory.AddToTimeBank(12)

	s.StartFocus("t")
	runFocus(s) // now in a 5-min break

	before := s.Timer.Remaining
	added := s.DrawFromTimeBank()
	if added != MaxBankDraw {
		t.Fatalf("expected a %d-min draw, got %d", MaxBankDraw, added)
	}
	if s.Timer.Remaining != before+MaxBankDraw*60 {
		t.Fatalf("break not extended, got %d s", s.Timer.Remaining)
	}
	if s.Inventory.TimeBank != 12-MaxBankDraw {
		t.Fatalf("bank should shrink, got %d", s.Inventory.TimeBank)
	}

	// A second draw takes what is left.
	if added = s.DrawFromTimeBank(); added != 5 {
		t.Fatalf("expected 5-min draw, got %d", added)
	}
	if added = s.DrawFromTimeBank(); added != 2 {
		t.Fatalf("expected final 2-min draw, got %d", added)
	}
	if s.DrawFromTimeBank() != 0 {
		t.Fatal("empty bank must refuse")
	}
}

func TestSessionTimeBankDrawOutsideBreak(t *testing.T) {
	s, _ := newTestSession(t)
	s.Inventory.AddToTimeBank(10)

	if s.DrawFromTimeBank() != 0 {
		t.Fatal("draw with no break running must refuse")
	}
	s.StartFocus("t")
	if s.DrawFromTimeBank() != 0 {
		t.Fatal("draw during focus must refuse")
	}
	if s.Inventory.TimeBank != 10 {
		t.Fatalf("refused draws must not mutate, got %d", s.Inventory.TimeBank)
	}
}

func TestSessionFinishBreakBanksUnusedTime(t *testing.T) {
	s, rec := newTestSession(t)
	spent := 0
	s.Inventory.Purchase(ItemTimeBank, alwaysSpend(&spent))

	s.StartFocus("t")
	runFocus(s) // 5-min break running

	// Skip immediately: 5 unused minutes go to the bank.
	s.FinishBreak()
	if s.Inventory.TimeBank != 5 {
		t.Fatalf("expected 5 banked minutes, got %d", s.Inventory.TimeBank)
	}
	if s.Timer.Mode != ModeIdle {
		t.Fatalf("expected idle after finish, got %v", s.Timer.Mode)
	}
	if rec.sessionEnds != 1 {
		t.Fatalf("expected one session-end callback, got %d", rec.sessionEnds)
	}
}

func TestSessionFinishBreakWithoutBankItem(t *testing.T) {
	s, _ := newTestSession(t)
	s.StartFocus("t")
	runFocus(s)

	s.FinishBreak()
	if s.Inventory.TimeBank != 0 {
		t.Fatalf("no bank item, nothing banked; got %d", s.Inventory.TimeBank)
	}
}

func TestSessionNotificationsRespectSettings(t *testing.T) {
	s, rec := newTestSession(t)
	s.Settings.NotificationsEnabled = false
	s.Settings.SoundEnabled = false

	s.StartFocus("t")
	runFocus(s)

	if len(rec.notices) != 0 || rec.sounds != 0 {
		t.Fatalf("disabled notifications still fired: %+v", rec)
	}
	// The title flash is unconditional.
	if len(rec.flashes) != 1 {
		t.Fatalf("expected one title flash, got %v", rec.flashes)
	}
}
