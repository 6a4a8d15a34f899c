package engine

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.FocusDuration != 25 || s.ShortBreakDuration != 5 || s.LongBreakDuration != 15 {
		t.Fatalf("unexpected default durations: %+v", s)
	}
	if s.CyclesForLongBreak != 4 {
		t.Fatalf("expected 4 cycles, got %d", s.CyclesForLongBreak)
	}
	if !s.SoundEnabled || !s.NotificationsEnabled || !s.StoreMode {
		t.Fatalf("sound, notifications and store should default on: %+v", s)
	}
	if s.FortuneTigerMode {
		t.Fatal("slots should default off")
	}
}

func TestSanitizeRepairsDurations(t *testing.T) {
	s := Settings{FocusDuration: 0, ShortBreakDuration: -2, LongBreakDuration: 10, CyclesForLongBreak: 0}
	s.Sanitize()

	def := DefaultSettings()
	if s.FocusDuration != def.FocusDuration {
		t.Fatalf("focus not repaired: %d", s.FocusDuration)
	}
	if s.ShortBreakDuration != def.ShortBreakDuration {
		t.Fatalf("short break not repaired: %d", s.ShortBreakDuration)
	}
	if s.CyclesForLongBreak != def.CyclesForLongBreak {
		t.Fatalf("cycles not repaired: %d", s.CyclesForLongBreak)
	}
	// Valid values survive.
	if s.LongBreakDuration != 10 {
		t.Fatalf("valid long break clobbered: %d", s.LongBreakDuration)
	}
}

func TestSanitizeLeavesValidAlone(t *testing.T) {
	s := DefaultSettings()
	s.FocusDuration = 50
	before := s
	s.Sanitize()
	if s != before {
		t.Fatalf("sanitize changed valid settings: %+v", s)
	}
}
