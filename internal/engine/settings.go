package engine

// Settings are the user-tunable durations and feature flags. Durations are
// minutes, always positive once sanitized.
type Settings struct {
	FocusDuration        int  `json:"focusDuration"`
	ShortBreakDuration   int  `json:"shortBreakDuration"`
	LongBreakDuration    int  `json:"longBreakDuration"`
	CyclesForLongBreak   int  `json:"cyclesForLongBreak"`
	SoundEnabled         bool `json:"soundEnabled"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
	FortuneTigerMode     bool `json:"fortuneTigerMode"`
	StoreMode            bool `json:"storeMode"`
}

func DefaultSettings() Settings {
	return Settings{
		FocusDuration:        25,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		CyclesForLongBreak:   4,
		SoundEnabled:         true,
		NotificationsEnabled: true,
		FortuneTigerMode:     false,
		StoreMode:            true,
	}
}

// Sanitize clamps out-of-range numbers to the defaults. The engine assumes
// pre-validated positive integers; this is the boundary that guarantees it.
func (s *Settings) Sanitize() {
	def := DefaultSettings()
	if s.FocusDuration < 1 {
		s.FocusDuration = def.FocusDuration
	}
	if s.ShortBreakDuration < 1 {
		s.ShortBreakDuration = def.ShortBreakDuration
	}
	if s.LongBreakDuration < 1 {
		s.LongBreakDuration = def.LongBreakDuration
	}
	if s.CyclesForLongBreak < 1 {
		s.CyclesForLongBreak = def.CyclesForLongBreak
	}
}
