package engine

import "time"

const dateLayout = "2006-01-02"

// Ledger tracks tomato points. Total never goes negative: Spend is the
// single gate and refuses rather than clamps. EarnedToday rolls over when
// the stored date differs from the current one.
type Ledger struct {
	Total          int    `json:"total"`
	EarnedToday    int    `json:"earnedToday"`
	LastEarnedDate string `json:"lastEarnedDate"`

	now func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

func (l *Ledger) today() string {
	if l.now == nil {
		l.now = time.Now
	}
	return l.now().Format(dateLayout)
}

// Award credits points. On the first award of a new day, EarnedToday
// becomes the awarded amount instead of accumulating across days.
func (l *Ledger) Award(points int) {
	if points <= 0 {
		return
	}
	today := l.today()
	if l.LastEarnedDate != today {
		l.EarnedToday = points
	} else {
		l.EarnedToday += points
	}
	l.LastEarnedDate = today
	l.Total += points
}

// Spend debits points iff the balance covers them. On failure nothing
// changes.
func (l *Ledger) Spend(points int) bool {
	if points <= 0 {
		return false
	}
	if l.Total < points {
		return false
	}
	l.Total -= points
	return true
}

// CheckAndResetDaily zeroes EarnedToday once per calendar-day transition.
// Total is untouched. Safe to call any number of times; intended to run on
// startup rather than per tick.
func (l *Ledger) CheckAndResetDaily() {
	today := l.today()
	if l.LastEarnedDate != today {
		l.EarnedToday = 0
		l.LastEarnedDate = today
	}
}
