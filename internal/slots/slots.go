// Package slots is the tomato slot machine. It owns no state beyond its
// random source: bets and winnings flow through the caller's spend and
// award functions, so the points ledger stays the single authority.
package slots

import (
	"errors"
	"math/rand"
)

type Symbol string

const (
	Tomato  Symbol = "🍅"
	Cherry  Symbol = "🍒"
	Lemon   Symbol = "🍋"
	Orange  Symbol = "🍊"
	Grape   Symbol = "🍇"
	Star    Symbol = "⭐"
	Diamond Symbol = "💎"
)

// Symbols in payout order, rarest last.
var Symbols = []Symbol{Tomato, Cherry, Lemon, Orange, Grape, Star, Diamond}

var (
	ErrMinBet            = errors.New("minimum bet is 1 tomato point")
	ErrInsufficientFunds = errors.New("not enough tomato points")
)

// Result is the outcome of one spin.
type Result struct {
	Reels [3]Symbol
	Bet   int
	Win   int // 0 on a miss
}

// Machine generates spin outcomes. The random source is injectable so
// tests can fix the sequence.
type Machine struct {
	rng *rand.Rand
}

func New(src rand.Source) *Machine {
	return &Machine{rng: rand.New(src)}
}

// Payout returns the winnings for a reel line at the given bet.
func Payout(reels [3]Symbol, bet int) int {
	a, b, c := reels[0], reels[1], reels[2]

	if a == b && b == c {
		switch a {
		case Diamond:
			return bet * 50
		case Star:
			return bet * 20
		case Tomato:
			return bet * 10
		case Grape:
			return bet * 8
		case Orange:
			return bet * 6
		case Lemon:
			return bet * 4
		case Cherry:
			return bet * 3
		default:
			return bet * 2
		}
	}

	if a == b || b == c || a == c {
		match := a
		if b == c {
			match = b
		}
		switch match {
		case Diamond:
			return bet * 5
		case Star:
			return bet * 3
		case Tomato:
			return bet * 2
		default:
			return bet * 3 / 2
		}
	}

	return 0
}

// Spin places the bet through spend, draws a weighted outcome, and awards
// any winnings. A refused spend leaves everything untouched.
func (m *Machine) Spin(bet int, spend func(points int) bool, award func(points int)) (Result, error) {
	if bet < 1 {
		return Result{}, ErrMinBet
	}
	if !spend(bet) {
		return Result{}, ErrInsufficientFunds
	}

	reels := m.draw()
	res := Result{Reels: reels, Bet: bet, Win: Payout(reels, bet)}
	if res.Win > 0 {
		award(res.Win)
	}
	return res, nil
}

// draw picks the final reels from the weighted outcome table: 2% triple
// diamonds, 3% triple stars, 5% triple tomatoes, 10% another triple, 20% a
// pair, 60% a guaranteed miss.
func (m *Machine) draw() [3]Symbol {
	r := m.rng.Float64()
	switch {
	case r < 0.02:
		return [3]Symbol{Diamond, Diamond, Diamond}
	case r < 0.05:
		return [3]Symbol{Star, Star, Star}
	case r < 0.10:
		return [3]Symbol{Tomato, Tomato, Tomato}
	case r < 0.20:
		// Any triple except the top two tiers.
		s := Symbols[m.rng.Intn(len(Symbols)-2)]
		return [3]Symbol{s, s, s}
	case r < 0.40:
		s := Symbols[m.rng.Intn(len(Symbols))]
		other := Symbols[m.rng.Intn(len(Symbols))]
		return [3]Symbol{s, s, other}
	default:
		for {
			reels := [3]Symbol{
				Symbols[m.rng.Intn(len(Symbols))],
				Symbols[m.rng.Intn(len(Symbols))],
				Symbols[m.rng.Intn(len(Symbols))],
			}
			if reels[0] != reels[1] && reels[1] != reels[2] && reels[0] != reels[2] {
				return reels
			}
		}
	}
}

// RandomLine returns uniformly random reels for spin animation frames.
func (m *Machine) RandomLine() [3]Symbol {
	return [3]Symbol{
		Symbols[m.rng.Intn(len(Symbols))],
		Symbols[m.rng.Intn(len(Symbols))],
		Symbols[m.rng.Intn(len(Symbols))],
	}
}
