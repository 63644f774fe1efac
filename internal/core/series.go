package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Track selects which cumulative series to build.
type Track string

const (
	// TrackTotal accumulates everything except savings transfers.
	TrackTotal Track = "total"
	// TrackSavings accumulates savings transfers only.
	TrackSavings Track = "savings"
)

// WindowKind distinguishes the named dashboard windows from explicit ranges.
type WindowKind int

const (
	WindowAll WindowKind = iota
	WindowLastMonth
	WindowLastWeek
	WindowRange
)

// Window is a time filter over a ledger. Named windows are anchored to the
// reference instant passed to the derivation; explicit ranges are half-open
// [Start, End).
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// AllTime admits every transaction ("Todo").
func AllTime() Window { return Window{Kind: WindowAll} }

// LastMonth admits transactions from one calendar month before the
// reference instant, boundary included ("Último mes").
func LastMonth() Window { return Window{Kind: WindowLastMonth} }

// LastWeek admits transactions from seven days before the reference
// instant, boundary included ("Última semana").
func LastWeek() Window { return Window{Kind: WindowLastWeek} }

// Between admits transactions in the half-open range [start, end).
func Between(start, end time.Time) Window {
	return Window{Kind: WindowRange, Start: start, End: end}
}

func (w Window) contains(ts, now time.Time) bool {
	switch w.Kind {
	case WindowLastMonth:
		return !ts.Before(now.AddDate(0, -1, 0))
	case WindowLastWeek:
		return !ts.Before(now.AddDate(0, 0, -7))
	case WindowRange:
		return !ts.Before(w.Start) && ts.Before(w.End)
	default:
		return true
	}
}

// Point is one sample of a cumulative balance series.
type Point struct {
	Timestamp  time.Time       `json:"timestamp"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Series builds the cumulative balance series for a track. The running sum
// covers the full masked ledger and the window is applied afterwards, so a
// windowed view still carries the true balance accumulated before the
// window opens instead of restarting from zero.
//
// The total track keeps zero-contribution rows (a savings transfer still
// yields a flat point); the savings track drops them, since a row that
// moves no money into savings is not savings activity.
func Series(l Ledger, track Track, w Window, now time.Time) []Point {
	points := make([]Point, 0, len(l))
	running := decimal.Zero

	for _, t := range l {
		amt := t.Amount
		switch track {
		case TrackSavings:
			if t.Type != TypeSavings {
				amt = decimal.Zero
			}
			if amt.IsZero() {
				continue
			}
		default:
			if t.Type == TypeSavings {
				amt = decimal.Zero
			}
		}
		running = running.Add(amt)
		points = append(points, Point{Timestamp: t.Timestamp, Cumulative: running})
	}

	if w.Kind == WindowAll {
		return points
	}
	windowed := make([]Point, 0, len(points))
	for _, p := range points {
		if w.contains(p.Timestamp, now) {
			windowed = append(windowed, p)
		}
	}
	return windowed
}
