package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// ErrStale is returned by Load when a newer fetch was started while this one
// was in flight, or when the server answered with an older generation than
// the board already shown. The result was dropped.
var ErrStale = errors.New("client: stale calendar response")

// BoardFetcher loads one calendar page. Client.Board and Client.MyBoard
// both satisfy it.
type BoardFetcher func(ctx context.Context, date time.Time, view calendar.Granularity) (*ports.Board, error)

// CalendarView keeps a reference date, a granularity and the last board
// fetched for them. Overlapping loads are allowed; only the latest one is
// applied.
type CalendarView struct {
	fetch BoardFetcher
	gen   calendar.Generation

	mu        sync.Mutex
	date      time.Time
	view      calendar.Granularity
	board     *ports.Board
	serverGen uint64
}

func NewCalendarView(fetch BoardFetcher, date time.Time, view calendar.Granularity) *CalendarView {
	if view == "" {
		view = calendar.Day
	}
	return &CalendarView{fetch: fetch, date: calendar.Truncate(date), view: view}
}

// Position returns the current reference date and granularity.
func (v *CalendarView) Position() (time.Time, calendar.Granularity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.date, v.view
}

// Board returns the last applied board, nil before the first load.
func (v *CalendarView) Board() *ports.Board {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board
}

// Load fetches the board for the current position.
func (v *CalendarView) Load(ctx context.Context) (*ports.Board, error) {
	tok := v.gen.Next()
	date, view := v.Position()

	board, err := v.fetch(ctx, date, view)
	if !v.gen.IsCurrent(tok) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// A server generation of 0 means the server could not count; accept it.
	if board.Generation != 0 && board.Generation < v.serverGen {
		return nil, ErrStale
	}
	if board.Generation > v.serverGen {
		v.serverGen = board.Generation
	}
	v.board = board
	return board, nil
}

// Next moves one view step forward and reloads.
func (v *CalendarView) Next(ctx context.Context) (*ports.Board, error) {
	return v.step(ctx, calendar.Next)
}

// Previous moves one view step back and reloads.
func (v *CalendarView) Previous(ctx context.Context) (*ports.Board, error) {
	return v.step(ctx, calendar.Previous)
}

// SetView switches granularity, keeping the reference date, and reloads.
func (v *CalendarView) SetView(ctx context.Context, view calendar.Granularity) (*ports.Board, error) {
	v.mu.Lock()
	v.view = view
	v.mu.Unlock()
	return v.Load(ctx)
}

// GoTo jumps to date and reloads.
func (v *CalendarView) GoTo(ctx context.Context, date time.Time) (*ports.Board, error) {
	v.mu.Lock()
	v.date = calendar.Truncate(date)
	v.mu.Unlock()
	return v.Load(ctx)
}

func (v *CalendarView) step(ctx context.Context, dir calendar.Direction) (*ports.Board, error) {
	v.mu.Lock()
	v.date = calendar.Navigate(v.date, v.view, dir)
	v.mu.Unlock()
	return v.Load(ctx)
}
