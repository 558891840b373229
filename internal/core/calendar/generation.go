package calendar

import "sync/atomic"

// Generation hands out monotonically increasing fetch tokens. A view takes a
// token before every fetch and applies the result only if the token is still
// the latest one, so a slow response can never overwrite a newer one.
type Generation struct {
	n atomic.Uint64
}

// Next issues a new token, invalidating every earlier one.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// Current returns the latest issued token, or 0 if none.
func (g *Generation) Current() uint64 {
	return g.n.Load()
}

// IsCurrent reports whether tok is the latest issued token.
func (g *Generation) IsCurrent(tok uint64) bool {
	return tok != 0 && tok == g.n.Load()
}
