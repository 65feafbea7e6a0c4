package content

import "sync/atomic"

// Latest hands out a token per fetch attempt and reports whether a
// token still belongs to the newest attempt.
//
// The pipeline itself doesn't de-duplicate in-flight requests; a
// screen that refreshes while an earlier fetch is outstanding can use
// this to drop the stale result instead of letting the slower
// response win.
type Latest struct {
	n atomic.Uint64
}

// Begin marks a new attempt and returns its token.
func (l *Latest) Begin() uint64 {
	return l.n.Add(1)
}

// Current reports whether token belongs to the most recent attempt.
func (l *Latest) Current(token uint64) bool {
	return l.n.Load() == token
}
