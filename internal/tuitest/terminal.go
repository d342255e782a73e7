package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries are the capability checks termenv and bubbletea send on
// startup. Without a reply they block until their own timeout.
var terminalQueries = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderMaxPending = 256
	responderTail       = 64
)

// responder answers terminal queries found in the program's output.
type responder struct {
	w       io.Writer
	pending []byte
}

func newResponder(w io.Writer) *responder {
	return &responder{w: w, pending: make([]byte, 0, responderMaxPending)}
}

func (r *responder) Observe(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for r.answerNext() {
	}
	// A query may straddle two reads, so keep a short tail.
	if len(r.pending) > responderMaxPending {
		r.pending = append(r.pending[:0], r.pending[len(r.pending)-responderTail:]...)
	}
}

// answerNext replies to the earliest pending query and reports whether one
// was found.
func (r *responder) answerNext() bool {
	first, which := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(r.pending, q.query)
		if idx >= 0 && (first < 0 || idx < first) {
			first, which = idx, i
		}
	}
	if which < 0 {
		return false
	}
	q := terminalQueries[which]
	r.pending = r.pending[first+len(q.query):]
	_, _ = r.w.Write(q.reply)
	return true
}
