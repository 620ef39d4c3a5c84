package freegroup

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// PresentationStream is a stage in a pipeline of presentations.
// Ownership of each PresentationState travels through Outlet.
type PresentationStream struct {
	Outlet chan PresentationState

	errMu sync.Mutex
	err   error
}

func NewPresentationStream() *PresentationStream {
	stream := &PresentationStream{
		Outlet: make(chan PresentationState),
	}
	return stream
}

func newStage() *PresentationStream {
	return &PresentationStream{
		Outlet: make(chan PresentationState, 1),
	}
}

func StreamPresentation(P PresentationState) *PresentationStream {
	next := NewPresentationStream()

	go func() {
		next.Outlet <- P.MakeCopy()
		next.Close()
	}()

	return next
}

func (stream *PresentationStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// SetErr records the first error that stopped the producer of this stream.
func (stream *PresentationStream) SetErr(err error) {
	stream.errMu.Lock()
	if stream.err == nil {
		stream.err = err
	}
	stream.errMu.Unlock()
}

// Err returns the error that stopped the producer, if any.
// It is only meaningful once Outlet has been drained.
func (stream *PresentationStream) Err() error {
	stream.errMu.Lock()
	defer stream.errMu.Unlock()
	return stream.err
}

func (stream *PresentationStream) PushPresentation(P PresentationState) {
	stream.Outlet <- P.MakeCopy()
}

func (stream *PresentationStream) PullPresentation() PresentationState {
	P := <-stream.Outlet
	return P
}

func (stream *PresentationStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes each presentation to out as "label,count,presentation" and passes it along.
func (stream *PresentationStream) Print(
	out io.WriteCloser,
	label string) *PresentationStream {

	next := newStage()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for P := range stream.Outlet {
			if len(label) > 0 {
				buf.WriteString(label)
			}
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			P.WriteAsString(&buf)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- P
		}
		out.Close()
		next.SetErr(stream.Err())
		next.Close()
	}()

	return next
}

// AddTo passes along only the presentations whose signature was newly added to target.
func (stream *PresentationStream) AddTo(target SignatureSet) *PresentationStream {
	next := newStage()

	go func() {
		for P := range stream.Outlet {
			wasAdded, err := target.TryAdd(P.Signature())
			if err != nil {
				next.SetErr(err)
				continue
			}
			if wasAdded {
				next.Outlet <- P
			}
		}
		next.SetErr(stream.Err())
		next.Close()
	}()

	return next
}

// SelectLength passes along only the presentations with total length in [minLen, maxLen].
// A maxLen <= 0 denotes no upper bound.
func (stream *PresentationStream) SelectLength(minLen, maxLen int) *PresentationStream {
	next := newStage()

	go func() {
		for P := range stream.Outlet {
			N := P.Len()
			if N >= minLen && (maxLen <= 0 || N <= maxLen) {
				next.Outlet <- P
			}
		}
		next.SetErr(stream.Err())
		next.Close()
	}()

	return next
}
