package main

import (
	"sync/atomic"
	"testing"
	"time"
)

type stopRecorder struct {
	loopDone *atomic.Bool
	stopped  atomic.Bool
	early    atomic.Bool
}

func (r *stopRecorder) Stop() {
	if !r.loopDone.Load() {
		r.early.Store(true)
	}
	r.stopped.Store(true)
}

func TestStopAfterWaitsForUpdateLoop(t *testing.T) {
	var loopDone atomic.Bool
	rec := &stopRecorder{loopDone: &loopDone}

	done := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		loopDone.Store(true)
		close(done)
	}()

	stopAfter(done, rec)

	if !rec.stopped.Load() {
		t.Fatal("expected Stop to be called")
	}
	if rec.early.Load() {
		t.Fatal("Stop was called before the update loop returned")
	}
}
