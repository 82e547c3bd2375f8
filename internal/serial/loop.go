// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package serial runs work items one at a time, in submission order, on a
// single owner goroutine.
package serial

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed loop.
var ErrClosed = errors.New("serial: loop closed")

// Loop is a single-goroutine FIFO executor. State touched only from work
// items needs no locking.
//
// Thread safety: Loop is safe for concurrent use.
type Loop struct {
	// queue holds pending work in submission order.
	queue chan func()

	// done signals the goroutine to stop.
	done chan struct{}

	// exited is closed when the goroutine has finished draining.
	exited chan struct{}

	// running indicates whether the loop is accepting work.
	running atomic.Bool
}

// New starts a loop with the given queue capacity. A capacity below 1
// uses 64.
func New(capacity int) *Loop {
	if capacity < 1 {
		capacity = 64
	}
	l := &Loop{
		queue:  make(chan func(), capacity),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	l.running.Store(true)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.exited)
	for {
		select {
		case <-l.done:
			l.drain()
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// drain executes the work still queued at close.
func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}

// Post queues fn without waiting for it. It blocks while the queue is
// full and returns ErrClosed once the loop is closed.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if !l.running.Load() {
		return ErrClosed
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Call runs fn on the loop and waits for it to return. If ctx ends first,
// Call returns ctx.Err() and fn is skipped if it has not started.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	var canceled atomic.Bool
	err := l.Post(func() {
		defer close(ran)
		if canceled.Load() {
			return
		}
		fn()
	})
	if err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		canceled.Store(true)
		return ctx.Err()
	case <-l.exited:
		select {
		case <-ran:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting work, runs what is already queued and waits for
// the goroutine to exit. Close is safe to call multiple times. It must not
// be called from a work item.
func (l *Loop) Close() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.done)
	<-l.exited
}

// Running reports whether the loop accepts work.
func (l *Loop) Running() bool {
	return l.running.Load()
}
