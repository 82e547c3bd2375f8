// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"errors"

	"github.com/gogpu/sketch/internal/serial"
)

// Session errors.
var (
	// ErrClosed is returned by Session methods after Close.
	ErrClosed = errors.New("sketch: session closed")

	// ErrToolNotEditable is returned by UpdateTool when the session's tool
	// provider is not a *ToolState.
	ErrToolNotEditable = errors.New("sketch: session tool is not a ToolState")
)

// Session owns a Stack and its Router on one goroutine and serializes all
// access to them, so hosts may deliver events and commands from any
// goroutine. Events are applied in the order they are submitted.
//
// Decoding for placement and export runs outside the owner goroutine;
// only the snapshot and the final mutation are serialized.
//
// Session is safe for concurrent use.
type Session struct {
	loop   *serial.Loop
	stack  *Stack
	router *Router
	comp   *Compositor
	recon  *Reconciler
}

// NewSession creates a session with a new stack, router and compositor
// built from opts. A nil tool uses a default ToolState.
func NewSession(tool Tool, opts ...Option) *Session {
	stack := NewStack(opts...)
	s := &Session{
		loop:   serial.New(0),
		stack:  stack,
		router: NewRouter(stack, tool),
		comp:   NewCompositor(opts...),
	}
	s.recon = NewReconciler(func(w, h float64) {
		_ = s.loop.Post(func() { s.stack.Resize(w, h) })
	}, opts...)
	return s
}

// Tool returns the tool provider strokes read from. Changing it directly
// affects events already queued; use UpdateTool to keep submission order.
func (s *Session) Tool() Tool {
	return s.router.Tool()
}

// UpdateTool queues fn to change the tool after every event submitted
// before it, and before every event submitted after it. It does not wait
// for fn to run.
func (s *Session) UpdateTool(fn func(*ToolState)) error {
	ts, ok := s.router.Tool().(*ToolState)
	if !ok {
		return ErrToolNotEditable
	}
	if fn == nil {
		return nil
	}
	return s.post(func() { fn(ts) })
}

// Dispatch queues an input event. It does not wait for the event to be
// handled.
func (s *Session) Dispatch(ev Event) error {
	return s.post(func() { s.router.Dispatch(ev) })
}

// Do runs fn with exclusive access to the stack and waits for it. fn must
// not retain the stack or any layer or image after returning.
func (s *Session) Do(ctx context.Context, fn func(*Stack)) error {
	return s.call(ctx, func() { fn(s.stack) })
}

// State returns the router's stroke state.
func (s *Session) State(ctx context.Context) (RouterState, error) {
	var st RouterState
	if err := s.call(ctx, func() { st = s.router.State() }); err != nil {
		return RouterIdle, err
	}
	return st, nil
}

// View returns a projection of the stack.
func (s *Session) View(ctx context.Context) (StackView, error) {
	var v StackView
	if err := s.call(ctx, func() { v = s.stack.View() }); err != nil {
		return StackView{}, err
	}
	return v, nil
}

// Place decodes src and places it on the layer that is active once the
// decode has finished. See Stack.PlaceImage for the placement rules.
func (s *Session) Place(ctx context.Context, src ImageSource, at *Point) (ImageID, error) {
	size, err := naturalSize(ctx, src)
	if err != nil {
		return 0, err
	}
	var id ImageID
	if err := s.call(ctx, func() { id = s.stack.place(src, size, at).id }); err != nil {
		return 0, err
	}
	return id, nil
}

// Export snapshots the stack and delivers the composited PNG to sink.
func (s *Session) Export(ctx context.Context, sink ExportSink) (ExportReport, error) {
	var plan *Plan
	if err := s.call(ctx, func() { plan = s.stack.Snapshot() }); err != nil {
		return ExportReport{}, err
	}
	return s.comp.Deliver(ctx, plan, sink)
}

// NotifyResize reports a new measured painting-area size. The resize is
// applied once notifications settle.
func (s *Session) NotifyResize(width, height float64) {
	s.recon.Notify(width, height)
}

// FlushResize applies a pending resize now and waits for it. It reports
// whether a resize was pending.
func (s *Session) FlushResize(ctx context.Context) (bool, error) {
	flushed := s.recon.Flush()
	// The resize is posted; a round trip orders it before returning.
	if err := s.call(ctx, func() {}); err != nil {
		return flushed, err
	}
	return flushed, nil
}

// Close drops a pending resize, runs queued events and stops the owner
// goroutine. Close is safe to call multiple times.
func (s *Session) Close() {
	s.recon.Stop()
	s.loop.Close()
}

func (s *Session) post(fn func()) error {
	if err := s.loop.Post(fn); err != nil {
		return ErrClosed
	}
	return nil
}

func (s *Session) call(ctx context.Context, fn func()) error {
	err := s.loop.Call(ctx, fn)
	if errors.Is(err, serial.ErrClosed) {
		return ErrClosed
	}
	return err
}
