package terminal

import "sync/atomic"

// SignalFlags carries asynchronous notifications into the polling thread.
// Writers only set flags and wake; all interpretation happens on the next poll.
type SignalFlags struct {
	resizePending atomic.Bool
	hangupRaised  atomic.Bool
	wake          chan struct{}
}

// NewSignalFlags creates an empty flag set
func NewSignalFlags() *SignalFlags {
	return &SignalFlags{wake: make(chan struct{}, 1)}
}

// ProcessSignals is the process-wide flag set fed by StartSignalBridge
var ProcessSignals = NewSignalFlags()

// RaiseResize records a terminal resize and wakes the event loop
func (f *SignalFlags) RaiseResize() {
	f.resizePending.Store(true)
	f.Wake()
}

// TakeResize reports and clears a pending resize
func (f *SignalFlags) TakeResize() bool {
	return f.resizePending.Swap(false)
}

// RaiseHangup records loss of the controlling terminal. It is never cleared.
func (f *SignalFlags) RaiseHangup() {
	f.hangupRaised.Store(true)
	f.Wake()
}

// HangupRaised reports whether the controlling terminal went away
func (f *SignalFlags) HangupRaised() bool {
	return f.hangupRaised.Load()
}

// Wake nudges whoever waits on Wakeups without blocking
func (f *SignalFlags) Wake() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Wakeups fires after any raise or explicit Wake
func (f *SignalFlags) Wakeups() <-chan struct{} {
	return f.wake
}
