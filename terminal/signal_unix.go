//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

// signalBridge forwards SIGWINCH and SIGHUP into a SignalFlags
type signalBridge struct {
	flags  *SignalFlags
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

// StartSignalBridge installs resize and hangup handling; the returned func uninstalls it
func StartSignalBridge(flags *SignalFlags) (stop func()) {
	b := &signalBridge{
		flags:  flags,
		sigCh:  make(chan os.Signal, 4),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	signal.Notify(b.sigCh, syscall.SIGWINCH, syscall.SIGHUP)
	go b.watchLoop()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(b.sigCh)
		close(b.stopCh)
		<-b.doneCh
	}
}

// watchLoop only stores flags; the poll side queries sizes and rebuilds surfaces
func (b *signalBridge) watchLoop() {
	defer close(b.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSIGNAL BRIDGE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-b.stopCh:
			return
		case sig := <-b.sigCh:
			switch sig {
			case syscall.SIGWINCH:
				b.flags.RaiseResize()
			case syscall.SIGHUP:
				b.flags.RaiseHangup()
			}
		}
	}
}
