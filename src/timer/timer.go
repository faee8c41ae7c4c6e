package timer

import (
	"log/slog"
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Timer sends on timeout each time the timer fires, and is started or stopped
// through action. It returns when action is closed.
func Timer(duration time.Duration, timeout chan<- bool, action <-chan TimerAction) {
	t := time.NewTimer(duration)
	t.Stop()
	for {
		select {
		case a, ok := <-action:
			if !ok {
				t.Stop()
				return
			}
			switch a {
			case Start:
				resetTimer(t, duration)
			case Stop:
				t.Stop()
			}
		case <-t.C:
			slog.Debug("Timer timed out")
			timeout <- true
		}
	}
}

// Init starts a Timer goroutine and returns its channels.
func Init(duration time.Duration) (<-chan bool, chan<- TimerAction) {
	timeout := make(chan bool)
	action := make(chan TimerAction)
	go Timer(duration, timeout, action)
	return timeout, action
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, duration time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(duration)
}
