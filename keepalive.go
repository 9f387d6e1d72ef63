package mqtt

import "time"

// keepalive owns the two timers the strand loop consults on every select
// iteration: one that fires PINGREQ after keepAlive of outbound silence,
// one that declares the connection dead after 1.5x keepAlive of inbound
// silence. Both timers are scheduled on the strand loop's own select, so
// their firing is just another event it observes — no locking needed.
type keepalive struct {
	interval time.Duration

	pingTimer    *time.Timer
	timeoutTimer *time.Timer
}

func newKeepalive(interval time.Duration) *keepalive {
	if interval <= 0 {
		// keep_alive=0 means "no keep-alive"; timers that never fire.
		return &keepalive{interval: 0}
	}
	return &keepalive{
		interval:     interval,
		pingTimer:    time.NewTimer(interval),
		timeoutTimer: time.NewTimer(interval + interval/2),
	}
}

func (k *keepalive) pingChan() <-chan time.Time {
	if k.pingTimer == nil {
		return nil
	}
	return k.pingTimer.C
}

func (k *keepalive) timeoutChan() <-chan time.Time {
	if k.timeoutTimer == nil {
		return nil
	}
	return k.timeoutTimer.C
}

// resetOnOutbound is called whenever the Endpoint queues any outbound
// packet; it postpones the next PINGREQ.
func (k *keepalive) resetOnOutbound() {
	if k.pingTimer == nil {
		return
	}
	if !k.pingTimer.Stop() {
		drain(k.pingTimer.C)
	}
	k.pingTimer.Reset(k.interval)
}

// resetOnInbound is called whenever any packet is received; it postpones
// the keep-alive timeout.
func (k *keepalive) resetOnInbound() {
	if k.timeoutTimer == nil {
		return
	}
	if !k.timeoutTimer.Stop() {
		drain(k.timeoutTimer.C)
	}
	k.timeoutTimer.Reset(k.interval + k.interval/2)
}

func (k *keepalive) stop() {
	if k.pingTimer != nil {
		k.pingTimer.Stop()
	}
	if k.timeoutTimer != nil {
		k.timeoutTimer.Stop()
	}
}

func drain(c <-chan time.Time) {
	select {
	case <-c:
	default:
	}
}
