// Package mqtt implements a client-side MQTT 3.1.1 / 5.0 protocol engine
// over an arbitrary byte-stream transport. It translates application
// publish/subscribe intent into wire-conformant packet sequences, tracks
// in-flight message state across QoS levels, and surfaces inbound
// messages and acknowledgements through per-packet-kind handler
// callbacks.
package mqtt

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-io/mqttendpoint/packet"
	"github.com/golang-io/mqttendpoint/transport"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Endpoint is a single MQTT client connection. One goroutine (the
// strand loop, run by serve) owns the Session and is the only goroutine
// that mutates it or invokes application handlers; every other
// goroutine (the caller, the read pump, the write pump) communicates
// with it exclusively by sending closures over cmdCh.
type Endpoint struct {
	adapter  transport.Adapter
	version  byte
	logger   *logrus.Logger
	metrics  *Metrics
	handlers *Handlers

	session *Session
	ka      *keepalive

	cmdCh   chan func()
	writeCh chan writeJob

	closed atomic.Bool
	doneCh chan struct{}

	connectOnce sync.Once
	connectRes  chan error
}

// NewEndpoint constructs an Endpoint bound to adapter, identified by
// clientID (an empty clientID is replaced by a UUID-derived one).
func NewEndpoint(adapter transport.Adapter, clientID string, opts ...Option) *Endpoint {
	o := newEndpointOptions(opts...)
	if clientID == "" {
		clientID = defaultClientID()
	}
	e := &Endpoint{
		adapter:  adapter,
		version:  o.version,
		logger:   o.logger,
		metrics:  o.metrics,
		handlers: o.handlers,
		session:  newSession(clientID, true),
		cmdCh:    make(chan func()),
		writeCh:  make(chan writeJob, 64),
		doneCh:   make(chan struct{}),
	}
	return e
}

// Handlers exposes the registered callback set for direct field
// assignment, as an alternative to WithHandlers at construction time.
// Must be called before Connect.
func (e *Endpoint) Handlers() *Handlers { return e.handlers }

// AcquireUniquePacketID reserves and returns an unused packet id. Safe to
// call from any goroutine; the Registry has its own internal locking
// independent of the strand.
func (e *Endpoint) AcquireUniquePacketID() (uint16, error) { return e.session.registry.AcquireUnique() }

// RegisterPacketID marks id in use, for explicit-id publishes (DUP
// replay). Safe to call from any goroutine.
func (e *Endpoint) RegisterPacketID(id uint16) error { return e.session.registry.Register(id) }

// ReleasePacketID frees id. Safe to call from any goroutine.
func (e *Endpoint) ReleasePacketID(id uint16) { e.session.registry.Release(id) }

// Connect sends CONNECT and blocks until CONNACK arrives, ctx is
// cancelled, or the transport fails. It is synchronous from the caller's
// goroutine: internally it starts the read pump and write pump, posts the
// CONNECT send to the strand, and waits for the strand to resolve
// connectRes once CONNACK is dispatched.
func (e *Endpoint) Connect(ctx context.Context, opts ConnectOptions) error {
	e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "clean_start": opts.CleanStart}).Info("mqtt: attempting to connect")

	var startErr error
	e.connectOnce.Do(func() {
		e.connectRes = make(chan error, 1)
		runCtx, cancel := context.WithCancel(context.Background())

		// The read pump, write pump and strand loop run for the lifetime
		// of the connection under one errgroup. None of them returns an
		// error: each stops once the Endpoint shuts down (doneCh closed),
		// and a background waiter cancels runCtx and calls shutdown once
		// all three have returned.
		var group errgroup.Group
		group.Go(func() error { e.serve(runCtx, opts.KeepAlive); return nil })
		group.Go(func() error { e.writePump(runCtx); return nil })
		group.Go(func() error { e.readPump(runCtx); return nil })
		go func() {
			_ = group.Wait()
			cancel()
			e.shutdown(nil)
		}()

		connect := &packet.CONNECT{
			FixedHeader: &packet.FixedHeader{Version: e.version, Kind: packet.KindConnect},
			CleanStart:  opts.CleanStart,
			KeepAlive:   uint16(opts.KeepAlive / time.Second),
			ClientID:    e.session.ClientID,
			Username:    opts.Username,
			Password:    opts.Password,
			Will:        opts.Will,
			Props:       opts.Properties,
		}
		e.session.CleanStart = opts.CleanStart
		if opts.CleanStart {
			e.session.reset()
		}

		select {
		case e.cmdCh <- func() { e.enqueueWrite(connect) }:
		case <-ctx.Done():
			startErr = ctx.Err()
			return
		case <-e.doneCh:
			startErr = &Error{Kind: KindOperationAborted, Detail: "endpoint closed before connect"}
			return
		}
	})
	if startErr != nil {
		e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "error": startErr}).Error("mqtt: connect failed before CONNECT could be sent")
		return startErr
	}

	var err error
	select {
	case err = <-e.connectRes:
	case <-ctx.Done():
		err = ctx.Err()
	case <-e.doneCh:
		err = &Error{Kind: KindOperationAborted, Detail: "endpoint closed while awaiting CONNACK"}
	}
	if err != nil {
		e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "error": err}).Error("mqtt: connect failed")
	} else {
		e.logger.WithField("client_id", e.session.ClientID).Info("mqtt: connected successfully")
	}
	return err
}

// Disconnect sends DISCONNECT (v5 carries reason) and closes the
// transport. Calling Disconnect on an already-closed Endpoint is a no-op.
func (e *Endpoint) Disconnect(ctx context.Context, reason packet.ReasonCode) error {
	if e.closed.Load() {
		return nil
	}
	e.logger.WithField("client_id", e.session.ClientID).Info("mqtt: attempting to disconnect")
	done := make(chan error, 1)
	cmd := func() {
		d := &packet.DISCONNECT{FixedHeader: &packet.FixedHeader{Version: e.version}, ReasonCode: reason}
		// Block the strand until the write pump has actually flushed
		// DISCONNECT, so Disconnect closing the transport can never race
		// ahead of it sitting unwritten in writeCh's buffer.
		ack := make(chan struct{})
		e.enqueueWriteJob(writeJob{pkt: d, ack: ack})
		<-ack
		done <- nil
	}
	select {
	case e.cmdCh <- cmd:
	case <-e.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
	e.shutdown(nil)
	return nil
}

// Publish sends PUBLISH. QoS0 is send-and-forget; QoS1/2 allocate a
// packet id and retain the packet in the Store until acknowledged.
func (e *Endpoint) Publish(topic string, payload packet.Buffer, qos uint8, retain bool, props *packet.Properties) (uint16, error) {
	var id uint16
	var err error
	if qos > 0 {
		id, err = e.AcquireUniquePacketID()
		if err != nil {
			return 0, err
		}
	}
	if pubErr := e.publishWithID(id, topic, payload, qos, retain, props, false); pubErr != nil {
		if qos > 0 {
			e.ReleasePacketID(id)
		}
		return 0, pubErr
	}
	return id, nil
}

// PublishWithID publishes using a caller-registered id, for DUP replay.
// The caller must have called RegisterPacketID(id) first.
func (e *Endpoint) PublishWithID(id uint16, topic string, payload packet.Buffer, qos uint8, retain bool) error {
	return e.publishWithID(id, topic, payload, qos, retain, nil, true)
}

func (e *Endpoint) publishWithID(id uint16, topic string, payload packet.Buffer, qos uint8, retain bool, props *packet.Properties, dup bool) error {
	pub := &packet.PUBLISH{
		FixedHeader: &packet.FixedHeader{Version: e.version, QoS: qos, Retain: b2u8(retain)},
		PacketID:    id,
		Message:     &packet.Message{Topic: topic, Payload: payload.Bytes()},
		Props:       props,
	}
	if dup {
		pub.Dup = 1
	}
	done := make(chan error, 1)
	cmd := func() {
		if qos > 0 {
			if err := e.session.store.InsertPublish(pub, time.Now()); err != nil {
				done <- err
				return
			}
		}
		e.enqueueWrite(pub)
		done <- nil
	}
	if err := e.submit(cmd); err != nil {
		return err
	}
	return <-done
}

// Subscribe sends SUBSCRIBE and returns once it has been queued; the
// result arrives through Handlers.OnSubackV3/V5.
func (e *Endpoint) Subscribe(ctx context.Context, id uint16, filters []packet.Subscription, props *packet.Properties) error {
	sub := &packet.SUBSCRIBE{
		FixedHeader:   &packet.FixedHeader{Version: e.version},
		PacketID:      id,
		Subscriptions: filters,
		Props:         props,
	}
	return e.submitCtx(ctx, func() { e.enqueueWrite(sub) })
}

// Unsubscribe sends UNSUBSCRIBE; the result arrives through
// Handlers.OnUnsubackV3/V5.
func (e *Endpoint) Unsubscribe(ctx context.Context, id uint16, filters []string, props *packet.Properties) error {
	unsub := &packet.UNSUBSCRIBE{
		FixedHeader:   &packet.FixedHeader{Version: e.version},
		PacketID:      id,
		TopicFilters:  filters,
		Props:         props,
	}
	return e.submitCtx(ctx, func() { e.enqueueWrite(unsub) })
}

// PingReq sends PINGREQ.
func (e *Endpoint) PingReq(ctx context.Context) error {
	ping := &packet.PINGREQ{FixedHeader: &packet.FixedHeader{Version: e.version}}
	return e.submitCtx(ctx, func() { e.enqueueWrite(ping) })
}

// Close aborts the Endpoint immediately, without sending DISCONNECT.
// In-flight handler invocations observe KindOperationAborted.
func (e *Endpoint) Close() error {
	e.shutdown(&Error{Kind: KindOperationAborted, Detail: "endpoint closed"})
	return nil
}

func (e *Endpoint) submit(cmd func()) error {
	select {
	case e.cmdCh <- cmd:
		return nil
	case <-e.doneCh:
		return &Error{Kind: KindOperationAborted, Detail: "endpoint closed"}
	}
}

func (e *Endpoint) submitCtx(ctx context.Context, cmd func()) error {
	select {
	case e.cmdCh <- cmd:
		return nil
	case <-e.doneCh:
		return &Error{Kind: KindOperationAborted, Detail: "endpoint closed"}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeJob pairs an outbound packet with an optional completion signal;
// Disconnect uses ack to block until its DISCONNECT has actually left the
// write pump before closing the transport underneath it.
type writeJob struct {
	pkt packet.Packet
	ack chan struct{}
}

// enqueueWrite hands pkt to the write pump. Only ever called from the
// strand loop, so callers of enqueueWrite get outbound ordering for
// free: whichever strand-loop turn enqueues first is written first.
func (e *Endpoint) enqueueWrite(pkt packet.Packet) {
	e.enqueueWriteJob(writeJob{pkt: pkt})
}

// enqueueWriteThenNotify queues pkt and, once the write pump has actually
// flushed it, submits then back onto the strand. Used for PubResSentHandler,
// which must fire only after the QoS response packet has left the
// outbound path, not merely once it has been queued for writing.
func (e *Endpoint) enqueueWriteThenNotify(pkt packet.Packet, then func()) {
	ack := make(chan struct{})
	e.enqueueWriteJob(writeJob{pkt: pkt, ack: ack})
	go func() {
		<-ack
		_ = e.submit(then)
	}()
}

func (e *Endpoint) enqueueWriteJob(job writeJob) {
	select {
	case e.writeCh <- job:
		if e.ka != nil {
			e.ka.resetOnOutbound()
		}
	case <-e.doneCh:
		if job.ack != nil {
			close(job.ack)
		}
	}
}

// serve is the strand loop: the single goroutine that owns Session and
// invokes application handlers.
func (e *Endpoint) serve(ctx context.Context, keepAlive time.Duration) {
	e.ka = newKeepalive(keepAlive)
	defer e.ka.stop()

	if e.metrics != nil {
		e.metrics.ActiveEndpoints.Inc()
		defer e.metrics.ActiveEndpoints.Dec()
	}

	for {
		select {
		case <-ctx.Done():
			e.shutdown(ctx.Err())
			return
		case <-e.doneCh:
			return
		case cmd := <-e.cmdCh:
			cmd()
		case <-e.ka.pingChan():
			e.enqueueWrite(&packet.PINGREQ{FixedHeader: &packet.FixedHeader{Version: e.version}})
			e.ka.resetOnOutbound()
		case <-e.ka.timeoutChan():
			err := &Error{Kind: KindKeepAliveTimeout, Detail: "no inbound traffic within 1.5x keep-alive"}
			e.handlers.fireError(err)
			e.shutdown(err)
			return
		}
	}
}

// readPump decodes packets off the transport and hands each one to the
// strand as a command, so decode results are only ever consumed on the
// strand goroutine.
func (e *Endpoint) readPump(ctx context.Context) {
	r := &adapterReader{ctx: ctx, adapter: e.adapter}
	for {
		pkt, err := packet.Decode(e.version, r)
		if err != nil {
			if e.closed.Load() {
				return
			}
			werr := wrapTransportErr(err)
			e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "error": werr}).Error("mqtt: read pump failed")
			_ = e.submit(func() {
				e.handlers.fireError(werr)
				e.shutdown(werr)
			})
			return
		}
		if e.metrics != nil {
			e.metrics.PacketsReceived.Inc()
		}
		p := pkt
		if err := e.submit(func() { e.dispatch(p) }); err != nil {
			return
		}
	}
}

// writePump drains writeCh in FIFO order onto the transport, so at most
// one Pack call is in flight on the transport at a time.
func (e *Endpoint) writePump(ctx context.Context) {
	w := &adapterWriter{ctx: ctx, adapter: e.adapter}
	for {
		select {
		case job, ok := <-e.writeCh:
			if !ok {
				return
			}
			err := job.pkt.Pack(w)
			if job.ack != nil {
				close(job.ack)
			}
			if err != nil {
				werr := wrapTransportErr(err)
				e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "error": werr}).Error("mqtt: write pump failed")
				_ = e.submit(func() {
					e.handlers.fireError(werr)
					e.shutdown(werr)
				})
				return
			}
			if e.metrics != nil {
				e.metrics.PacketsSent.Inc()
			}
		case <-e.doneCh:
			return
		}
	}
}

func (e *Endpoint) shutdown(cause error) {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	if cause != nil {
		e.logger.WithFields(logrus.Fields{"client_id": e.session.ClientID, "cause": cause}).Warn("mqtt: endpoint closed")
	} else {
		e.logger.WithField("client_id", e.session.ClientID).Info("mqtt: endpoint closed")
	}
	close(e.doneCh)
	_ = e.adapter.Close(context.Background())
	e.handlers.fireClose(cause)
}

func wrapTransportErr(err error) error {
	if err == io.EOF {
		return &Error{Kind: KindTransportError, Detail: "connection closed by peer", Cause: err}
	}
	if perr, ok := err.(*Error); ok {
		return perr
	}
	return &Error{Kind: KindTransportError, Detail: "transport i/o failure", Cause: err}
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// adapterReader/adapterWriter adapt a transport.Adapter to io.Reader/
// io.Writer so packet.Decode/Packet.Pack — both defined against the
// standard io interfaces — can drive it directly.
type adapterReader struct {
	ctx     context.Context
	adapter transport.Adapter
}

func (r *adapterReader) Read(p []byte) (int, error) { return r.adapter.Read(r.ctx, p) }

type adapterWriter struct {
	ctx     context.Context
	adapter transport.Adapter
}

func (w *adapterWriter) Write(p []byte) (int, error) { return w.adapter.Write(w.ctx, p) }
