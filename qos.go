package mqtt

import "github.com/golang-io/mqttendpoint/packet"

// dispatch runs on the strand loop for every inbound packet decoded by
// the read pump. It resets the keep-alive timeout, updates Session/Store
// as the packet's QoS role requires, and invokes the matching Handlers
// callback. A handler returning false requests a clean disconnect.
func (e *Endpoint) dispatch(pkt packet.Packet) {
	if e.ka != nil {
		e.ka.resetOnInbound()
	}

	keepRunning := true
	switch p := pkt.(type) {
	case *packet.CONNACK:
		keepRunning = e.onConnack(p)
	case *packet.PUBLISH:
		keepRunning = e.onPublish(p)
	case *packet.PUBACK:
		keepRunning = e.onPuback(p)
	case *packet.PUBREC:
		keepRunning = e.onPubrec(p)
	case *packet.PUBREL:
		keepRunning = e.onPubrel(p)
	case *packet.PUBCOMP:
		keepRunning = e.onPubcomp(p)
	case *packet.SUBACK:
		keepRunning = e.onSuback(p)
	case *packet.UNSUBACK:
		keepRunning = e.onUnsuback(p)
	case *packet.PINGRESP:
		// no handler slot; keep-alive timer reset above is the only effect.
	case *packet.DISCONNECT:
		e.handlers.fireError(&Error{Kind: KindProtocolError, Detail: "server sent DISCONNECT"})
		keepRunning = false
	}

	if !keepRunning {
		e.shutdown(nil)
	}
}

func (e *Endpoint) onConnack(p *packet.CONNACK) bool {
	result := func() error {
		if p.ReasonCode.Code != packet.CodeSuccess.Code {
			return &Error{Kind: KindBadResponse, Detail: p.ReasonCode.Reason}
		}
		return nil
	}()

	if !p.SessionPresent {
		e.session.reset()
	} else {
		for _, pkt := range e.session.store.Replay() {
			e.enqueueWrite(pkt)
		}
	}

	if e.connectRes != nil {
		select {
		case e.connectRes <- result:
		default:
		}
	}

	if e.version == packet.Version5 && e.handlers.OnConnackV5 != nil {
		return e.handlers.OnConnackV5(p.SessionPresent, p.ReasonCode, p.Props)
	}
	if e.handlers.OnConnackV3 != nil {
		return e.handlers.OnConnackV3(p.SessionPresent, p.ReasonCode)
	}
	return result == nil
}

// onPublish implements the receiver-side QoS0/1/2 protocol: QoS0 just
// hands the message to the application, QoS1 acks with PUBACK, QoS2
// acks with PUBREC and dedups against a retransmitted PUBLISH using the
// same packet id. DUP is masked: the application handler always
// observes isDup=false, since retransmit bookkeeping is the ack
// protocol's job, not the application's.
func (e *Endpoint) onPublish(p *packet.PUBLISH) bool {
	switch p.QoS {
	case 0:
		return e.invokePublishHandler(0, p, false)
	case 1:
		keep := e.invokePublishHandler(p.PacketID, p, false)
		puback := &packet.PUBACK{FixedHeader: &packet.FixedHeader{Version: e.version}, PacketID: p.PacketID, ReasonCode: packet.CodeSuccess}
		id := p.PacketID
		e.enqueueWriteThenNotify(puback, func() { e.handlers.firePubResSent(id) })
		return keep
	case 2:
		keep := true
		if e.session.markReceiving(p.PacketID) {
			keep = e.invokePublishHandler(p.PacketID, p, false)
		}
		pubrec := &packet.PUBREC{FixedHeader: &packet.FixedHeader{Version: e.version}, PacketID: p.PacketID, ReasonCode: packet.CodeSuccess}
		id := p.PacketID
		e.enqueueWriteThenNotify(pubrec, func() { e.handlers.firePubResSent(id) })
		return keep
	}
	return true
}

func (e *Endpoint) invokePublishHandler(id uint16, p *packet.PUBLISH, isDup bool) bool {
	if e.version == packet.Version5 && e.handlers.OnPublishV5 != nil {
		return e.handlers.OnPublishV5(id, p.Message, p.QoS, p.Retain != 0, isDup, p.Props)
	}
	if e.handlers.OnPublishV3 != nil {
		return e.handlers.OnPublishV3(id, p.Message, p.QoS, p.Retain != 0, isDup)
	}
	return true
}

// onPubrel completes receiver-side QoS2: PUBCOMP out, release the id.
func (e *Endpoint) onPubrel(p *packet.PUBREL) bool {
	e.session.releaseReceiving(p.PacketID)
	pubcomp := &packet.PUBCOMP{FixedHeader: &packet.FixedHeader{Version: e.version}, PacketID: p.PacketID, ReasonCode: packet.CodeSuccess}
	e.enqueueWrite(pubcomp)
	return true
}

// onPuback completes sender-side QoS1: release the id, erase the store
// entry, invoke the registered handler.
func (e *Endpoint) onPuback(p *packet.PUBACK) bool {
	e.session.store.Erase(p.PacketID)
	e.session.registry.Release(p.PacketID)
	if e.version == packet.Version5 && e.handlers.OnPubackV5 != nil {
		return e.handlers.OnPubackV5(p.PacketID, p.ReasonCode, p.Props)
	}
	if e.handlers.OnPubackV3 != nil {
		return e.handlers.OnPubackV3(p.PacketID)
	}
	return true
}

// onPubrec advances sender-side QoS2: swap the stored PUBLISH for PUBREL,
// send it, invoke the registered handler.
func (e *Endpoint) onPubrec(p *packet.PUBREC) bool {
	rel := &packet.PUBREL{FixedHeader: &packet.FixedHeader{Version: e.version}, PacketID: p.PacketID, ReasonCode: packet.CodeSuccess}
	if err := e.session.store.OnPubrec(p.PacketID, rel); err != nil {
		e.handlers.fireError(err)
	} else {
		e.enqueueWrite(rel)
	}
	if e.version == packet.Version5 && e.handlers.OnPubrecV5 != nil {
		return e.handlers.OnPubrecV5(p.PacketID, p.ReasonCode, p.Props)
	}
	if e.handlers.OnPubrecV3 != nil {
		return e.handlers.OnPubrecV3(p.PacketID)
	}
	return true
}

// onPubcomp completes sender-side QoS2: release the id, erase the store
// entry, invoke the registered handler.
func (e *Endpoint) onPubcomp(p *packet.PUBCOMP) bool {
	e.session.store.Erase(p.PacketID)
	e.session.registry.Release(p.PacketID)
	if e.version == packet.Version5 && e.handlers.OnPubcompV5 != nil {
		return e.handlers.OnPubcompV5(p.PacketID, p.ReasonCode, p.Props)
	}
	if e.handlers.OnPubcompV3 != nil {
		return e.handlers.OnPubcompV3(p.PacketID)
	}
	return true
}

func (e *Endpoint) onSuback(p *packet.SUBACK) bool {
	if e.version == packet.Version5 && e.handlers.OnSubackV5 != nil {
		return e.handlers.OnSubackV5(p.PacketID, p.ReasonCodes, p.Props)
	}
	if e.handlers.OnSubackV3 != nil {
		return e.handlers.OnSubackV3(p.PacketID, p.ReasonCodes)
	}
	return true
}

func (e *Endpoint) onUnsuback(p *packet.UNSUBACK) bool {
	if e.version == packet.Version5 && e.handlers.OnUnsubackV5 != nil {
		return e.handlers.OnUnsubackV5(p.PacketID, p.ReasonCodes, p.Props)
	}
	if e.handlers.OnUnsubackV3 != nil {
		return e.handlers.OnUnsubackV3(p.PacketID)
	}
	return true
}
