// Command mqtt-client is a small example program driving the Endpoint
// API directly: connect, subscribe to a couple of filters, publish a
// timestamp once a second, and shut down cleanly on signal.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-io/mqttendpoint"
	"github.com/golang-io/mqttendpoint/packet"
	"github.com/golang-io/mqttendpoint/transport"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	handlers := &mqtt.Handlers{
		OnPublishV3: func(id uint16, msg *packet.Message, qos uint8, retain bool, isDup bool) bool {
			log.Printf("on: topic=%s payload=%s", msg.Topic, msg.Payload)
			return true
		},
		CloseHandler: func(cause error) {
			log.Printf("closed: %v", cause)
			cancel()
		},
	}

	group, ctx := errgroup.WithContext(ctx)

	adapter, err := transport.DialTCP(ctx, "127.0.0.1:1883")
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	ep := mqtt.NewEndpoint(adapter, "", mqtt.WithHandlers(handlers))

	group.Go(func() error {
		if err := ep.Connect(ctx, mqtt.ConnectOptions{CleanStart: true, KeepAlive: 30 * time.Second}); err != nil {
			return err
		}
		if err := ep.Subscribe(ctx, mustID(ep), []packet.Subscription{
			{TopicFilter: "+", MaximumQoS: 0},
			{TopicFilter: "a/b/c", MaximumQoS: 1},
		}, nil); err != nil {
			return err
		}
		<-ctx.Done()
		return ep.Disconnect(context.Background(), packet.CodeSuccess)
	})

	group.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				payload := packet.NewBuffer([]byte(time.Now().Format(time.RFC3339)))
				if _, err := ep.Publish("12345", payload, 0, false, nil); err != nil {
					log.Printf("publish: %v", err)
				}
			}
		}
	})

	group.Go(func() error {
		defer cancel()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-sig:
			log.Printf("got signal: %s", s)
			return nil
		}
	})

	if err := group.Wait(); err != nil {
		log.Printf("exiting: %v", err)
	}
}

func mustID(ep *mqtt.Endpoint) uint16 {
	id, err := ep.AcquireUniquePacketID()
	if err != nil {
		log.Fatalf("acquire packet id: %v", err)
	}
	return id
}
