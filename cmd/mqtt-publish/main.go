// Command mqtt-publish sends one message over the synchronous MQTT
// profile and exits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	rawmqtt "github.com/golang-io/rawmqtt"
)

func main() {
	host := flag.String("host", "127.0.0.1", "broker host")
	port := flag.Int("port", 1883, "broker port")
	topicName := flag.String("topic", "", "topic to publish to")
	message := flag.String("message", "", "payload to publish")
	qos := flag.Int("qos", 0, "QoS level (0 or 1)")
	tlsEnabled := flag.Bool("tls", false, "dial over TLS instead of plain TCP")
	insecure := flag.Bool("insecure", false, "skip TLS/QUIC server certificate verification")
	quic := flag.Bool("quic", false, "dial over QUIC instead of TCP/TLS")
	timeout := flag.Duration("timeout", 5*time.Second, "overall deadline for connect+publish+disconnect")
	flag.Parse()

	if *topicName == "" {
		log.Fatal("mqtt-publish: -topic is required")
	}

	opts := []rawmqtt.Option{rawmqtt.WithAddr(*host, *port)}
	switch {
	case *quic:
		opts = append(opts, rawmqtt.WithQUIC(*insecure))
	case *tlsEnabled:
		opts = append(opts, rawmqtt.WithTLS(true, *insecure))
	}

	client := rawmqtt.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		log.Fatalf("mqtt-publish: connect: %v", err)
	}
	if err := client.Publish(ctx, *topicName, []byte(*message), rawmqtt.QoS(*qos)); err != nil {
		log.Fatalf("mqtt-publish: publish: %v", err)
	}
	if err := client.Disconnect(); err != nil {
		log.Printf("mqtt-publish: disconnect: %v", err)
	}
}
