// Command mqtt-stream-publish pipelines publishes read from stdin (one
// message per line) over the stream MQTT profile, optionally serving
// Prometheus metrics while it runs.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rawmqtt "github.com/golang-io/rawmqtt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	host := flag.String("host", "127.0.0.1", "broker host")
	port := flag.Int("port", 1883, "broker port")
	topicName := flag.String("topic", "", "topic to publish to")
	qos := flag.Int("qos", 1, "QoS level (0 or 1)")
	queue := flag.Int64("queue", 1024, "intake queue mode: -1 unbounded, 0 single-slot LIFO, n>0 bounded FIFO")
	tlsEnabled := flag.Bool("tls", false, "dial over TLS instead of plain TCP")
	insecure := flag.Bool("insecure", false, "skip TLS/QUIC server certificate verification")
	quic := flag.Bool("quic", false, "dial over QUIC instead of TCP/TLS")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9100)")
	flag.Parse()

	if *topicName == "" {
		log.Fatal("mqtt-stream-publish: -topic is required")
	}

	metrics := rawmqtt.NewMetrics()
	opts := []rawmqtt.Option{
		rawmqtt.WithAddr(*host, *port),
		rawmqtt.WithQueue(*queue),
		rawmqtt.WithMetrics(metrics),
	}
	switch {
	case *quic:
		opts = append(opts, rawmqtt.WithQUIC(*insecure))
	case *tlsEnabled:
		opts = append(opts, rawmqtt.WithTLS(true, *insecure))
	}

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		if err := metrics.Register(reg); err != nil {
			log.Fatalf("mqtt-stream-publish: register metrics: %v", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("mqtt-stream-publish: metrics server: %v", err)
			}
		}()
	}

	client := rawmqtt.NewStream(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		log.Fatalf("mqtt-stream-publish: connect: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var sent int
	for scanner.Scan() {
		line := scanner.Text()
		if err := client.StreamPublish(*topicName, []byte(line), rawmqtt.QoS(*qos)); err != nil {
			log.Printf("mqtt-stream-publish: publish #%d: %v", sent, err)
			continue
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		log.Printf("mqtt-stream-publish: read stdin: %v", err)
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		log.Printf("mqtt-stream-publish: disconnect: %v", err)
	}
	log.Printf("mqtt-stream-publish: sent %d messages", sent)
}
