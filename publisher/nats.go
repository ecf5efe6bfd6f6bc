package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nats-io/nats.go"

	"mnr/schedule-api/realtime"
)

// Metrics is the instrumentation surface the publisher reports to.
type Metrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// NATSPublisher publishes one message per train after each feed refresh.
type NATSPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
	metrics       Metrics
}

// DelayMessage is the wire format for one train's current delays.
type DelayMessage struct {
	TripShortName string                    `json:"trip_short_name"`
	Timestamp     int64                     `json:"timestamp"`
	Updates       []realtime.StopTimeUpdate `json:"updates"`
}

func NewNATSPublisher(url, subjectPrefix string, m Metrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("schedule-api"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, subjectPrefix: subjectPrefix, metrics: m}, nil
}

// Close drains the connection; Drain closes it once buffered messages
// flush. Close is the fallback only when the drain cannot start.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

// PublishSnapshot publishes the delays of every train in the snapshot.
// Intended as a realtime.Cache OnRefresh hook.
func (p *NATSPublisher) PublishSnapshot(snap *realtime.Snapshot) {
	if snap == nil {
		return
	}
	for _, ent := range snap.Entities {
		msg := DelayMessage{
			TripShortName: ent.TripShortName,
			Timestamp:     snap.Timestamp,
			Updates:       ent.StopTimeUpdates,
		}
		if err := p.publish(ent.TripShortName, msg); err != nil {
			log.Printf("nats publish failed train=%s: %v", ent.TripShortName, err)
		}
	}
}

func (p *NATSPublisher) publish(train string, msg DelayMessage) error {
	subject := fmt.Sprintf("%s.%s", p.subjectPrefix, subjectToken(train))
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
