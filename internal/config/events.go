package config

import "os"

// EventsConfig controls publication of visit events to RabbitMQ.  Events
// are disabled when no broker URL is configured.
type EventsConfig struct {
	BrokerURL       string // RABBITMQ_URL, falling back to AMQP_URL
	Queue           string // VISIT_EVENTS_QUEUE
	ConsumerEnabled bool   // VISIT_EVENTS_CONSUMER
	LogPath         string // VISIT_EVENTS_LOG
}

func LoadEventsConfig() EventsConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return EventsConfig{
		BrokerURL:       url,
		Queue:           envStr("VISIT_EVENTS_QUEUE", "visit.recorded"),
		ConsumerEnabled: envBool("VISIT_EVENTS_CONSUMER", false),
		LogPath:         envStr("VISIT_EVENTS_LOG", "logs/visits.log"),
	}
}

// Enabled reports whether a broker is configured.
func (c EventsConfig) Enabled() bool { return c.BrokerURL != "" }
