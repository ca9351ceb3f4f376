package messaging

// Topic constants for gateway messaging
const (
	// TopicEvents carries MiningEvent records (gateway → downstream consumers).
	// Overridable with KAFKA_TOPIC.
	TopicEvents = "mining.gateway.events"
)
