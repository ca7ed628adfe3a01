package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeoutMs bounds how long the writer buffers before flushing.
	// Zero keeps the library default.
	BatchTimeoutMs int
}
