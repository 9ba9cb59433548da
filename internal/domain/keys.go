package domain

// DefaultKeyPrefix is the Redis key namespace used when none is configured.
const DefaultKeyPrefix = "omni:"
