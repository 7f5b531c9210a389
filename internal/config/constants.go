package config

import "time"

// Object store connection settings.
const (
	RedisConnectTimeout = 3 * time.Second
	RedisCommandTimeout = 2 * time.Second
	RedisPoolSize       = 10
)

// Data-plane RPC settings.
const (
	DataPlaneRequestTimeout = 6 * time.Second
)

// Circuit breaker settings around the data-plane client.
const (
	CBName             = "dataplane-client"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// ShutdownTimeout bounds graceful process shutdown.
const ShutdownTimeout = 5 * time.Second
