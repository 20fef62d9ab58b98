package utils

import (
	"os"
	"sync"
)

// Hostname is stamped on log records and gRPC replies so round-robin traffic
// can be attributed to a replica. POD_NAME wins over the kernel hostname.
var Hostname = sync.OnceValue(func() string {
	if pod := os.Getenv("POD_NAME"); pod != "" {
		return pod
	}
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
})
