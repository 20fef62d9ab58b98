package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"

	"bizarre-bazaar/internal/logger"
)

const maxDNSFailures = 3

// targetHost strips the scheme and port from a gRPC target such as
// "dns:///bazaar-grpc:3001".
func targetHost(target string) string {
	host := strings.TrimPrefix(target, "dns:")
	host = strings.TrimLeft(host, "/")
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func hashAddresses(addrs []string) string {
	sorted := append([]string(nil), addrs...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, ",")))
	return hex.EncodeToString(sum[:])
}

// watchDNS resolves target every interval and signals notify when the address
// set changes or lookups keep failing. The first successful lookup only sets
// the baseline.
func watchDNS(ctx context.Context, target string, interval time.Duration, notify chan<- struct{}) {
	host := targetHost(target)
	var (
		lastHash string
		failures int
	)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		addrs, err := net.DefaultResolver.LookupHost(ctx, host)
		switch {
		case err != nil:
			failures++
			logger.Warn(ctx, "DNS lookup failed", slog.String("host", host), slog.String("error", err.Error()))
			if failures >= maxDNSFailures {
				notifyOnce(notify)
				failures = 0
			}
		default:
			failures = 0
			if h := hashAddresses(addrs); h != lastHash {
				if lastHash != "" {
					logger.Info(ctx, "Detected backend change", slog.String("host", host), slog.Any("addresses", addrs))
					notifyOnce(notify)
				}
				lastHash = h
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// notifyOnce never blocks; one pending notification is enough.
func notifyOnce(notify chan<- struct{}) {
	select {
	case notify <- struct{}{}:
	default:
	}
}
