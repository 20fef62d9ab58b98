package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const remoteTimeout = 5 * time.Second

var httpClient = &http.Client{Timeout: remoteTimeout}

// sendLog pushes the record to REMOTE_LOG_HTTP_URI in the background.
// Failures go to stderr only.
func sendLog(level, message string, attrs []slog.Attr) {
	remoteURI := os.Getenv("REMOTE_LOG_HTTP_URI")
	if remoteURI == "" {
		return
	}
	entry := buildLogEntry(level, message, attrs, time.Now())

	go func() {
		if err := push(context.Background(), remoteURI, entry); err != nil {
			fmt.Fprintf(os.Stderr, "remote log: %v\n", err)
		}
	}()
}

func push(ctx context.Context, uri string, entry map[string]any) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("remote returned status %d", resp.StatusCode)
	}
	return nil
}
