package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrMap(attrs []slog.Attr) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value.String()
	}
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestJSONBodyRedactsPasswords(t *testing.T) {
	t.Parallel()

	body := `{"email":"a@b.c","password":"hunter2","confirmPassword":"hunter2","items":[1,2,3]}`
	attrs, err := DecodeBody("application/json; charset=utf-8", []byte(body))
	require.NoError(t, err)

	got := attrMap(attrs)
	assert.Equal(t, "a@b.c", got["http.body.email"])
	assert.Equal(t, redacted, got["http.body.password"])
	assert.Equal(t, redacted, got["http.body.confirmPassword"])
	assert.Contains(t, got, "http.body.items.0")
	assert.Contains(t, got, "http.body.items.2")
	assert.NotContains(t, got, "http.body.items.1")
}

func TestHeaderAttrsFilterAndRedact(t *testing.T) {
	t.Parallel()

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer abc")
	hdr.Set("X-Session-ID", "s-1")
	hdr.Set("Cookie", "c=1")

	got := attrMap(HeaderAttrs(hdr))
	assert.Equal(t, redacted, got["http.header.authorization"])
	assert.Equal(t, "s-1", got["http.header.x-session-id"])
	assert.NotContains(t, got, "http.header.cookie")
}

func TestCaptureBodyKeepsPayloadForHandler(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("x", MaxBodyLogged+10)
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

	captured, err := CaptureBody(r)
	require.NoError(t, err)
	assert.Len(t, captured, MaxBodyLogged)

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Len(t, rest, len(payload))
}

func TestBuildLogEntry(t *testing.T) {
	t.Setenv("APP_NAME", "bazaar-test")

	now := time.Unix(1700000000, 0).UTC()
	entry := buildLogEntry("info", "hello", []slog.Attr{slog.String("k", "v")}, now)

	b, err := json.Marshal(entry)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"job":"bazaar-test"`)
	assert.Contains(t, s, `"1700000000000000000"`)
	assert.Contains(t, s, `\"k\":\"v\"`)
}

func TestInfoPushesToRemote(t *testing.T) {
	var (
		mu   sync.Mutex
		once sync.Once
		got  []byte
		done = make(chan struct{})
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
		once.Do(func() {
			mu.Lock()
			got = b
			mu.Unlock()
			close(done)
		})
	}))
	defer srv.Close()
	t.Setenv("REMOTE_LOG_HTTP_URI", srv.URL)

	Info(context.Background(), "pushed", slog.String("supplier_id", "S001"))

	select {
	case <-done:
	case <-time.After(remoteTimeout):
		t.Fatal("remote log was not pushed")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, string(got), "supplier_id")
}
