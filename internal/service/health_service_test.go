package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()

	st := NewHealthService(svc, "embedded", nil).Check(ctx)
	assert.Equal(t, StatusUp, st.Status)
	assert.Equal(t, 5, st.Products)
	assert.Equal(t, 3, st.Suppliers)
	assert.Equal(t, 3, st.Reviews)
	assert.Nil(t, st.Dependencies)

	st = NewHealthService(svc, "mongo", map[string]Pinger{
		"mongodb": pingerFunc(func(context.Context) error { return errors.New("no route") }),
	}).Check(ctx)
	assert.Equal(t, StatusDown, st.Status)
	assert.Equal(t, map[string]string{"mongodb": StatusDown}, st.Dependencies)
}
