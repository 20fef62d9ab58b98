package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bazaar-grpc", targetHost("dns:///bazaar-grpc:3001"))
	assert.Equal(t, "localhost", targetHost("localhost:3001"))
	assert.Equal(t, "bazaar-grpc", targetHost("bazaar-grpc"))
}

func TestHashAddressesIgnoresOrder(t *testing.T) {
	t.Parallel()

	a := hashAddresses([]string{"10.0.0.2", "10.0.0.1"})
	assert.Equal(t, a, hashAddresses([]string{"10.0.0.1", "10.0.0.2"}))
	assert.NotEqual(t, a, hashAddresses([]string{"10.0.0.1"}))
}

func TestNotifyOnceDoesNotBlock(t *testing.T) {
	t.Parallel()

	ch := make(chan struct{}, 1)
	notifyOnce(ch)
	notifyOnce(ch)
	assert.Len(t, ch, 1)
}
