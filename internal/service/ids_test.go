package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "S001", nextID("S", nil))
	assert.Equal(t, "S004", nextID("S", []string{"S001", "S002", "S003"}))
	assert.Equal(t, "R008", nextID("R", []string{"R001", "R007"}))
	assert.Equal(t, "S003", nextID("S", []string{"X100", "S"}))
	assert.Equal(t, "S1000", nextID("S", []string{"S999"}))
}
