package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.00, Round2(10.004))
	assert.Equal(t, 10.01, Round2(10.005))
	assert.Equal(t, 9.99, Round2(9.994))
	assert.Equal(t, 0.0, Round2(0))
}

func TestBytesToGB(t *testing.T) {
	assert.Equal(t, 1.0, BytesToGB(1<<30))
	assert.Equal(t, 0.5, BytesToGB(1<<29))
}
