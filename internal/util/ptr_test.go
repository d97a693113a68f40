package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	v := 2
	p := Ptr(v)
	v = 3

	assert.Equal(t, 2, *p)
	assert.NotSame(t, Ptr(1), Ptr(1))
}
