package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	require.NoError(t, err)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown 2")
	assert.False(t, IsDebug(l))
}

func TestNewDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug")
	require.NoError(t, err)
	assert.True(t, IsDebug(l))

	l.Debugf("trace")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("nothing")
	assert.False(t, IsDebug(l))
}
