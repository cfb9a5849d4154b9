package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestVerboseLifecycle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	v := New(zap.New(core))

	require.Equal(t, DefaultID, v.ID)
	v.Rename("a")
	assert.Equal(t, "a", v.String())

	c := v.Clone()
	assert.Equal(t, DefaultID, c.ID)
	assert.Equal(t, "a", v.ID)
	assert.NotSame(t, v, c)

	v.Drop()
	assert.Equal(t, 1, v.Drops())
	assert.Equal(t, 0, c.Drops())

	copied := logs.FilterMessage("verbose copy construct").All()
	require.Len(t, copied, 1)
	assert.Equal(t, "a", copied[0].ContextMap()["from"])

	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"verbose construct",
		"verbose rename",
		"verbose copy construct",
		"verbose destruct",
	}, messages)
}

func TestNilLogger(t *testing.T) {
	v := Named("x", nil)
	require.NotPanics(t, v.Drop)
	assert.Equal(t, 1, v.Drops())
}
