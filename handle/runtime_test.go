package handle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/resource"
)

// emptyModule is the smallest valid core wasm binary: magic and version.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

type sharedRuntime struct {
	wazero.Runtime
}

func TestHandle_SharesWazeroRuntime(t *testing.T) {
	ctx := context.Background()
	tracker := resource.NewTracker()

	raw := wazero.NewRuntime(ctx)
	owner := NewWithOptions(&sharedRuntime{Runtime: raw}, control.Options{Observer: tracker})
	tenant := owner.Clone()
	id := owner.BlockID()

	compiled, err := owner.MustDeref().CompileModule(ctx, emptyModule)
	require.NoError(t, err)

	require.NoError(t, owner.ReleaseContext(ctx))
	require.True(t, tracker.Alive(id), "runtime must stay open while a tenant holds it")

	mod, err := tenant.MustDeref().InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	require.NoError(t, err)
	require.NoError(t, mod.Close(ctx))

	require.NoError(t, tenant.ReleaseContext(ctx))
	assert.Equal(t, 1, tracker.Finalizations(id))

	_, err = raw.CompileModule(ctx, emptyModule)
	assert.Error(t, err, "runtime should be closed after the last owner released it")
}
