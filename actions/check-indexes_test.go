package actions

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suncar/seeder/database"
)

func storeWithIndexes(names ...string) *memoryStore {
	store := newMemoryStore()
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	for _, spec := range database.WorkOrderIndexSpecs() {
		if wanted[spec.Name] {
			store.indexes[database.NormalizeKey(spec.Key)] = struct{}{}
		}
	}
	return store
}

func TestRunCheckIndexesAllPresent(t *testing.T) {
	var names []string
	for _, spec := range database.WorkOrderIndexSpecs() {
		names = append(names, spec.Name)
	}
	store := storeWithIndexes(names...)

	var out bytes.Buffer
	missing, err := RunCheckIndexes(context.Background(), store, &out, ModeLive, false, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Contains(t, out.String(), "[ok] all work order indexes present")
}

func TestRunCheckIndexesDryRun(t *testing.T) {
	store := storeWithIndexes("brigada_id_1", "estado_1")

	var out bytes.Buffer
	asked := false
	missing, err := RunCheckIndexes(context.Background(), store, &out, ModeDryRun, true, func() bool {
		asked = true
		return true
	})
	require.NoError(t, err)
	assert.Len(t, missing, 4)
	assert.False(t, asked)
	assert.Len(t, store.indexes, 2)

	text := out.String()
	assert.Contains(t, text, "cliente_numero_1")
	assert.Contains(t, text, "{ estado: 1, fecha_ejecucion: -1 }")
	assert.Contains(t, text, "missing_total=4")
	assert.Contains(t, text, "dry-run mode")
}

func TestRunCheckIndexesLiveDeclined(t *testing.T) {
	store := storeWithIndexes()

	var out bytes.Buffer
	missing, err := RunCheckIndexes(context.Background(), store, &out, ModeLive, false, func() bool { return false })
	require.NoError(t, err)
	assert.Len(t, missing, len(database.WorkOrderIndexSpecs()))
	assert.Empty(t, store.indexes)
	assert.Contains(t, out.String(), "skipping index creation")
}

func TestRunCheckIndexesLiveAutoFix(t *testing.T) {
	store := storeWithIndexes("brigada_id_1")

	var out bytes.Buffer
	missing, err := RunCheckIndexes(context.Background(), store, &out, ModeLive, true, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Len(t, store.indexes, len(database.WorkOrderIndexSpecs()))
	assert.Contains(t, out.String(), "[ok] created ordenes_trabajo/estado_1_fecha_ejecucion_-1")
}

func TestRunCheckIndexesCreateFailure(t *testing.T) {
	store := storeWithIndexes()
	store.indexErr = errors.New("not authorized")

	var out bytes.Buffer
	missing, err := RunCheckIndexes(context.Background(), store, &out, ModeLive, true, nil)
	require.Error(t, err)
	assert.Len(t, missing, len(database.WorkOrderIndexSpecs()))
}

func TestCheckIndexesConfigDefaults(t *testing.T) {
	cfg := CheckIndexesConfig{Mode: " LIVE "}
	cfg.ApplyDefaults()
	assert.Equal(t, ModeLive, cfg.Mode)
	assert.Equal(t, DefaultWorkOrderCollection, cfg.Collection)

	cfg = CheckIndexesConfig{}
	cfg.ApplyDefaults()
	assert.Equal(t, ModeDryRun, cfg.Mode)
}
