package remotedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCicloDeVida(t *testing.T) {
	d := Empty[int]()
	assert.Equal(t, StateEmpty, d.State())

	_, ok := d.Data()
	assert.False(t, ok, "sin dato en Empty")

	d.StartLoading()
	assert.Equal(t, StateLoading, d.State())
	_, ok = d.Data()
	assert.False(t, ok, "sin dato en Loading")

	d.FinishLoading(42)
	assert.Equal(t, StateValid, d.State())
	v, ok := d.Data()
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestValidEsTerminal(t *testing.T) {
	d := Empty[string]()
	d.StartLoading()
	d.FinishLoading("primero")

	// Una nueva petición lógica construye una nueva instancia; las
	// transiciones sobre una instancia Valid son no-ops.
	d.StartLoading()
	assert.Equal(t, StateValid, d.State())
	d.FinishLoading("segundo")

	v, ok := d.Data()
	require.True(t, ok)
	assert.Equal(t, "primero", v)
}

func TestFinishSinStart_NoOp(t *testing.T) {
	d := Empty[int]()
	d.FinishLoading(7)

	assert.Equal(t, StateEmpty, d.State())
	_, ok := d.Data()
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "valid", StateValid.String())
}
