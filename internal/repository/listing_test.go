package repository

import (
	"testing"

	"optigest/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause_ResuelveColumnaYDireccion(t *testing.T) {
	allowed := map[string]string{"nombre": "clientes.nombre", "id": "id"}

	col, dir, err := orderClause(allowed, "nombre", "desc")
	require.NoError(t, err)
	assert.Equal(t, "clientes.nombre", col)
	assert.Equal(t, "DESC", dir)

	// Direction defaults to ASC for anything that is not "desc".
	_, dir, err = orderClause(allowed, "id", "sideways")
	require.NoError(t, err)
	assert.Equal(t, "ASC", dir)

	// Input is trimmed and case-folded before the whitelist lookup.
	col, _, err = orderClause(allowed, "  Nombre ", " DESC ")
	require.NoError(t, err)
	assert.Equal(t, "clientes.nombre", col)
}

func TestOrderClause_ColumnaDesconocidaListaOpciones(t *testing.T) {
	allowed := map[string]string{"b": "b", "a": "a", "c": "c"}

	_, _, err := orderClause(allowed, "created_at", "asc")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	// Options come sorted so the message is deterministic.
	assert.Contains(t, err.Error(), "a, b, c")
}
