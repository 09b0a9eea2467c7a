package service

import (
	"context"
	"testing"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClienteFixture() (ClienteService, *stubClienteRepo) {
	repo := newStubClienteRepo()
	// nil cache: the service must work without Redis
	return NewClienteService(repo, nil), repo
}

func seedCliente(r *stubClienteRepo, opticaID string, dni int64) *model.Cliente {
	c := &model.Cliente{
		ID:       uuid.New(),
		OpticaID: opticaID,
		Nombre:   "Marta",
		Apellido: "Giménez",
		DNI:      dni,
		Activo:   true,
	}
	r.clientes[c.ID] = c
	return c
}

func TestCrearCliente_AltaConDefaults(t *testing.T) {
	svc, repo := newClienteFixture()

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearClienteRequest{
		Nombre:   "Julián",
		Apellido: "Soria",
		DNI:      30111222,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.NotEmpty(t, resp.FechaAlta)

	c, err := repo.FindByDNI(context.Background(), opticaA, 30111222)
	require.NoError(t, err)
	assert.Equal(t, opticaA, c.OpticaID)
}

func TestActualizarCliente_DNIDuplicadoRechazado(t *testing.T) {
	svc, repo := newClienteFixture()
	seedCliente(repo, opticaA, 111)
	objetivo := seedCliente(repo, opticaA, 222)

	dni := int64(111)
	_, err := svc.Actualizar(context.Background(), opticaA, objetivo.ID, dto.ActualizarClienteRequest{DNI: &dni})
	assert.True(t, apierror.IsKind(err, apierror.KindIntegrity))
	assert.Equal(t, int64(222), objetivo.DNI)
}

func TestActualizarCliente_MismoDNIEnOtraOpticaPermitido(t *testing.T) {
	svc, repo := newClienteFixture()
	seedCliente(repo, opticaB, 111)
	objetivo := seedCliente(repo, opticaA, 222)

	dni := int64(111)
	resp, err := svc.Actualizar(context.Background(), opticaA, objetivo.ID, dto.ActualizarClienteRequest{DNI: &dni})
	require.NoError(t, err)
	assert.Equal(t, int64(111), resp.DNI)
}

func TestActualizarCliente_PatchParcial(t *testing.T) {
	svc, repo := newClienteFixture()
	c := seedCliente(repo, opticaA, 333)
	tel := "11-5555-0000"

	resp, err := svc.Actualizar(context.Background(), opticaA, c.ID, dto.ActualizarClienteRequest{Telefono: &tel})
	require.NoError(t, err)
	assert.Equal(t, "Marta", resp.Nombre)
	require.NotNil(t, resp.Telefono)
	assert.Equal(t, tel, *resp.Telefono)
}

func TestEliminarCliente_EsSoftDelete(t *testing.T) {
	svc, repo := newClienteFixture()
	c := seedCliente(repo, opticaA, 444)

	require.NoError(t, svc.Eliminar(context.Background(), opticaA, c.ID))
	assert.False(t, c.Activo)

	// The row survives and keeps being readable.
	resp, err := svc.ObtenerPorID(context.Background(), opticaA, c.ID)
	require.NoError(t, err)
	assert.False(t, resp.Activo)
}

func TestCliente_AisladoPorOptica(t *testing.T) {
	svc, repo := newClienteFixture()
	c := seedCliente(repo, opticaA, 555)

	_, err := svc.ObtenerPorID(context.Background(), opticaB, c.ID)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	err = svc.Eliminar(context.Background(), opticaB, c.ID)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.True(t, c.Activo)
}
