package service

import (
	"context"
	"testing"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecetaFixture() (RecetaService, *stubRecetaRepo, *stubClienteRepo) {
	recetaRepo := newStubRecetaRepo()
	clienteRepo := newStubClienteRepo()
	return NewRecetaService(recetaRepo, clienteRepo), recetaRepo, clienteRepo
}

func TestCrearReceta_EstadoPorDefectoActiva(t *testing.T) {
	svc, _, clienteRepo := newRecetaFixture()
	cliente := seedCliente(clienteRepo, opticaA, 123)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearRecetaRequest{
		ClienteID:   cliente.ID.String(),
		FechaReceta: "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecetaActiva, resp.Estado)
	assert.Equal(t, "2025-03-10", resp.FechaReceta)
}

func TestCrearReceta_EstadoSeNormaliza(t *testing.T) {
	svc, _, clienteRepo := newRecetaFixture()
	cliente := seedCliente(clienteRepo, opticaA, 123)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearRecetaRequest{
		ClienteID:   cliente.ID.String(),
		FechaReceta: "2025-03-10",
		Estado:      strPtr("  cerrada "),
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecetaCerrada, resp.Estado)
}

func TestCrearReceta_EstadoInvalidoRechazado(t *testing.T) {
	svc, _, clienteRepo := newRecetaFixture()
	cliente := seedCliente(clienteRepo, opticaA, 123)

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearRecetaRequest{
		ClienteID:   cliente.ID.String(),
		FechaReceta: "2025-03-10",
		Estado:      strPtr("VENCIDA"),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	assert.Contains(t, err.Error(), model.RecetaActiva)
}

func TestCrearReceta_ClienteDeOtraOpticaRechazado(t *testing.T) {
	svc, _, clienteRepo := newRecetaFixture()
	ajeno := seedCliente(clienteRepo, opticaB, 123)

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearRecetaRequest{
		ClienteID:   ajeno.ID.String(),
		FechaReceta: "2025-03-10",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
}

func TestCrearReceta_ClienteInactivoRechazado(t *testing.T) {
	svc, _, clienteRepo := newRecetaFixture()
	cliente := seedCliente(clienteRepo, opticaA, 123)
	cliente.Activo = false

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearRecetaRequest{
		ClienteID:   cliente.ID.String(),
		FechaReceta: "2025-03-10",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	assert.Contains(t, err.Error(), "inactivo")
}

func TestActualizarEstadoReceta_Valida(t *testing.T) {
	svc, recetaRepo, _ := newRecetaFixture()
	receta := seedReceta(recetaRepo, opticaA, model.RecetaActiva)

	resp, err := svc.ActualizarEstado(context.Background(), opticaA, receta.ID, dto.ActualizarEstadoRecetaRequest{
		Estado: "anulada",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecetaAnulada, resp.Estado)

	_, err = svc.ActualizarEstado(context.Background(), opticaA, receta.ID, dto.ActualizarEstadoRecetaRequest{
		Estado: "ROTA",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
}

func TestActualizarReceta_PatchNoPisaCamposAjenos(t *testing.T) {
	svc, recetaRepo, _ := newRecetaFixture()
	receta := seedReceta(recetaRepo, opticaA, model.RecetaActiva)
	obs := "control en 6 meses"
	receta.Observaciones = &obs

	prof := "Dra. Ferreyra"
	resp, err := svc.Actualizar(context.Background(), opticaA, receta.ID, dto.ActualizarRecetaRequest{
		Profesional: &prof,
	})
	require.NoError(t, err)
	assert.Equal(t, prof, *resp.Profesional)
	require.NotNil(t, resp.Observaciones)
	assert.Equal(t, obs, *resp.Observaciones)
	assert.Equal(t, model.RecetaActiva, resp.Estado)
}
