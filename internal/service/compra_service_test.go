package service

import (
	"context"
	"testing"

	"optigest/internal/apierror"
	"optigest/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompraFixture() (CompraService, *stubCompraRepo, *stubInsumoRepo, *stubProveedorRepo) {
	compraRepo := newStubCompraRepo()
	insumoRepo := newStubInsumoRepo()
	proveedorRepo := newStubProveedorRepo()
	svc := NewCompraService(compraRepo, insumoRepo, proveedorRepo)
	return svc, compraRepo, insumoRepo, proveedorRepo
}

func TestCrearCompra_SumaStockYRecalculaTotal(t *testing.T) {
	svc, compraRepo, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	// One tracked supply, one never stocked and without cost price.
	conStock := seedInsumo(insumoRepo, opticaA, intPtr(5), decPtr(decimal.NewFromInt(900)))
	sinStock := seedInsumo(insumoRepo, opticaA, nil, nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items: []dto.ItemCompraRequest{
			{InsumoID: conStock.ID.String(), Cantidad: 3, PrecioUnitario: decimal.NewFromInt(1000)},
			{InsumoID: sinStock.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromFloat(250.50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CantidadItems)
	// 3×1000 + 2×250.50
	assert.True(t, resp.MontoTotal.Equal(decimal.NewFromFloat(3501)),
		"monto_total recalculado: esperado 3501, obtuvo %s", resp.MontoTotal)

	assert.Equal(t, 8, *conStock.StockActual)
	// Untracked stock starts from zero.
	require.NotNil(t, sinStock.StockActual)
	assert.Equal(t, 2, *sinStock.StockActual)

	// Cost price seeded only where it was missing.
	assert.True(t, conStock.PrecioCosto.Equal(decimal.NewFromInt(900)))
	require.NotNil(t, sinStock.PrecioCosto)
	assert.True(t, sinStock.PrecioCosto.Equal(decimal.NewFromFloat(250.50)))

	compra, err := compraRepo.FindByID(context.Background(), opticaA, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Len(t, compra.Detalles, 2)
	assert.True(t, compra.Detalles[0].Subtotal.Equal(decimal.NewFromInt(3000)))
}

func TestCrearCompra_ProveedorInactivoRechazado(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, false)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)}},
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
}

func TestCrearCompra_InsumoDeOtraOpticaRechazado(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	ajeno := seedInsumo(insumoRepo, opticaB, intPtr(10), nil)

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: ajeno.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)}},
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	// Nothing was applied to the foreign row.
	assert.Equal(t, 10, *ajeno.StockActual)
}

func TestCrearCompra_InsumoRepetidoRechazado(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	_, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items: []dto.ItemCompraRequest{
			{InsumoID: insumo.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)},
			{InsumoID: insumo.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromInt(10)},
		},
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	assert.Equal(t, 0, *insumo.StockActual)
}

func TestAnularCompra_RevierteStockExactamente(t *testing.T) {
	svc, compraRepo, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(5), decPtr(decimal.NewFromInt(100)))

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 7, PrecioUnitario: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)
	require.Equal(t, 12, *insumo.StockActual)

	id := uuid.MustParse(resp.ID)
	motivo := "factura errónea"
	anulada, err := svc.Anular(context.Background(), opticaA, id, dto.AnularCompraRequest{Motivo: &motivo})
	require.NoError(t, err)

	assert.Equal(t, 5, *insumo.StockActual)
	assert.True(t, anulada.Anulada)
	require.NotNil(t, anulada.MotivoAnulacion)
	assert.Equal(t, motivo, *anulada.MotivoAnulacion)
	assert.NotNil(t, anulada.FechaAnulacion)

	compra, _ := compraRepo.FindByID(context.Background(), opticaA, id)
	assert.True(t, compra.Anulada)
}

func TestAnularCompra_DobleAnulacionConflicto(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 4, PrecioUnitario: decimal.NewFromInt(50)}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.Anular(context.Background(), opticaA, id, dto.AnularCompraRequest{})
	require.NoError(t, err)
	require.Equal(t, 0, *insumo.StockActual)

	_, err = svc.Anular(context.Background(), opticaA, id, dto.AnularCompraRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	// Second void must not deduct again.
	assert.Equal(t, 0, *insumo.StockActual)
}

func TestAnularCompra_StockNegativoRechazado(t *testing.T) {
	svc, compraRepo, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 6, PrecioUnitario: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// The purchased units were already consumed elsewhere.
	stock := 2
	insumo.StockActual = &stock

	_, err = svc.Anular(context.Background(), opticaA, id, dto.AnularCompraRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	assert.Equal(t, 2, *insumo.StockActual)
	compra, _ := compraRepo.FindByID(context.Background(), opticaA, id)
	assert.False(t, compra.Anulada)
}

func TestActualizarCompra_AnuladaEsInmutable(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(10), nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.Anular(context.Background(), opticaA, id, dto.AnularCompraRequest{})
	require.NoError(t, err)

	obs := "ajuste tardío"
	_, err = svc.Actualizar(context.Background(), opticaA, id, dto.ActualizarCompraRequest{Observaciones: &obs})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestActualizarCompra_SinCamposRechazado(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	_, err = svc.Actualizar(context.Background(), opticaA, uuid.MustParse(resp.ID), dto.ActualizarCompraRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalid))
	assert.Contains(t, err.Error(), "No se enviaron campos")
}

func TestCompra_AisladaPorOptica(t *testing.T) {
	svc, _, insumoRepo, proveedorRepo := newCompraFixture()
	prov := seedProveedor(proveedorRepo, opticaA, true)
	insumo := seedInsumo(insumoRepo, opticaA, intPtr(0), nil)

	resp, err := svc.Crear(context.Background(), opticaA, dto.CrearCompraRequest{
		ProveedorID: prov.ID.String(),
		FechaCompra: "2025-04-01",
		Items:       []dto.ItemCompraRequest{{InsumoID: insumo.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.ObtenerPorID(context.Background(), opticaB, id)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	_, err = svc.Anular(context.Background(), opticaB, id, dto.AnularCompraRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.Equal(t, 1, *insumo.StockActual)
}
