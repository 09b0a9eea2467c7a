package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarEstado(t *testing.T) {
	assert.Equal(t, "RECIBIDO", NormalizarEstado("  recibido "))
	assert.Equal(t, "EN_LABORATORIO", NormalizarEstado("en_laboratorio"))
	assert.Equal(t, "", NormalizarEstado("   "))
}

func TestEstadosValidos(t *testing.T) {
	assert.True(t, EstadoRecetaValido(RecetaActiva))
	assert.False(t, EstadoRecetaValido("recibido"))
	assert.False(t, EstadoRecetaValido(""))

	assert.True(t, EstadoPedidoValido(PedidoRecibido))
	assert.False(t, EstadoPedidoValido("ACTIVA"))

	assert.Equal(t, []string{RecetaActiva, RecetaAnulada, RecetaCerrada, RecetaEnLaboratorio}, EstadosReceta())
	// Byte-wise sort: 'V' < '_', so ENVIADO precedes EN_PROCESO.
	assert.Equal(t, []string{PedidoCancelado, PedidoEnviado, PedidoEnProceso, PedidoPendiente, PedidoRecibido}, EstadosPedido())
}

func TestInsumoStockBajo(t *testing.T) {
	min, actual := 5, 5
	i := Insumo{StockMinimo: &min, StockActual: &actual}
	assert.True(t, i.StockBajo(), "en el umbral cuenta como bajo")

	actual = 6
	assert.False(t, i.StockBajo())

	// Untracked on either side means the predicate never fires.
	i = Insumo{StockMinimo: &min}
	assert.False(t, i.StockBajo())
	i = Insumo{StockActual: &actual}
	assert.False(t, i.StockBajo())
}
