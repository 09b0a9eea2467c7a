package model

import (
	"sort"
	"strings"
)

// Receta states. EN_LABORATORIO is entered automatically when a lab order is
// created against an ACTIVA prescription.
const (
	RecetaActiva        = "ACTIVA"
	RecetaEnLaboratorio = "EN_LABORATORIO"
	RecetaCerrada       = "CERRADA"
	RecetaAnulada       = "ANULADA"
)

// Pedido de laboratorio states. RECIBIDO is terminal: the only accepted
// transition out of it is the no-op RECIBIDO → RECIBIDO.
const (
	PedidoPendiente = "PENDIENTE"
	PedidoEnviado   = "ENVIADO"
	PedidoEnProceso = "EN_PROCESO"
	PedidoRecibido  = "RECIBIDO"
	PedidoCancelado = "CANCELADO"
)

var estadosReceta = map[string]bool{
	RecetaActiva:        true,
	RecetaEnLaboratorio: true,
	RecetaCerrada:       true,
	RecetaAnulada:       true,
}

var estadosPedido = map[string]bool{
	PedidoPendiente: true,
	PedidoEnviado:   true,
	PedidoEnProceso: true,
	PedidoRecibido:  true,
	PedidoCancelado: true,
}

// NormalizarEstado canonicalizes caller-supplied status strings before
// validation: surrounding whitespace stripped, upper-cased.
func NormalizarEstado(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func EstadoRecetaValido(s string) bool { return estadosReceta[s] }

func EstadoPedidoValido(s string) bool { return estadosPedido[s] }

// EstadosReceta returns the valid receta states sorted, for error messages.
func EstadosReceta() []string { return sortedKeys(estadosReceta) }

// EstadosPedido returns the valid pedido states sorted, for error messages.
func EstadosPedido() []string { return sortedKeys(estadosPedido) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
