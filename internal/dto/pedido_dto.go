package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	InsumoID       string          `json:"insumo_id"       validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	Observaciones  *string         `json:"observaciones"`
}

type CrearPedidoRequest struct {
	RecetaID         string              `json:"receta_id"          validate:"required,uuid"`
	ProveedorID      string              `json:"proveedor_id"       validate:"required,uuid"`
	FechaEnvio       *string             `json:"fecha_envio"        validate:"omitempty,datetime=2006-01-02"`
	FechaEstimadaRec *string             `json:"fecha_estimada_rec" validate:"omitempty,datetime=2006-01-02"`
	// Estado defaults to ENVIADO; normalized and validated against the fixed set.
	Estado        *string             `json:"estado"`
	NroOrdenLab   *string             `json:"nro_orden_lab"`
	Observaciones *string             `json:"observaciones"`
	Items         []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
}

// ActualizarPedidoRequest is the allow-listed header PATCH. An embedded estado
// change obeys the same RECIBIDO-terminal guard as the dedicated endpoint.
type ActualizarPedidoRequest struct {
	Estado           *string `json:"estado"`
	NroOrdenLab      *string `json:"nro_orden_lab"`
	FechaEstimadaRec *string `json:"fecha_estimada_rec" validate:"omitempty,datetime=2006-01-02"`
	Observaciones    *string `json:"observaciones"`
}

type ActualizarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// RecepcionarPedidoRequest marks the order received. DescontarStock nil means
// true (the caller must opt out of deduction explicitly).
type RecepcionarPedidoRequest struct {
	FechaRecepcion *string `json:"fecha_recepcion" validate:"omitempty,datetime=2006-01-02"`
	Estado         *string `json:"estado"`
	NroOrdenLab    *string `json:"nro_orden_lab"`
	Observaciones  *string `json:"observaciones"`
	DescontarStock *bool   `json:"descontar_stock"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// PedidoFilter. OrderBy must be one of: id, fecha_envio, fecha_estimada_rec,
// fecha_recepcion, estado, nro_orden_lab, proveedor_id, receta_id.
type PedidoFilter struct {
	Q           string `form:"q"`
	ProveedorID string `form:"proveedor_id"`
	RecetaID    string `form:"receta_id"`
	Estado      string `form:"estado"`
	FechaDesde  string `form:"fecha_desde"  validate:"omitempty,datetime=2006-01-02"`
	FechaHasta  string `form:"fecha_hasta"  validate:"omitempty,datetime=2006-01-02"`
	OrderBy     string `form:"order_by,default=fecha_envio"`
	OrderDir    string `form:"order_dir,default=desc"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
	Offset      int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CrearPedidoResponse struct {
	ID            string `json:"id"`
	RecetaID      string `json:"receta_id"`
	ProveedorID   string `json:"proveedor_id"`
	Estado        string `json:"estado"`
	CantidadItems int    `json:"cantidad_items"`
}

type DetallePedidoResponse struct {
	ID                string          `json:"id"`
	InsumoID          string          `json:"insumo_id"`
	DescripcionInsumo *string         `json:"descripcion_insumo"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Observaciones     *string         `json:"observaciones"`
}

type PedidoResponse struct {
	ID               string  `json:"id"`
	RecetaID         string  `json:"receta_id"`
	ProveedorID      string  `json:"proveedor_id"`
	ProveedorNombre  *string `json:"proveedor_nombre"`
	FechaEnvio       *string `json:"fecha_envio"`
	FechaEstimadaRec *string `json:"fecha_estimada_rec"`
	FechaRecepcion   *string `json:"fecha_recepcion"`
	Estado           string  `json:"estado"`
	NroOrdenLab      *string `json:"nro_orden_lab"`
	Observaciones    *string `json:"observaciones"`

	Detalles []DetallePedidoResponse `json:"detalles,omitempty"`
}

type PedidoListResponse struct {
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Items  []PedidoResponse `json:"items"`
}

type RecepcionResponse struct {
	ID             string `json:"id"`
	FechaRecepcion string `json:"fecha_recepcion"`
	Estado         string `json:"estado"`
	DescontarStock bool   `json:"descontar_stock"`
}
