package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemCompraRequest struct {
	InsumoID       string          `json:"insumo_id"       validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CrearCompraRequest struct {
	ProveedorID     string              `json:"proveedor_id"     validate:"required,uuid"`
	FechaCompra     string              `json:"fecha_compra"     validate:"required,datetime=2006-01-02"`
	TipoComprobante *string             `json:"tipo_comprobante"`
	NroComprobante  *string             `json:"nro_comprobante"`
	Observaciones   *string             `json:"observaciones"`
	Items           []ItemCompraRequest `json:"items"            validate:"required,min=1,dive"`
}

// ActualizarCompraRequest patches header-only fields; rejected once anulada.
type ActualizarCompraRequest struct {
	FechaCompra     *string `json:"fecha_compra" validate:"omitempty,datetime=2006-01-02"`
	TipoComprobante *string `json:"tipo_comprobante"`
	NroComprobante  *string `json:"nro_comprobante"`
	Observaciones   *string `json:"observaciones"`
}

type AnularCompraRequest struct {
	Motivo *string `json:"motivo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// CompraFilter. OrderBy must be one of: fecha_compra, monto_total, id.
type CompraFilter struct {
	Q           string `form:"q"`
	ProveedorID string `form:"proveedor_id"`
	Anulada     *bool  `form:"anulada"`
	FechaDesde  string `form:"fecha_desde"  validate:"omitempty,datetime=2006-01-02"`
	FechaHasta  string `form:"fecha_hasta"  validate:"omitempty,datetime=2006-01-02"`
	OrderBy     string `form:"order_by,default=fecha_compra"`
	OrderDir    string `form:"order_dir,default=desc"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
	Offset      int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CrearCompraResponse struct {
	ID            string          `json:"id"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	CantidadItems int             `json:"cantidad_items"`
}

type DetalleCompraResponse struct {
	ID                string          `json:"id"`
	InsumoID          string          `json:"insumo_id"`
	DescripcionInsumo *string         `json:"descripcion_insumo"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID              string          `json:"id"`
	ProveedorID     string          `json:"proveedor_id"`
	FechaCompra     string          `json:"fecha_compra"`
	TipoComprobante *string         `json:"tipo_comprobante"`
	NroComprobante  *string         `json:"nro_comprobante"`
	Observaciones   *string         `json:"observaciones"`
	MontoTotal      decimal.Decimal `json:"monto_total"`
	Anulada         bool            `json:"anulada"`
	MotivoAnulacion *string         `json:"motivo_anulacion"`
	FechaAnulacion  *string         `json:"fecha_anulacion"`

	Detalles []DetalleCompraResponse `json:"detalles,omitempty"`
}

type CompraListResponse struct {
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Items  []CompraResponse `json:"items"`
}
