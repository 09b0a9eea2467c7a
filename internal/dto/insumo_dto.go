package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Descripcion     string           `json:"descripcion"      validate:"required,min=1"`
	TipoInsumo      *string          `json:"tipo_insumo"`
	ProveedorID     *string          `json:"proveedor_id"     validate:"omitempty,uuid"`
	CodigoProveedor *string          `json:"codigo_proveedor"`
	CodigoInterno   *string          `json:"codigo_interno"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo"`
	PrecioSugerido  *decimal.Decimal `json:"precio_sugerido"`
	StockMinimo     *int             `json:"stock_minimo"     validate:"omitempty,min=0"`
	StockActual     *int             `json:"stock_actual"     validate:"omitempty,min=0"`
}

// ActualizarInsumoRequest: stock_actual is deliberately absent; once created,
// the counter only moves through the compra / pedido workflows.
type ActualizarInsumoRequest struct {
	Descripcion     *string          `json:"descripcion"      validate:"omitempty,min=1"`
	TipoInsumo      *string          `json:"tipo_insumo"`
	ProveedorID     *string          `json:"proveedor_id"     validate:"omitempty,uuid"`
	CodigoProveedor *string          `json:"codigo_proveedor"`
	CodigoInterno   *string          `json:"codigo_interno"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo"`
	PrecioSugerido  *decimal.Decimal `json:"precio_sugerido"`
	StockMinimo     *int             `json:"stock_minimo"     validate:"omitempty,min=0"`
	Activo          *bool            `json:"activo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// InsumoFilter. OrderBy must be one of: descripcion, tipo_insumo,
// stock_actual, stock_minimo, precio_costo, precio_sugerido, id, proveedor_id.
type InsumoFilter struct {
	Q           string `form:"q"`
	Activo      *bool  `form:"activo"`
	ProveedorID string `form:"proveedor_id"`
	TipoInsumo  string `form:"tipo_insumo"`
	// ConStockBajo filters to insumos at or below their minimum threshold.
	ConStockBajo bool   `form:"con_stock_bajo"`
	OrderBy      string `form:"order_by,default=descripcion"`
	OrderDir     string `form:"order_dir,default=asc"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
	Offset       int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID              string           `json:"id"`
	Descripcion     string           `json:"descripcion"`
	TipoInsumo      *string          `json:"tipo_insumo"`
	ProveedorID     *string          `json:"proveedor_id"`
	CodigoProveedor *string          `json:"codigo_proveedor"`
	CodigoInterno   *string          `json:"codigo_interno"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo"`
	PrecioSugerido  *decimal.Decimal `json:"precio_sugerido"`
	StockMinimo     *int             `json:"stock_minimo"`
	StockActual     *int             `json:"stock_actual"`
	StockBajo       bool             `json:"stock_bajo"`
	Activo          bool             `json:"activo"`
}

type InsumoListResponse struct {
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Items  []InsumoResponse `json:"items"`
}

// InsumoSelectItem carries the extra fields the purchase/lab-order forms need
// when picking a supply.
type InsumoSelectItem struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	StockActual *int             `json:"stock_actual"`
	PrecioCosto *decimal.Decimal `json:"precio_costo"`
}
