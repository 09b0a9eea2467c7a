package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRecetaRequest struct {
	ClienteID   string  `json:"cliente_id"   validate:"required,uuid"`
	FechaReceta string  `json:"fecha_receta" validate:"required,datetime=2006-01-02"`
	Profesional *string `json:"profesional"`
	TipoLente   *string `json:"tipo_lente"`

	ODEsfera   *float64 `json:"od_esfera"`
	ODCilindro *float64 `json:"od_cilindro"`
	ODEje      *int     `json:"od_eje"`

	OIEsfera   *float64 `json:"oi_esfera"`
	OICilindro *float64 `json:"oi_cilindro"`
	OIEje      *int     `json:"oi_eje"`

	Adicion *float64 `json:"adicion"`
	DP      *float64 `json:"dp"`

	Observaciones *string `json:"observaciones"`
	// Estado defaults to ACTIVA; normalized and validated against the fixed set.
	Estado *string `json:"estado"`
}

// ActualizarRecetaRequest is the allow-listed PATCH body. The cliente binding
// is immutable; a receta never moves between clients.
type ActualizarRecetaRequest struct {
	Profesional *string `json:"profesional"`
	TipoLente   *string `json:"tipo_lente"`

	ODEsfera   *float64 `json:"od_esfera"`
	ODCilindro *float64 `json:"od_cilindro"`
	ODEje      *int     `json:"od_eje"`

	OIEsfera   *float64 `json:"oi_esfera"`
	OICilindro *float64 `json:"oi_cilindro"`
	OIEje      *int     `json:"oi_eje"`

	Adicion *float64 `json:"adicion"`
	DP      *float64 `json:"dp"`

	Observaciones *string `json:"observaciones"`
	Estado        *string `json:"estado"`
}

type ActualizarEstadoRecetaRequest struct {
	Estado        string  `json:"estado" validate:"required"`
	Observaciones *string `json:"observaciones"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// RecetaFilter. OrderBy must be one of: id, fecha_receta, estado, tipo_lente,
// profesional, cliente_apellido, cliente_nombre, dni.
type RecetaFilter struct {
	Q             string `form:"q"`
	ClienteID     string `form:"cliente_id"`
	DNI           *int64 `form:"dni"`
	ActivoCliente *bool  `form:"activo_cliente"`
	Estado        string `form:"estado"`
	TipoLente     string `form:"tipo_lente"`
	Profesional   string `form:"profesional"`
	FechaDesde    string `form:"fecha_desde"  validate:"omitempty,datetime=2006-01-02"`
	FechaHasta    string `form:"fecha_hasta"  validate:"omitempty,datetime=2006-01-02"`
	OrderBy       string `form:"order_by,default=fecha_receta"`
	OrderDir      string `form:"order_dir,default=desc"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
	Offset        int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecetaResponse struct {
	ID          string  `json:"id"`
	ClienteID   string  `json:"cliente_id"`
	FechaReceta string  `json:"fecha_receta"`
	Profesional *string `json:"profesional"`
	TipoLente   *string `json:"tipo_lente"`

	ODEsfera   *float64 `json:"od_esfera"`
	ODCilindro *float64 `json:"od_cilindro"`
	ODEje      *int     `json:"od_eje"`

	OIEsfera   *float64 `json:"oi_esfera"`
	OICilindro *float64 `json:"oi_cilindro"`
	OIEje      *int     `json:"oi_eje"`

	Adicion *float64 `json:"adicion"`
	DP      *float64 `json:"dp"`

	Observaciones *string `json:"observaciones"`
	Estado        string  `json:"estado"`
}

type RecetaListItem struct {
	ID              string  `json:"id"`
	ClienteID       string  `json:"cliente_id"`
	ClienteNombre   string  `json:"cliente_nombre"`
	ClienteApellido string  `json:"cliente_apellido"`
	FechaReceta     string  `json:"fecha_receta"`
	Profesional     *string `json:"profesional"`
	TipoLente       *string `json:"tipo_lente"`
	Estado          string  `json:"estado"`
	Observaciones   *string `json:"observaciones"`
}

type RecetaListResponse struct {
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Items  []RecetaListItem `json:"items"`
}
