package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=1,max=120"`
	Apellido        string  `json:"apellido"         validate:"required,min=1,max=120"`
	DNI             int64   `json:"dni"              validate:"required,gt=0"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	Observaciones   *string `json:"observaciones"`
}

// ActualizarClienteRequest is an explicit allow-listed partial update: only
// the fields enumerated here can ever be written through PATCH.
type ActualizarClienteRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=1,max=120"`
	Apellido        *string `json:"apellido"         validate:"omitempty,min=1,max=120"`
	DNI             *int64  `json:"dni"              validate:"omitempty,gt=0"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	Observaciones   *string `json:"observaciones"`
	Activo          *bool   `json:"activo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ClienteFilter is bound from the query string of GET /v1/clientes/avanzado.
// OrderBy must be one of: nombre, apellido, dni, fecha_alta, id.
type ClienteFilter struct {
	Q          string `form:"q"`
	DNI        *int64 `form:"dni"`
	Activo     *bool  `form:"activo"`
	FechaDesde string `form:"fecha_desde" validate:"omitempty,datetime=2006-01-02"`
	FechaHasta string `form:"fecha_hasta" validate:"omitempty,datetime=2006-01-02"`
	OrderBy    string `form:"order_by,default=apellido"`
	OrderDir   string `form:"order_dir,default=asc"`
	Limit      int    `form:"limit,default=50"  validate:"min=1,max=200"`
	Offset     int    `form:"offset,default=0"  validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	DNI             int64   `json:"dni"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
	Direccion       *string `json:"direccion"`
	Observaciones   *string `json:"observaciones"`
	FechaAlta       string  `json:"fecha_alta"`
	Activo          bool    `json:"activo"`
}

type ClienteListResponse struct {
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Items  []ClienteResponse `json:"items"`
}

// SelectItem is the minimal shape for quick-pick dropdowns (cached).
type SelectItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
