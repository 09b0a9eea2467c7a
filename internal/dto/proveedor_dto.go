package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=191"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

// ActualizarProveedorRequest is the allow-listed partial update.
type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=191"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
	Activo    *bool   `json:"activo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProveedorFilter. OrderBy must be one of: id, nombre, email, telefono.
type ProveedorFilter struct {
	Q        string `form:"q"`
	Activo   *bool  `form:"activo"`
	OrderBy  string `form:"order_by,default=nombre"`
	OrderDir string `form:"order_dir,default=asc"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
	Offset   int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}

type ProveedorListResponse struct {
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Items  []ProveedorResponse `json:"items"`
}
