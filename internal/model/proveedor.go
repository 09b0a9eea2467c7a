package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is a supplier or external lab, unique per (optica, nombre).
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID  string    `gorm:"not null;index;uniqueIndex:uq_proveedores_optica_nombre"`
	Nombre    string    `gorm:"not null;uniqueIndex:uq_proveedores_optica_nombre"`
	Telefono  *string
	Email     *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Insumos []Insumo            `gorm:"foreignKey:ProveedorID"`
	Compras []CompraInsumo      `gorm:"foreignKey:ProveedorID"`
	Pedidos []PedidoLaboratorio `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
