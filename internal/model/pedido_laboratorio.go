package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PedidoLaboratorio is a fabrication request sent to an external lab against
// one prescription. Stock is only consumed at receipt; FechaRecepcion set
// means "received exactly once"; receipt fields become immutable.
type PedidoLaboratorio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID    string    `gorm:"not null;index"`
	RecetaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`

	FechaEnvio       *time.Time `gorm:"type:date"`
	FechaEstimadaRec *time.Time `gorm:"type:date"`
	FechaRecepcion   *time.Time `gorm:"type:date"`

	Estado string `gorm:"not null;default:'ENVIADO'"`
	// NroOrdenLab is unique per optica when set (partial index, SQL patch).
	NroOrdenLab   *string
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Receta    *Receta            `gorm:"foreignKey:RecetaID"`
	Proveedor *Proveedor         `gorm:"foreignKey:ProveedorID"`
	Detalles  []DetallePedidoLab `gorm:"foreignKey:PedidoID"`
}

func (PedidoLaboratorio) TableName() string { return "pedidos_laboratorio" }

// DetallePedidoLab is one lab-order line.
type DetallePedidoLab struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID string    `gorm:"not null;index;uniqueIndex:uq_detalle_pedido_lab"`
	PedidoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_detalle_pedido_lab"`
	InsumoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_detalle_pedido_lab"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observaciones  *string

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (DetallePedidoLab) TableName() string { return "detalles_pedido_laboratorio" }
