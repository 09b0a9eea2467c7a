package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompraInsumo is a supplier invoice event: header plus detail lines, created
// atomically. MontoTotal is always recomputed from the lines, never taken
// from caller input. Once Anulada the header is immutable except for the
// void metadata, and its lines can never again affect stock.
type CompraInsumo struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID        string    `gorm:"not null;index"`
	ProveedorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaCompra     time.Time `gorm:"type:date;not null"`
	TipoComprobante *string
	NroComprobante  *string
	Observaciones   *string
	MontoTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Anulada         bool `gorm:"not null;default:false"`
	MotivoAnulacion *string
	FechaAnulacion  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Detalles  []DetalleCompra `gorm:"foreignKey:CompraID"`
}

func (CompraInsumo) TableName() string { return "compras_insumos" }

// DetalleCompra is one purchase line. Subtotal = Cantidad × PrecioUnitario,
// computed at creation.
type DetalleCompra struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID string    `gorm:"not null;index;uniqueIndex:uq_detalle_compra"`
	CompraID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_detalle_compra"`
	InsumoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_detalle_compra"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (DetalleCompra) TableName() string { return "detalles_compra_insumos" }
