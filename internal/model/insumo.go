package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a stocked inventory item (lens blanks, frames, consumables).
// StockActual nil means the item is not stock-tracked; once tracked it can
// never go negative (enforced in the purchase/lab-order workflows and by a
// CHECK constraint, see infra.applySchemaPatches).
type Insumo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID    string    `gorm:"not null;index"`
	Descripcion string    `gorm:"not null;index"`
	TipoInsumo  *string

	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`

	CodigoProveedor *string
	// CodigoInterno is unique per optica when set (partial index, SQL patch).
	CodigoInterno *string

	PrecioCosto    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PrecioSugerido *decimal.Decimal `gorm:"type:decimal(12,2)"`

	StockMinimo *int
	StockActual *int

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Insumo) TableName() string { return "insumos" }

// StockBajo is the derived low-stock predicate: only meaningful when both the
// threshold and the counter are tracked.
func (i *Insumo) StockBajo() bool {
	return i.StockMinimo != nil && i.StockActual != nil && *i.StockActual <= *i.StockMinimo
}
