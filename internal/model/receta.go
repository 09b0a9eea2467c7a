package model

import (
	"time"

	"github.com/google/uuid"
)

// Receta is an optical prescription tied to exactly one Cliente.
// Refractive measurements are per eye: OD (derecho) / OI (izquierdo).
type Receta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID    string    `gorm:"not null;index"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaReceta time.Time `gorm:"type:date;not null"`
	Profesional *string
	TipoLente   *string

	ODEsfera   *float64 `gorm:"column:od_esfera"`
	ODCilindro *float64 `gorm:"column:od_cilindro"`
	ODEje      *int     `gorm:"column:od_eje"`

	OIEsfera   *float64 `gorm:"column:oi_esfera"`
	OICilindro *float64 `gorm:"column:oi_cilindro"`
	OIEje      *int     `gorm:"column:oi_eje"`

	Adicion *float64
	DP      *float64 `gorm:"column:dp"`

	Observaciones    *string
	Estado           string     `gorm:"not null;default:'ACTIVA'"`
	FechaCreacionReg *time.Time `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente *Cliente            `gorm:"foreignKey:ClienteID"`
	Pedidos []PedidoLaboratorio `gorm:"foreignKey:RecetaID"`
}

func (Receta) TableName() string { return "recetas" }
