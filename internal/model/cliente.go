package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a person record, unique per (optica, dni).
// Never hard-deleted: recetas keep referencing the row after deactivation.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpticaID        string    `gorm:"not null;index;uniqueIndex:uq_clientes_optica_dni"`
	Nombre          string    `gorm:"not null"`
	Apellido        string    `gorm:"not null;index"`
	DNI             int64     `gorm:"column:dni;not null;uniqueIndex:uq_clientes_optica_dni"`
	FechaNacimiento *time.Time `gorm:"type:date"`
	Telefono        *string
	Email           *string
	Direccion       *string
	Observaciones   *string
	FechaAlta       time.Time `gorm:"type:date;not null"`
	Activo          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Recetas []Receta `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }
