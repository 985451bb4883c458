package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrabajoLitografia is a printing-shop job tracked with partial payments.
// Estado: "pendiente" | "entregado"
type TrabajoLitografia struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       time.Time       `gorm:"type:date;index;not null"`
	Cliente     string          `gorm:"not null"`
	Descripcion string          `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Abonado accumulates partial payments; it never exceeds Precio.
	Abonado   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Abonos []AbonoLitografia `gorm:"foreignKey:TrabajoID"`
}

func (TrabajoLitografia) TableName() string { return "trabajos_litografia" }

// AbonoLitografia is one partial payment on a printing job. Immutable.
type AbonoLitografia struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TrabajoID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

func (AbonoLitografia) TableName() string { return "abonos_litografia" }
