package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CajaDiaria is the till record for one business day.
// At most one row per fecha; it is created open (saldo_cierre NULL) and
// closed exactly once by setting saldo_cierre + cerrada_at.
type CajaDiaria struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha time.Time `gorm:"type:date;uniqueIndex;not null"`
	// SaldoInicial is immutable after creation.
	SaldoInicial decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	SaldoCierre  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CerradaAt    *time.Time
	CreatedAt    time.Time

	Recargas []Recarga `gorm:"foreignKey:CajaDiariaID"`
}

// Abierta reports whether the register still accepts movements.
func (c *CajaDiaria) Abierta() bool { return c.SaldoCierre == nil }

func (CajaDiaria) TableName() string { return "cajas_diarias" }

// Recarga is a manual cash outflow against the open register (phone-recharge
// float purchases, provider payouts). Entries are immutable — no update or
// delete exists anywhere in the codebase; corrections are new entries.
type Recarga struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaDiariaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Descripcion  string    `gorm:"not null"`
	// Monto is always positive; it is subtracted from the register balance.
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null;default:'efectivo'"` // efectivo | transferencia
	CreatedAt  time.Time
}
