package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is a business expense. Like sales, expenses join the day's register
// purely by fecha.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       time.Time       `gorm:"type:date;index;not null"`
	Categoria   string          `gorm:"not null"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsuarioID   uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}
