package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a completed sale. Sales are attributed to the day's register by
// fecha alone — there is no foreign key to CajaDiaria.
// Tipo: "producto" | "servicio" | "sublimacion"
// MetodoPago: "efectivo" | "transferencia"
type Venta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       time.Time       `gorm:"type:date;index;not null"`
	Tipo        string          `gorm:"type:varchar(20);not null;index"`
	MetodoPago  string          `gorm:"type:varchar(20);not null;default:'efectivo'"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion *string
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

// VentaItem is one line of a sale. ProductoID is nil for service and
// sublimation lines, which carry only a description and a unit price.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     *uuid.UUID      `gorm:"type:uuid;index"`
	Descripcion    string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
