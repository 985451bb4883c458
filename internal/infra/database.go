package infra

import (
	"fmt"

	"github.com/Josechaparro09/Papeleria-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for every entity. The schema is small enough that generated
// DDL is sufficient; the unique index on cajas_diarias.fecha is the one
// constraint the caja lifecycle relies on.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by the integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Producto{},
		&model.MovimientoStock{},
		&model.HistorialPrecio{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Gasto{},
		&model.CajaDiaria{},
		&model.Recarga{},
		&model.TrabajoLitografia{},
		&model.AbonoLitografia{},
	)
}
