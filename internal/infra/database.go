package infra

import (
	"fmt"

	"optigest/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes, CHECK constraints).
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

	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Receta{},
		&model.Proveedor{},
		&model.Insumo{},
		&model.CompraInsumo{},
		&model.DetalleCompra{},
		&model.PedidoLaboratorio{},
		&model.DetallePedidoLab{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches covers the DDL GORM tags cannot express. Every statement
// uses IF NOT EXISTS (or an existence guard) so re-running on an already
// patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{
			// Optional code, unique per optica only when present.
			"partial unique index on insumos.codigo_interno",
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_insumos_optica_codigo_interno
			 ON insumos (optica_id, codigo_interno)
			 WHERE codigo_interno IS NOT NULL`,
		},
		{
			"partial unique index on pedidos_laboratorio.nro_orden_lab",
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_pedidos_optica_nro_orden
			 ON pedidos_laboratorio (optica_id, nro_orden_lab)
			 WHERE nro_orden_lab IS NOT NULL`,
		},
		{
			// Last line of defense for the non-negative stock invariant; the
			// service layer enforces it first under row locks.
			"check constraint on insumos.stock_actual",
			`DO $$
			 BEGIN
			   IF NOT EXISTS (
			     SELECT 1 FROM pg_constraint WHERE conname = 'ck_insumos_stock_no_negativo'
			   ) THEN
			     ALTER TABLE insumos ADD CONSTRAINT ck_insumos_stock_no_negativo
			       CHECK (stock_actual IS NULL OR stock_actual >= 0);
			   END IF;
			 END $$`,
		},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
