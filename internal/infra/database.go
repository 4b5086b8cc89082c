package infra

import (
	"fmt"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches GORM
// cannot express (partial indexes, check constraints).
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
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus the manual schema patches. Also used
// by integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Empresa{},
		&model.Usuario{},
		&model.Categoria{},
		&model.Marca{},
		&model.Unidade{},
		&model.MetodoPagamento{},
		&model.Produto{},
		&model.Caixa{},
		&model.Transacao{},
		&model.ItemTransacao{},
		&model.Estoque{},
		&model.EstoqueMovimentacao{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open register per operator, enforced at the database
		// even if application checks race.
		{"unique open caixa per operator", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_caixa_aberto_por_usuario') THEN
    CREATE UNIQUE INDEX uni_caixa_aberto_por_usuario
        ON caixas_dia (usuario_id)
        WHERE status = 'aberto';
  END IF;
END $$`},
		// One active stock record per product.
		{"unique active estoque per product", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_estoque_ativo_por_produto') THEN
    CREATE UNIQUE INDEX uni_estoque_ativo_por_produto
        ON estoques (produto_id)
        WHERE status = 'ativo';
  END IF;
END $$`},
		// The cached quantity can never go negative, whatever the app does.
		{"non-negative estoque quantity", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_estoques_quantidade_nao_negativa') THEN
    ALTER TABLE estoques
      ADD CONSTRAINT chk_estoques_quantidade_nao_negativa CHECK (quantidade >= 0);
  END IF;
END $$`},
		// Movement log is queried per stock record, newest first.
		{"estoque_movimentacoes listing index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimentacoes_estoque_created') THEN
    CREATE INDEX idx_movimentacoes_estoque_created
        ON estoque_movimentacoes (estoque_id, created_at DESC);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
