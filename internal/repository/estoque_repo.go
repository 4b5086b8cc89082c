package repository

import (
	"context"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EstoqueRepository interface {
	// FindAtivoPorProdutoTx loads the active stock record of a product inside
	// the movement transaction. With lock=true the row is read FOR UPDATE so
	// two concurrent saídas cannot both pass the insufficiency check against
	// a stale quantity.
	FindAtivoPorProdutoTx(tx *gorm.DB, produtoID uuid.UUID, lock bool) (*model.Estoque, error)
	CreateTx(tx *gorm.DB, e *model.Estoque) error
	AtualizarQuantidadeTx(tx *gorm.DB, id uuid.UUID, quantidade int) error
	// CreateMovimentacaoTx appends one immutable ledger row. There is no
	// update or delete counterpart on purpose.
	CreateMovimentacaoTx(tx *gorm.DB, m *model.EstoqueMovimentacao) error

	FindByIDComProduto(ctx context.Context, id uuid.UUID) (*model.Estoque, error)
	ListMovimentacoes(ctx context.Context, estoqueID uuid.UUID) ([]model.EstoqueMovimentacao, error)
	ListAll(ctx context.Context) ([]model.Estoque, error)

	DB() *gorm.DB
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) FindAtivoPorProdutoTx(tx *gorm.DB, produtoID uuid.UUID, lock bool) (*model.Estoque, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var e model.Estoque
	err := q.Where("produto_id = ? AND status = ?", produtoID, model.EstoqueAtivo).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estoqueRepo) CreateTx(tx *gorm.DB, e *model.Estoque) error {
	return tx.Create(e).Error
}

func (r *estoqueRepo) AtualizarQuantidadeTx(tx *gorm.DB, id uuid.UUID, quantidade int) error {
	return tx.Model(&model.Estoque{}).Where("id = ?", id).Update("quantidade", quantidade).Error
}

func (r *estoqueRepo) CreateMovimentacaoTx(tx *gorm.DB, m *model.EstoqueMovimentacao) error {
	return tx.Create(m).Error
}

func (r *estoqueRepo) FindByIDComProduto(ctx context.Context, id uuid.UUID) (*model.Estoque, error) {
	var e model.Estoque
	err := r.db.WithContext(ctx).
		Preload("Produto").
		Preload("Produto.Categoria").
		Preload("Produto.Unidade").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estoqueRepo) ListMovimentacoes(ctx context.Context, estoqueID uuid.UUID) ([]model.EstoqueMovimentacao, error) {
	var movs []model.EstoqueMovimentacao
	err := r.db.WithContext(ctx).
		Where("estoque_id = ?", estoqueID).
		Order("created_at DESC").
		Find(&movs).Error
	return movs, err
}

func (r *estoqueRepo) ListAll(ctx context.Context) ([]model.Estoque, error) {
	var estoques []model.Estoque
	err := r.db.WithContext(ctx).
		Preload("Produto").
		Preload("Produto.Categoria").
		Preload("Produto.Marca").
		Find(&estoques).Error
	return estoques, err
}

func (r *estoqueRepo) DB() *gorm.DB { return r.db }
