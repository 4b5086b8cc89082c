package repository

import (
	"context"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransacaoRepository interface {
	CreateTx(tx *gorm.DB, t *model.Transacao) error
	CreateItemTx(tx *gorm.DB, item *model.ItemTransacao) error
	// FindByIDComItens preloads line items and their products.
	FindByIDComItens(ctx context.Context, id uuid.UUID) (*model.Transacao, error)
	// ListPorCaixa returns every transaction of a register with items,
	// products, categories and payment methods preloaded (reporting reads).
	ListPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Transacao, error)
	UpdateTx(tx *gorm.DB, t *model.Transacao) error
	// CancelarItensTx flips every line item of the transaction to cancelada.
	CancelarItensTx(tx *gorm.DB, transacaoID uuid.UUID) error

	DB() *gorm.DB
}

type transacaoRepo struct{ db *gorm.DB }

func NewTransacaoRepository(db *gorm.DB) TransacaoRepository { return &transacaoRepo{db: db} }

func (r *transacaoRepo) CreateTx(tx *gorm.DB, t *model.Transacao) error {
	return tx.Create(t).Error
}

func (r *transacaoRepo) CreateItemTx(tx *gorm.DB, item *model.ItemTransacao) error {
	return tx.Create(item).Error
}

func (r *transacaoRepo) FindByIDComItens(ctx context.Context, id uuid.UUID) (*model.Transacao, error) {
	var t model.Transacao
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("MetodoPagamento").
		Preload("MetodoPagamento2").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transacaoRepo) ListPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Transacao, error) {
	var transacoes []model.Transacao
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Produto.Categoria").
		Preload("MetodoPagamento").
		Preload("MetodoPagamento2").
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&transacoes).Error
	return transacoes, err
}

func (r *transacaoRepo) UpdateTx(tx *gorm.DB, t *model.Transacao) error {
	return tx.Save(t).Error
}

func (r *transacaoRepo) CancelarItensTx(tx *gorm.DB, transacaoID uuid.UUID) error {
	return tx.Model(&model.ItemTransacao{}).
		Where("transacao_id = ?", transacaoID).
		Update("status", model.TransacaoCancelada).Error
}

func (r *transacaoRepo) DB() *gorm.DB { return r.db }
