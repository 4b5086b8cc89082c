package repository

import (
	"context"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaRepository is the data access contract for daily registers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	// FindAbertoPorUsuario returns the open register of an operator regardless
	// of the day it was opened (the state check needs stale ones too).
	FindAbertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caixa, error)
	// FindPorUsuarioNoDia returns the most recent register of the operator
	// opened on the given calendar day, any status.
	FindPorUsuarioNoDia(ctx context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error)
	// FindAbertoPorIDEUsuario loads a register filtered by (id, operator,
	// status=aberto) — the sale/cancel precondition.
	FindAbertoPorIDEUsuario(ctx context.Context, id, usuarioID uuid.UUID) (*model.Caixa, error)
	ListAll(ctx context.Context) ([]model.Caixa, error)
	Update(ctx context.Context, c *model.Caixa) error

	// Used inside sale/cancel transactions — callers must pass the tx instance.
	SomarValorTotalTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindAbertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND status = ?", usuarioID, model.CaixaAberto).
		Order("aberto_em DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindPorUsuarioNoDia(ctx context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fim := inicio.AddDate(0, 0, 1)

	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND aberto_em >= ? AND aberto_em < ?", usuarioID, inicio, fim).
		Order("aberto_em DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindAbertoPorIDEUsuario(ctx context.Context, id, usuarioID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ? AND status = ?", id, usuarioID, model.CaixaAberto).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) ListAll(ctx context.Context) ([]model.Caixa, error) {
	var caixas []model.Caixa
	err := r.db.WithContext(ctx).Order("aberto_em DESC").Find(&caixas).Error
	return caixas, err
}

func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *caixaRepo) SomarValorTotalTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Caixa{}).Where("id = ?", id).
		Update("valor_total", gorm.Expr("valor_total + ?", delta)).Error
}

func (r *caixaRepo) DB() *gorm.DB { return r.db }
