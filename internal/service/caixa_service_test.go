package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CaixaRepository ────────────────────────────────────────────────

type fakeCaixaRepo struct {
	caixas map[uuid.UUID]*model.Caixa
}

var _ repository.CaixaRepository = (*fakeCaixaRepo)(nil)

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *fakeCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.caixas[c.ID] = &cp
	return nil
}

func (r *fakeCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCaixaRepo) FindAbertoPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.UsuarioID == usuarioID && c.Status == model.CaixaAberto {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeCaixaRepo) FindPorUsuarioNoDia(_ context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.UsuarioID == usuarioID && mesmaData(c.AbertoEm, dia) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeCaixaRepo) FindAbertoPorIDEUsuario(_ context.Context, id, usuarioID uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok || c.UsuarioID != usuarioID || c.Status != model.CaixaAberto {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCaixaRepo) ListAll(_ context.Context) ([]model.Caixa, error) {
	out := make([]model.Caixa, 0, len(r.caixas))
	for _, c := range r.caixas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	cp := *c
	r.caixas[c.ID] = &cp
	return nil
}

func (r *fakeCaixaRepo) SomarValorTotalTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.caixas[id]
	if !ok {
		return errors.New("not found")
	}
	c.ValorTotal = c.ValorTotal.Add(delta)
	return nil
}

func (r *fakeCaixaRepo) DB() *gorm.DB { return nil }

func mesmaData(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func newCaixaServiceAt(repo repository.CaixaRepository, agora time.Time) *caixaService {
	svc := NewCaixaService(repo, nil, nil, "").(*caixaService)
	svc.agora = func() time.Time { return agora }
	return svc
}

var meioDia = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

// ── Abrir ────────────────────────────────────────────────────────────────────

func TestAbrirCaixaPrimeiroDoDia(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	resp, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)
	assert.Equal(t, model.CaixaAberto, resp.Status)
	assert.True(t, resp.ValorTotal.IsZero())
	assert.Equal(t, usuario.String(), resp.UsuarioID)
}

func TestAbrirCaixaJaAbertoHoje(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	_, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), usuario)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestAbrirCaixaHojeJaFechado(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	_, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)
	_, err = svc.Fechar(context.Background(), usuario)
	require.NoError(t, err)

	// Reabrir no mesmo dia é bloqueado
	_, err = svc.Abrir(context.Background(), usuario)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	e, _ := apperror.As(err)
	assert.Contains(t, e.Message, "fechado")
}

// O caixa de ontem ainda aberto bloqueia a abertura de um novo com o mesmo
// conflito (codigo 1) que VerificarEstado reporta.
func TestAbrirCaixaComCaixaDeOntemAberto(t *testing.T) {
	repo := newFakeCaixaRepo()
	usuario := uuid.New()

	svcOntem := newCaixaServiceAt(repo, meioDia.AddDate(0, 0, -1))
	_, err := svcOntem.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	svcHoje := newCaixaServiceAt(repo, meioDia)
	_, err = svcHoje.Abrir(context.Background(), usuario)
	require.Error(t, err)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, e.Kind)
	assert.Equal(t, apperror.CodigoCaixaAnteriorAberto, e.Codigo)

	// nenhum caixa novo foi criado
	assert.Len(t, repo.caixas, 1)
}

func TestAbrirCaixaOperadoresIndependentes(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)

	_, err := svc.Abrir(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.Abrir(context.Background(), uuid.New())
	require.NoError(t, err)
}

// ── Fechar ───────────────────────────────────────────────────────────────────

func TestFecharCaixaAberto(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	aberto, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	resp, err := svc.Fechar(context.Background(), usuario)
	require.NoError(t, err)
	assert.Equal(t, aberto.ID, resp.CaixaID)
	assert.NotEmpty(t, resp.FechadoEm)

	id, _ := uuid.Parse(aberto.ID)
	salvo, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.CaixaFechado, salvo.Status)
	require.NotNil(t, salvo.FechadoEm)
}

func TestFecharSemCaixaAberto(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)

	_, err := svc.Fechar(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// ── VerificarEstado ──────────────────────────────────────────────────────────

func TestVerificarEstadoSemCaixa(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)

	_, err := svc.VerificarEstado(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestVerificarEstadoCaixaAbertoHoje(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	aberto, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	resp, err := svc.VerificarEstado(context.Background(), usuario)
	require.NoError(t, err)
	assert.Equal(t, aberto.ID, resp.ID)
}

func TestVerificarEstadoCaixaDeOntemAberto(t *testing.T) {
	repo := newFakeCaixaRepo()
	ontem := meioDia.AddDate(0, 0, -1)
	usuario := uuid.New()

	svcOntem := newCaixaServiceAt(repo, ontem)
	_, err := svcOntem.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	svcHoje := newCaixaServiceAt(repo, meioDia)
	_, err = svcHoje.VerificarEstado(context.Background(), usuario)
	require.Error(t, err)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, e.Kind)
	assert.Equal(t, apperror.CodigoCaixaAnteriorAberto, e.Codigo)
}

func TestVerificarEstadoCaixaDeHojeFechado(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := newCaixaServiceAt(repo, meioDia)
	usuario := uuid.New()

	_, err := svc.Abrir(context.Background(), usuario)
	require.NoError(t, err)
	_, err = svc.Fechar(context.Background(), usuario)
	require.NoError(t, err)

	_, err = svc.VerificarEstado(context.Background(), usuario)
	require.Error(t, err)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, e.Kind)
	assert.Equal(t, apperror.CodigoCaixaHojeFechado, e.Codigo)
}

// O caixa de ontem aberto tem precedência sobre o caixa de hoje fechado.
func TestVerificarEstadoPrecedenciaDiaAnterior(t *testing.T) {
	repo := newFakeCaixaRepo()
	usuario := uuid.New()

	svcOntem := newCaixaServiceAt(repo, meioDia.AddDate(0, 0, -1))
	_, err := svcOntem.Abrir(context.Background(), usuario)
	require.NoError(t, err)

	// Um segundo caixa fechado hoje (cenário de dados inconsistentes)
	hoje := &model.Caixa{
		UsuarioID:  usuario,
		Status:     model.CaixaFechado,
		ValorTotal: decimal.Zero,
		AbertoEm:   meioDia.Add(-2 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), hoje))

	svcHoje := newCaixaServiceAt(repo, meioDia)
	_, err = svcHoje.VerificarEstado(context.Background(), usuario)
	require.Error(t, err)
	e, _ := apperror.As(err)
	assert.Equal(t, apperror.CodigoCaixaAnteriorAberto, e.Codigo)
}
