package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory TransacaoRepository ────────────────────────────────────────────

type fakeTransacaoRepo struct {
	transacoes map[uuid.UUID]*model.Transacao
	itens      []model.ItemTransacao
}

var _ repository.TransacaoRepository = (*fakeTransacaoRepo)(nil)

func newFakeTransacaoRepo() *fakeTransacaoRepo {
	return &fakeTransacaoRepo{transacoes: make(map[uuid.UUID]*model.Transacao)}
}

func (r *fakeTransacaoRepo) CreateTx(_ *gorm.DB, t *model.Transacao) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	cp := *t
	cp.Itens = nil
	r.transacoes[t.ID] = &cp
	return nil
}

func (r *fakeTransacaoRepo) CreateItemTx(_ *gorm.DB, item *model.ItemTransacao) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.itens = append(r.itens, *item)
	return nil
}

func (r *fakeTransacaoRepo) FindByIDComItens(_ context.Context, id uuid.UUID) (*model.Transacao, error) {
	t, ok := r.transacoes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *t
	for _, item := range r.itens {
		if item.TransacaoID == id {
			cp.Itens = append(cp.Itens, item)
		}
	}
	return &cp, nil
}

func (r *fakeTransacaoRepo) ListPorCaixa(_ context.Context, caixaID uuid.UUID) ([]model.Transacao, error) {
	var out []model.Transacao
	for id, t := range r.transacoes {
		if t.CaixaID != caixaID {
			continue
		}
		cp, _ := r.FindByIDComItens(context.Background(), id)
		out = append(out, *cp)
	}
	return out, nil
}

func (r *fakeTransacaoRepo) UpdateTx(_ *gorm.DB, t *model.Transacao) error {
	cp := *t
	cp.Itens = nil
	r.transacoes[t.ID] = &cp
	return nil
}

func (r *fakeTransacaoRepo) CancelarItensTx(_ *gorm.DB, transacaoID uuid.UUID) error {
	for i := range r.itens {
		if r.itens[i].TransacaoID == transacaoID {
			r.itens[i].Status = model.TransacaoCancelada
		}
	}
	return nil
}

func (r *fakeTransacaoRepo) DB() *gorm.DB { return nil }

// ── Fixture ──────────────────────────────────────────────────────────────────

type vendaFixture struct {
	caixaRepo   *fakeCaixaRepo
	transRepo   *fakeTransacaoRepo
	estoqueRepo *fakeEstoqueRepo
	produtoRepo *fakeProdutoRepo
	svc         *vendaService

	usuario uuid.UUID
	metodo  uuid.UUID
}

func newVendaFixture(t *testing.T, agora time.Time) *vendaFixture {
	t.Helper()
	f := &vendaFixture{
		caixaRepo:   newFakeCaixaRepo(),
		transRepo:   newFakeTransacaoRepo(),
		estoqueRepo: newFakeEstoqueRepo(),
		produtoRepo: newFakeProdutoRepo(),
		usuario:     uuid.New(),
		metodo:      uuid.New(),
	}
	estoqueSvc := NewEstoqueService(f.estoqueRepo, f.produtoRepo)
	f.svc = NewVendaService(f.transRepo, f.caixaRepo, estoqueSvc, nil).(*vendaService)
	f.svc.agora = func() time.Time { return agora }
	return f
}

func (f *vendaFixture) abrirCaixa(t *testing.T, abertoEm time.Time) *model.Caixa {
	t.Helper()
	caixa := &model.Caixa{
		UsuarioID:  f.usuario,
		Status:     model.CaixaAberto,
		ValorTotal: decimal.Zero,
		AbertoEm:   abertoEm,
	}
	require.NoError(t, f.caixaRepo.Create(context.Background(), caixa))
	return caixa
}

func (f *vendaFixture) vendaRequest(caixaID uuid.UUID, itens ...dto.ItemVendaRequest) dto.RegistrarVendaRequest {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.ValorTotal)
	}
	return dto.RegistrarVendaRequest{
		CaixaID:           caixaID.String(),
		Itens:             itens,
		ValorTotal:        total,
		MetodoPagamentoID: f.metodo.String(),
		ValorPago:         total,
	}
}

func itemDe(produto *model.Produto, quantidade int) dto.ItemVendaRequest {
	return dto.ItemVendaRequest{
		ProdutoID:     produto.ID.String(),
		Quantidade:    quantidade,
		ValorUnitario: produto.ValorUnitario,
		ValorTotal:    produto.ValorUnitario.Mul(decimal.NewFromInt(int64(quantidade))),
	}
}

// ── RegistrarVenda ───────────────────────────────────────────────────────────

func TestRegistrarVendaAtualizaCaixaEEstoque(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia.Add(-2*time.Hour))
	cerveja := f.produtoRepo.seed("Cerveja lata", preco("4.00"), 12)
	refri := f.produtoRepo.seed("Refrigerante 2L", preco("9.50"), 1)
	f.estoqueRepo.seed(cerveja.ID, 48)
	f.estoqueRepo.seed(refri.ID, 10)

	resp, err := f.svc.RegistrarVenda(context.Background(), f.usuario,
		f.vendaRequest(caixa.ID, itemDe(cerveja, 12), itemDe(refri, 2)))
	require.NoError(t, err)

	assert.Equal(t, model.TransacaoAtiva, resp.Status)
	require.Len(t, resp.Itens, 2)
	assert.True(t, resp.ValorTotal.Equal(preco("67.00"))) // 12×4,00 + 2×9,50

	salvo, err := f.caixaRepo.FindByID(context.Background(), caixa.ID)
	require.NoError(t, err)
	assert.True(t, salvo.ValorTotal.Equal(preco("67.00")))

	estoqueCerveja, _ := f.estoqueRepo.FindAtivoPorProdutoTx(nil, cerveja.ID, false)
	assert.Equal(t, 36, estoqueCerveja.Quantidade)
	estoqueRefri, _ := f.estoqueRepo.FindAtivoPorProdutoTx(nil, refri.ID, false)
	assert.Equal(t, 8, estoqueRefri.Quantidade)

	// cada item gera uma saída no ledger com o método de pagamento da venda
	require.Len(t, f.estoqueRepo.movimentacoes, 2)
	for _, mov := range f.estoqueRepo.movimentacoes {
		assert.Equal(t, model.MovimentoSaida, mov.TipoMovimento)
		require.NotNil(t, mov.MetodoPagamentoID)
		assert.Equal(t, f.metodo, *mov.MetodoPagamentoID)
	}
}

func TestRegistrarVendaSemItens(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)

	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario, f.vendaRequest(caixa.ID))
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestRegistrarVendaMetodoPagamentoInvalido(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	produto := f.produtoRepo.seed("Suco", preco("7.00"), 1)

	req := f.vendaRequest(caixa.ID, itemDe(produto, 1))
	req.MetodoPagamentoID = "nao-e-uuid"
	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario, req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestRegistrarVendaSemCaixaAberto(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	produto := f.produtoRepo.seed("Suco", preco("7.00"), 1)

	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario,
		f.vendaRequest(uuid.New(), itemDe(produto, 1)))
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRegistrarVendaCaixaDeOutroOperador(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	produto := f.produtoRepo.seed("Suco", preco("7.00"), 1)

	_, err := f.svc.RegistrarVenda(context.Background(), uuid.New(),
		f.vendaRequest(caixa.ID, itemDe(produto, 1)))
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRegistrarVendaCaixaDeOntem(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia.AddDate(0, 0, -1))
	produto := f.produtoRepo.seed("Suco", preco("7.00"), 1)
	f.estoqueRepo.seed(produto.ID, 10)

	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario,
		f.vendaRequest(caixa.ID, itemDe(produto, 1)))
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "dia anterior")
}

func TestRegistrarVendaEstoqueInsuficiente(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	produto := f.produtoRepo.seed("Cerveja lata", preco("4.00"), 12)
	f.estoqueRepo.seed(produto.ID, 2)

	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario,
		f.vendaRequest(caixa.ID, itemDe(produto, 3)))
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "disponível: 2")
}

// ── CancelarVenda ────────────────────────────────────────────────────────────

func registrarVendaSimples(t *testing.T, f *vendaFixture, caixa *model.Caixa) *dto.TransacaoResponse {
	t.Helper()
	produto := f.produtoRepo.seed("Cerveja lata", preco("4.00"), 12)
	f.estoqueRepo.seed(produto.ID, 48)
	resp, err := f.svc.RegistrarVenda(context.Background(), f.usuario,
		f.vendaRequest(caixa.ID, itemDe(produto, 12)))
	require.NoError(t, err)
	return resp
}

func TestCancelarVendaReverteTotais(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia.Add(-2*time.Hour))
	venda := registrarVendaSimples(t, f, caixa)
	transacaoID, err := uuid.Parse(venda.ID)
	require.NoError(t, err)

	resp, err := f.svc.CancelarVenda(context.Background(), transacaoID, f.usuario)
	require.NoError(t, err)
	assert.Equal(t, model.TransacaoCancelada, resp.Status)
	require.NotNil(t, resp.UsuarioCancelouID)
	assert.Equal(t, f.usuario.String(), *resp.UsuarioCancelouID)
	require.NotNil(t, resp.CanceladoEm)
	for _, item := range resp.Itens {
		assert.Equal(t, model.TransacaoCancelada, item.Status)
	}

	// valor do caixa restaurado
	salvo, err := f.caixaRepo.FindByID(context.Background(), caixa.ID)
	require.NoError(t, err)
	assert.True(t, salvo.ValorTotal.IsZero())

	// estoque restaurado por um estorno de entrada; a saída original permanece
	require.Len(t, f.estoqueRepo.movimentacoes, 2)
	assert.Equal(t, model.MovimentoSaida, f.estoqueRepo.movimentacoes[0].TipoMovimento)
	assert.Equal(t, model.MovimentoEntrada, f.estoqueRepo.movimentacoes[1].TipoMovimento)
	for _, e := range f.estoqueRepo.estoques {
		assert.Equal(t, 48, e.Quantidade)
	}
}

func TestCancelarVendaDuasVezes(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	venda := registrarVendaSimples(t, f, caixa)
	transacaoID, _ := uuid.Parse(venda.ID)

	_, err := f.svc.CancelarVenda(context.Background(), transacaoID, f.usuario)
	require.NoError(t, err)

	_, err = f.svc.CancelarVenda(context.Background(), transacaoID, f.usuario)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCancelarVendaDeOutroOperador(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	venda := registrarVendaSimples(t, f, caixa)
	transacaoID, _ := uuid.Parse(venda.ID)

	_, err := f.svc.CancelarVenda(context.Background(), transacaoID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCancelarVendaComCaixaFechado(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	caixa := f.abrirCaixa(t, meioDia)
	venda := registrarVendaSimples(t, f, caixa)
	transacaoID, _ := uuid.Parse(venda.ID)

	fechadoEm := meioDia.Add(4 * time.Hour)
	f.caixaRepo.caixas[caixa.ID].Status = model.CaixaFechado
	f.caixaRepo.caixas[caixa.ID].FechadoEm = &fechadoEm

	_, err := f.svc.CancelarVenda(context.Background(), transacaoID, f.usuario)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCancelarVendaInexistente(t *testing.T) {
	f := newVendaFixture(t, meioDia)
	_, err := f.svc.CancelarVenda(context.Background(), uuid.New(), f.usuario)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
