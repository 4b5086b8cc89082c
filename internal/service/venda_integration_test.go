//go:build integration

package service

// venda_integration_test.go
// Runs the sale processor against a real Postgres started via testcontainers.
// This is the only place the all-or-nothing scope of a sale can actually be
// observed: the in-memory fakes execute the transactional closure without a
// rollback, so partial state left behind by a mid-sale failure is invisible
// to them.
// Run with: go test -tags integration ./internal/service/... -v

import (
	"context"
	"testing"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/infra"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// ── Setup ────────────────────────────────────────────────────────────────────

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("g5_test"),
		tcPostgres.WithUsername("g5"),
		tcPostgres.WithPassword("g5"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// NewDatabase runs AutoMigrate plus the schema patches
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	return db
}

type bancoFixture struct {
	db      *gorm.DB
	estoque EstoqueService
	svc     VendaService

	usuario   *model.Usuario
	metodo    *model.MetodoPagamento
	categoria *model.Categoria
	unidade   *model.Unidade
}

func newBancoFixture(t *testing.T) *bancoFixture {
	t.Helper()
	db := setupPostgres(t)

	f := &bancoFixture{db: db}
	f.usuario = &model.Usuario{
		Username:     "operador.teste",
		Nome:         "Operador Teste",
		PasswordHash: "irrelevante",
		Perfil:       "operador",
		Ativo:        true,
	}
	require.NoError(t, db.Create(f.usuario).Error)
	f.metodo = &model.MetodoPagamento{Descricao: "Dinheiro", Ativo: true}
	require.NoError(t, db.Create(f.metodo).Error)
	f.categoria = &model.Categoria{Descricao: "Bebidas", Ativo: true}
	require.NoError(t, db.Create(f.categoria).Error)
	f.unidade = &model.Unidade{Descricao: "FARDO", Ativo: true}
	require.NoError(t, db.Create(f.unidade).Error)

	caixaRepo := repository.NewCaixaRepository(db)
	transacaoRepo := repository.NewTransacaoRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)

	f.estoque = NewEstoqueService(estoqueRepo, produtoRepo)
	f.svc = NewVendaService(transacaoRepo, caixaRepo, f.estoque, nil)
	return f
}

func (f *bancoFixture) abrirCaixaBanco(t *testing.T) *model.Caixa {
	t.Helper()
	caixa := &model.Caixa{
		UsuarioID:  f.usuario.ID,
		Status:     model.CaixaAberto,
		ValorTotal: decimal.Zero,
		AbertoEm:   time.Now(),
	}
	require.NoError(t, f.db.Create(caixa).Error)
	return caixa
}

// novoProduto cadastra o produto e carrega o estoque inicial por uma entrada
// real no ledger.
func (f *bancoFixture) novoProduto(t *testing.T, nome string, valor decimal.Decimal, multiplo, quantidadeInicial int) *model.Produto {
	t.Helper()
	p := &model.Produto{
		Nome:           nome,
		CategoriaID:    f.categoria.ID,
		UnidadeID:      f.unidade.ID,
		ValorUnitario:  valor,
		MultiploVendas: multiplo,
		Ativo:          true,
	}
	require.NoError(t, f.db.Create(p).Error)

	if quantidadeInicial > 0 {
		_, err := f.estoque.Movimentar(context.Background(), MovimentoInput{
			ProdutoID:     p.ID,
			Quantidade:    quantidadeInicial,
			TipoMovimento: model.MovimentoEntrada,
			UsuarioID:     f.usuario.ID,
		})
		require.NoError(t, err)
	}
	return p
}

func (f *bancoFixture) vendaReq(caixaID uuid.UUID, itens ...dto.ItemVendaRequest) dto.RegistrarVendaRequest {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.ValorTotal)
	}
	return dto.RegistrarVendaRequest{
		CaixaID:           caixaID.String(),
		Itens:             itens,
		ValorTotal:        total,
		MetodoPagamentoID: f.metodo.ID.String(),
		ValorPago:         total,
	}
}

func (f *bancoFixture) quantidadeNoBanco(t *testing.T, produtoID uuid.UUID) int {
	t.Helper()
	var e model.Estoque
	require.NoError(t, f.db.Where("produto_id = ?", produtoID).First(&e).Error)
	return e.Quantidade
}

func contar(t *testing.T, db *gorm.DB, modelo interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(modelo).Count(&n).Error)
	return n
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Uma venda que falha no meio do escopo (segundo item sem estoque) não pode
// deixar rastro: total do caixa, transação, itens e ledger voltam intactos
// no rollback.
func TestVendaComFalhaNaoDeixaEstadoParcial(t *testing.T) {
	f := newBancoFixture(t)
	caixa := f.abrirCaixaBanco(t)
	cerveja := f.novoProduto(t, "Cerveja lata", preco("4.00"), 12, 10)
	refri := f.novoProduto(t, "Refrigerante 2L", preco("9.50"), 1, 2)

	_, err := f.svc.RegistrarVenda(context.Background(), f.usuario.ID,
		f.vendaReq(caixa.ID, itemDe(cerveja, 3), itemDe(refri, 5)))
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "disponível: 2")

	var salvo model.Caixa
	require.NoError(t, f.db.First(&salvo, "id = ?", caixa.ID).Error)
	assert.True(t, salvo.ValorTotal.IsZero(), "valor_total reteve incremento parcial: %s", salvo.ValorTotal)

	assert.EqualValues(t, 0, contar(t, f.db, &model.Transacao{}))
	assert.EqualValues(t, 0, contar(t, f.db, &model.ItemTransacao{}))
	assert.Equal(t, 10, f.quantidadeNoBanco(t, cerveja.ID))
	assert.Equal(t, 2, f.quantidadeNoBanco(t, refri.ID))
	// apenas as duas entradas de carga inicial sobrevivem no ledger
	assert.EqualValues(t, 2, contar(t, f.db, &model.EstoqueMovimentacao{}))
}

func TestCancelamentoRestauraEstoqueNoBanco(t *testing.T) {
	f := newBancoFixture(t)
	caixa := f.abrirCaixaBanco(t)
	cerveja := f.novoProduto(t, "Cerveja lata", preco("4.00"), 12, 10)

	venda, err := f.svc.RegistrarVenda(context.Background(), f.usuario.ID,
		f.vendaReq(caixa.ID, itemDe(cerveja, 3)))
	require.NoError(t, err)
	assert.Equal(t, 7, f.quantidadeNoBanco(t, cerveja.ID))

	transacaoID, err := uuid.Parse(venda.ID)
	require.NoError(t, err)
	_, err = f.svc.CancelarVenda(context.Background(), transacaoID, f.usuario.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, f.quantidadeNoBanco(t, cerveja.ID))

	var salvo model.Caixa
	require.NoError(t, f.db.First(&salvo, "id = ?", caixa.ID).Error)
	assert.True(t, salvo.ValorTotal.IsZero())

	var transacao model.Transacao
	require.NoError(t, f.db.First(&transacao, "id = ?", transacaoID).Error)
	assert.Equal(t, model.TransacaoCancelada, transacao.Status)

	// a saída original permanece no ledger; o estorno é uma entrada nova
	assert.EqualValues(t, 3, contar(t, f.db, &model.EstoqueMovimentacao{}))
}
