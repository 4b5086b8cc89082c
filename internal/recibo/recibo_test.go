package recibo

import (
	"strings"
	"testing"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatarBRL(t *testing.T) {
	casos := []struct {
		valor    string
		esperado string
	}{
		{"0", "R$ 0,00"},
		{"9.5", "R$ 9,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1000000", "R$ 1.000.000,00"},
		{"-42.10", "-R$ 42,10"},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, FormatarBRL(d(c.valor)), "valor %s", c.valor)
	}
}

func TestDescreverPagamentoSimples(t *testing.T) {
	assert.Equal(t, "Dinheiro",
		DescreverPagamento("Dinheiro", "", false, d("50"), decimal.Zero))
	// misto sem segundo método degrada para o método principal
	assert.Equal(t, "Pix",
		DescreverPagamento("Pix", "", true, d("50"), decimal.Zero))
}

func TestDescreverPagamentoMisto(t *testing.T) {
	assert.Equal(t,
		"R$ 60,00 pago em Dinheiro; restante R$ 40,00 pago em Pix",
		DescreverPagamento("Dinheiro", "Pix", true, d("60"), d("40")))
}

func TestLinhaItemDecomposicao(t *testing.T) {
	fardo := &model.Produto{Nome: "Cerveja lata", MultiploVendas: 12}
	assert.Equal(t, "Cerveja lata  2 fd + 3 un x R$ 4,00 = R$ 108,00",
		LinhaItem(fardo, 27, d("4.00")))
	assert.Equal(t, "Cerveja lata  2 fd x R$ 4,00 = R$ 96,00",
		LinhaItem(fardo, 24, d("4.00")))

	unitario := &model.Produto{Nome: "Refrigerante 2L", MultiploVendas: 1}
	assert.Equal(t, "Refrigerante 2L  2 un x R$ 9,50 = R$ 19,00",
		LinhaItem(unitario, 2, d("9.50")))

	assert.Equal(t, "Produto  1 un x R$ 1,00 = R$ 1,00", LinhaItem(nil, 1, d("1.00")))
}

func reciboDeTeste(status string) *Recibo {
	cliente := "Maria"
	produto := &model.Produto{Nome: "Cerveja lata", MultiploVendas: 12, ValorUnitario: d("4.00")}
	return &Recibo{
		Empresa:  &model.Empresa{RazaoSocial: "G5 Distribuidora LTDA", CNPJ: "12.345.678/0001-00"},
		Operador: "joao",
		Transacao: &model.Transacao{
			ID:          uuid.New(),
			ValorTotal:  d("48.00"),
			NomeCliente: &cliente,
			Status:      status,
			Itens: []model.ItemTransacao{
				{Produto: produto, Quantidade: 12, ValorUnitario: d("4.00")},
			},
		},
		Pagamento: "Dinheiro",
		EmitidoEm: time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local),
	}
}

func TestReciboLinhas(t *testing.T) {
	texto := reciboDeTeste(model.TransacaoAtiva).Texto()

	assert.Contains(t, texto, "G5 Distribuidora LTDA")
	assert.Contains(t, texto, "CNPJ: 12.345.678/0001-00")
	assert.Contains(t, texto, "COMPROVANTE DE VENDA")
	assert.Contains(t, texto, "Data: 10/03/2026 14:30")
	assert.Contains(t, texto, "Operador: joao")
	assert.Contains(t, texto, "Cliente: Maria")
	assert.Contains(t, texto, "Cerveja lata  1 fd x R$ 4,00 = R$ 48,00")
	assert.Contains(t, texto, "TOTAL: R$ 48,00")
	assert.Contains(t, texto, "Pagamento: Dinheiro")
	assert.NotContains(t, texto, "VENDA CANCELADA")
}

func TestReciboCancelado(t *testing.T) {
	texto := reciboDeTeste(model.TransacaoCancelada).Texto()
	assert.Contains(t, texto, "*** VENDA CANCELADA ***")
}

// Linhas acentuadas centralizam por runa, não por byte: "Obrigado pela
// preferência!" tem 26 colunas impressas, logo (48-26)/2 = 11 espaços.
func TestReciboCentralizaPorRuna(t *testing.T) {
	linhas := reciboDeTeste(model.TransacaoAtiva).Linhas()
	rodape := linhas[len(linhas)-1]
	assert.Equal(t, strings.Repeat(" ", 11)+"Obrigado pela preferência!", rodape)
}

func TestReciboLinhasCabemNaLargura(t *testing.T) {
	r := reciboDeTeste(model.TransacaoAtiva)
	for _, linha := range r.Linhas() {
		require.LessOrEqual(t, len(linha), 48, "linha longa: %q", linha)
	}
}
