package recibo

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/shopspring/decimal"
)

// Largura padrão de impressoras térmicas de 80mm (fonte A).
const larguraTermica = 48

// FormatarBRL renders a decimal as Brazilian currency: R$ 1.234,56.
func FormatarBRL(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	inteiro, frac := parts[0], parts[1]

	var b strings.Builder
	for i, d := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// DescreverPagamento produces the human payment line for receipts and
// summaries. Mixed payments read as
// "R$ X pago em <método>; restante R$ Y pago em <método 2>".
func DescreverPagamento(metodo, metodo2 string, misto bool, pago, pagoSecundario decimal.Decimal) string {
	if !misto || metodo2 == "" {
		return metodo
	}
	return fmt.Sprintf("%s pago em %s; restante %s pago em %s",
		FormatarBRL(pago), metodo,
		FormatarBRL(pagoSecundario), metodo2)
}

// LinhaItem writes one receipt line for a line item, decomposing the
// quantity into fardos/unidades when the product sells in packs.
func LinhaItem(produto *model.Produto, quantidade int, valorUnitario decimal.Decimal) string {
	nome := "Produto"
	qtdTexto := fmt.Sprintf("%d un", quantidade)
	if produto != nil {
		nome = produto.Nome
		fardos, unidades := produto.DecomporQuantidade(quantidade)
		if fardos > 0 && unidades > 0 {
			qtdTexto = fmt.Sprintf("%d fd + %d un", fardos, unidades)
		} else if fardos > 0 {
			qtdTexto = fmt.Sprintf("%d fd", fardos)
		}
	}
	total := valorUnitario.Mul(decimal.NewFromInt(int64(quantidade)))
	return fmt.Sprintf("%s  %s x %s = %s", nome, qtdTexto, FormatarBRL(valorUnitario), FormatarBRL(total))
}

// Recibo is the printable form of one sale, already resolved to display
// strings so the PDF and thermal renderers share the same content.
type Recibo struct {
	Empresa    *model.Empresa
	Operador   string
	Transacao  *model.Transacao
	Pagamento  string
	EmitidoEm  time.Time
	Observacao string
}

// centralizar pads by rune count — accented pt-BR text occupies one printed
// column per rune, not per byte.
func centralizar(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= larguraTermica {
		return s
	}
	pad := (larguraTermica - n) / 2
	return strings.Repeat(" ", pad) + s
}

func separador() string { return strings.Repeat("-", larguraTermica) }

// Linhas lays out the receipt as plain text lines, the canonical format for
// thermal printing. The PDF renderer reuses these lines verbatim.
func (r *Recibo) Linhas() []string {
	t := r.Transacao
	linhas := make([]string, 0, 16+len(t.Itens))

	if r.Empresa != nil {
		linhas = append(linhas, centralizar(r.Empresa.RazaoSocial))
		if r.Empresa.CNPJ != "" {
			linhas = append(linhas, centralizar("CNPJ: "+r.Empresa.CNPJ))
		}
		if r.Empresa.Endereco != "" {
			linhas = append(linhas, centralizar(r.Empresa.Endereco))
		}
	}
	linhas = append(linhas,
		separador(),
		centralizar("COMPROVANTE DE VENDA"),
		separador(),
		"Data: "+r.EmitidoEm.Format("02/01/2006 15:04"),
		"Operador: "+r.Operador,
		"Venda: "+t.ID.String(),
	)
	if t.NomeCliente != nil && *t.NomeCliente != "" {
		linhas = append(linhas, "Cliente: "+*t.NomeCliente)
	}
	linhas = append(linhas, separador())

	for i := range t.Itens {
		item := &t.Itens[i]
		linhas = append(linhas, LinhaItem(item.Produto, item.Quantidade, item.ValorUnitario))
	}

	linhas = append(linhas,
		separador(),
		fmt.Sprintf("TOTAL: %s", FormatarBRL(t.ValorTotal)),
		"Pagamento: "+r.Pagamento,
	)
	if r.Observacao != "" {
		linhas = append(linhas, "Obs: "+r.Observacao)
	}
	if t.Status == model.TransacaoCancelada {
		linhas = append(linhas, separador(), centralizar("*** VENDA CANCELADA ***"))
	}
	linhas = append(linhas, separador(), centralizar("Obrigado pela preferência!"))
	return linhas
}

// Texto joins the receipt into the raw payload sent to the thermal agent.
func (r *Recibo) Texto() string {
	return strings.Join(r.Linhas(), "\n") + "\n"
}
