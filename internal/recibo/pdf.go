package recibo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

func quantidadeDecimal(q int) decimal.Decimal { return decimal.NewFromInt(int64(q)) }

// GerarPDF writes the receipt as an A7-ish thermal-style PDF under
// storagePath and returns the absolute path of the generated file.
func GerarPDF(r *Recibo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("recibo: criar diretório de saída: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", r.Transacao.ID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm, próximo do papel térmico de 80mm.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	titulo := "Comprovante de Venda"
	if r.Empresa != nil && r.Empresa.RazaoSocial != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentW, 6, tr(r.Empresa.RazaoSocial), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr(titulo), "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Data: "+r.EmitidoEm.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr("Operador: "+r.Operador), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Venda: "+r.Transacao.ID.String(), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for i := range r.Transacao.Itens {
		item := &r.Transacao.Itens[i]
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		if len(nome) > 22 {
			nome = nome[:22]
		}
		subtotal := item.ValorUnitario.Mul(quantidadeDecimal(item.Quantidade))
		pdf.CellFormat(col1, 5, tr(nome), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, tr(FormatarBRL(subtotal)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, tr(FormatarBRL(r.Transacao.ValorTotal)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(contentW, 4, tr("Pagamento: "+r.Pagamento), "", "L", false)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("Obrigado pela preferência!"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("recibo: gravar PDF: %w", err)
	}
	return filePath, nil
}
