package dto

import "github.com/shopspring/decimal"

// ─── Daily summary (single register, active transactions only) ───────────────

type ItemResumoResponse struct {
	Produto       string          `json:"produto"`
	Categoria     string          `json:"categoria"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

type TransacaoResumoResponse struct {
	TransacaoID string               `json:"transacao_id"`
	ValorTotal  decimal.Decimal      `json:"valor_total"`
	Pagamento   string               `json:"pagamento"`
	Status      string               `json:"status"`
	Itens       []ItemResumoResponse `json:"itens"`
	CreatedAt   string               `json:"created_at"`
}

type ResumoCaixaResponse struct {
	CaixaID             string                    `json:"caixa_id"`
	TotalRecebido       decimal.Decimal           `json:"total_recebido"`
	TotalPagoPrincipal  decimal.Decimal           `json:"total_pago_principal"`
	TotalPagoSecundario decimal.Decimal           `json:"total_pago_secundario"`
	VendasMistas        int                       `json:"vendas_mistas"`
	ValorMisto          decimal.Decimal           `json:"valor_misto"`
	Transacoes          []TransacaoResumoResponse `json:"transacoes"`
}

// ─── Global summary (every register, active + cancelled) ─────────────────────

type ResumoGeralItem struct {
	CaixaID        string          `json:"caixa_id"`
	Status         string          `json:"status"`
	AbertoEm       string          `json:"aberto_em"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	ValorCancelado decimal.Decimal `json:"valor_cancelado"`
	TotalItens     int             `json:"total_itens"`
	Transacoes     []TransacaoResumoResponse `json:"transacoes"`
}

type ResumoGeralResponse struct {
	Caixas []ResumoGeralItem `json:"caixas"`
}
