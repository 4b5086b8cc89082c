package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CaixaResponse is returned by abrir / estado / ativo.
type CaixaResponse struct {
	ID         string          `json:"id"`
	UsuarioID  string          `json:"usuario_id"`
	Status     string          `json:"status"`
	ValorTotal decimal.Decimal `json:"valor_total"`
	AbertoEm   string          `json:"aberto_em"`
	FechadoEm  *string         `json:"fechado_em,omitempty"`
}

// FecharCaixaResponse carries the closing receipt data.
type FecharCaixaResponse struct {
	CaixaID   string `json:"caixa_id"`
	AbertoEm  string `json:"aberto_em"`
	FechadoEm string `json:"fechado_em"`
}
