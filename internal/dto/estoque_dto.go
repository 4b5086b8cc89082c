package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MovimentarEstoqueRequest registers a manual entrada/saida on a product.
type MovimentarEstoqueRequest struct {
	ProdutoID     string `json:"produto_id"     validate:"required,uuid"`
	Quantidade    int    `json:"quantidade"     validate:"required,min=1"`
	TipoMovimento string `json:"tipo_movimento" validate:"required,oneof=entrada saida"`
	// ValorUnitario is optional: absent, the product's configured price is used.
	ValorUnitario     *decimal.Decimal `json:"valor_unitario"`
	MetodoPagamentoID *string          `json:"metodo_pagamento_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstoqueResponse struct {
	ID         string `json:"id"`
	ProdutoID  string `json:"produto_id"`
	Produto    string `json:"produto,omitempty"`
	Quantidade int    `json:"quantidade"`
	Status     string `json:"status"`
}

// MovimentacaoResponse is one row of the movement listing, enriched with the
// direction label, the product's current default price and the pack/unit
// decomposition of the moved quantity.
type MovimentacaoResponse struct {
	ID                string          `json:"id"`
	TipoMovimento     string          `json:"tipo_movimento"`
	Rotulo            string          `json:"rotulo"` // "Entrada" | "Saída"
	Quantidade        int             `json:"quantidade"`
	Fardos            int             `json:"fardos"`
	Unidades          int             `json:"unidades"`
	ValorUnitario     decimal.Decimal `json:"valor_unitario"`
	ValorUnitarioAtual decimal.Decimal `json:"valor_unitario_atual"`
	ValorTotal        decimal.Decimal `json:"valor_total"`
	UsuarioID         string          `json:"usuario_id"`
	MetodoPagamentoID *string         `json:"metodo_pagamento_id,omitempty"`
	CreatedAt         string          `json:"created_at"`
}
