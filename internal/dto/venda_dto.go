package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID     string          `json:"produto_id"     validate:"required,uuid"`
	Quantidade    int             `json:"quantidade"     validate:"required,min=1"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" validate:"required"`
	ValorTotal    decimal.Decimal `json:"valor_total"    validate:"required"`
}

type RegistrarVendaRequest struct {
	CaixaID            string             `json:"caixa_id"  validate:"required,uuid"`
	Itens              []ItemVendaRequest `json:"produtos"  validate:"required,min=1,dive"`
	ValorTotal         decimal.Decimal    `json:"valor_total" validate:"required"`
	MetodoPagamentoID  string             `json:"metodo_pagamento_id" validate:"required,uuid"`
	MetodoPagamento2ID *string            `json:"metodo_pagamento_secundario_id" validate:"omitempty,uuid"`
	ValorPago          decimal.Decimal    `json:"valor_pago" validate:"required"`
	// ValorPagoSecundario is only meaningful when PagamentoMisto is true.
	ValorPagoSecundario decimal.Decimal `json:"valor_pago_secundario"`
	PagamentoMisto      bool            `json:"pagamento_misto"`
	Observacao          *string         `json:"observacao"`
	NomeCliente         *string         `json:"nome_cliente"`
	// ImpressoraTermica selects the receipt mode requested by the frontend.
	ImpressoraTermica bool `json:"impressora_termica"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemTransacaoResponse struct {
	ID            string          `json:"id"`
	ProdutoID     string          `json:"produto_id"`
	Produto       string          `json:"produto,omitempty"`
	EstoqueID     string          `json:"estoque_id"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Status        string          `json:"status"`
}

type TransacaoResponse struct {
	ID                  string                  `json:"id"`
	CaixaID             string                  `json:"caixa_id"`
	UsuarioID           string                  `json:"usuario_id"`
	MetodoPagamentoID   string                  `json:"metodo_pagamento_id"`
	MetodoPagamento2ID  *string                 `json:"metodo_pagamento_secundario_id,omitempty"`
	PagamentoMisto      bool                    `json:"pagamento_misto"`
	ValorTotal          decimal.Decimal         `json:"valor_total"`
	ValorPago           decimal.Decimal         `json:"valor_pago"`
	ValorPagoSecundario decimal.Decimal         `json:"valor_pago_secundario"`
	Observacao          *string                 `json:"observacao,omitempty"`
	NomeCliente         *string                 `json:"nome_cliente,omitempty"`
	Status              string                  `json:"status"`
	UsuarioCancelouID   *string                 `json:"usuario_cancelou_id,omitempty"`
	CanceladoEm         *string                 `json:"cancelado_em,omitempty"`
	Itens               []ItemTransacaoResponse `json:"itens"`
	CreatedAt           string                  `json:"created_at"`
}
