package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProdutoFilter struct {
	Nome        string `form:"nome"`
	CategoriaID string `form:"categoria_id"`
	Ativo       string `form:"ativo"` // "false" | "all" | default ativos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome           string          `json:"nome"            validate:"required,min=2"`
	Descricao      *string         `json:"descricao"`
	CategoriaID    string          `json:"categoria_id"    validate:"required,uuid"`
	MarcaID        *string         `json:"marca_id"        validate:"omitempty,uuid"`
	UnidadeID      string          `json:"unidade_id"      validate:"required,uuid"`
	ValorUnitario  decimal.Decimal `json:"valor_unitario"  validate:"required"`
	MultiploVendas int             `json:"multiplo_vendas" validate:"min=1"`
}

type AtualizarProdutoRequest struct {
	Nome           *string          `json:"nome"            validate:"omitempty,min=2"`
	Descricao      *string          `json:"descricao"`
	CategoriaID    *string          `json:"categoria_id"    validate:"omitempty,uuid"`
	MarcaID        *string          `json:"marca_id"        validate:"omitempty,uuid"`
	UnidadeID      *string          `json:"unidade_id"      validate:"omitempty,uuid"`
	ValorUnitario  *decimal.Decimal `json:"valor_unitario"`
	MultiploVendas *int             `json:"multiplo_vendas" validate:"omitempty,min=1"`
}

type CriarCatalogoRequest struct {
	Descricao string `json:"descricao" validate:"required,min=2"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	Descricao      *string         `json:"descricao,omitempty"`
	Categoria      string          `json:"categoria"`
	Marca          string          `json:"marca,omitempty"`
	Unidade        string          `json:"unidade"`
	ValorUnitario  decimal.Decimal `json:"valor_unitario"`
	MultiploVendas int             `json:"multiplo_vendas"`
	Ativo          bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CatalogoResponse struct {
	ID        string `json:"id"`
	Descricao string `json:"descricao"`
	Ativo     bool   `json:"ativo"`
}
