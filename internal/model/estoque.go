package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement directions.
const (
	MovimentoEntrada = "entrada"
	MovimentoSaida   = "saida"
)

// Estoque status values.
const (
	EstoqueAtivo   = "ativo"
	EstoqueInativo = "inativo"
)

// Estoque holds the cached on-hand quantity of one product. One active record
// per product. Quantidade is derived: the authoritative history lives in
// EstoqueMovimentacao and the record is recomputed on every movement.
type Estoque struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantidade int       `gorm:"not null;default:0"`
	Status     string    `gorm:"type:varchar(20);not null;default:'ativo'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Produto       *Produto              `gorm:"foreignKey:ProdutoID"`
	Movimentacoes []EstoqueMovimentacao `gorm:"foreignKey:EstoqueID"`
}

func (Estoque) TableName() string { return "estoques" }

// EstoqueMovimentacao is an immutable entry in the stock ledger.
// Rows are NEVER updated or deleted — cancellations append inverse entries.
type EstoqueMovimentacao struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstoqueID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoMovimento string          `gorm:"type:varchar(10);not null"` // entrada | saida
	Quantidade    int             `gorm:"not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null"`
	// MetodoPagamentoID is set when the movement originated from a sale.
	MetodoPagamentoID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (EstoqueMovimentacao) TableName() string { return "estoque_movimentacoes" }

// RotuloTipo returns the human label shown on movement listings.
func (m *EstoqueMovimentacao) RotuloTipo() string {
	if m.TipoMovimento == MovimentoEntrada {
		return "Entrada"
	}
	return "Saída"
}
