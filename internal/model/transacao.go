package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transacao / ItemTransacao status values.
const (
	TransacaoAtiva     = "ativa"
	TransacaoCancelada = "cancelada"
)

// Transacao is one checkout event against a Caixa.
// Status transitions ativa → cancelada exactly once, never reversed.
// Immutable after creation except for the cancellation fields.
type Transacao struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID uuid.UUID `gorm:"type:uuid;not null;index"`
	// UsuarioID is the operator who registered the sale; cancellation must
	// come from the same operator.
	UsuarioID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	MetodoPagamentoID   uuid.UUID  `gorm:"type:uuid;not null"`
	MetodoPagamento2ID  *uuid.UUID `gorm:"type:uuid"`
	PagamentoMisto      bool       `gorm:"not null;default:false"`
	ValorTotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorPago           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorPagoSecundario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observacao          *string
	NomeCliente         *string
	Status              string     `gorm:"type:varchar(20);not null;default:'ativa'"`
	UsuarioCancelouID   *uuid.UUID `gorm:"type:uuid"`
	CanceladoEm         *time.Time
	CreatedAt           time.Time

	Caixa            *Caixa           `gorm:"foreignKey:CaixaID"`
	Usuario          *Usuario         `gorm:"foreignKey:UsuarioID"`
	MetodoPagamento  *MetodoPagamento `gorm:"foreignKey:MetodoPagamentoID"`
	MetodoPagamento2 *MetodoPagamento `gorm:"foreignKey:MetodoPagamento2ID"`
	Itens            []ItemTransacao  `gorm:"foreignKey:TransacaoID"`
}

func (Transacao) TableName() string { return "transacoes" }

// ItemTransacao is one product line inside a Transacao. Created with the
// transaction; mutated only on cancellation (Status flips for every line).
type ItemTransacao struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransacaoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProdutoID   uuid.UUID `gorm:"type:uuid;not null"`
	// EstoqueID references the stock record the movement was applied to.
	EstoqueID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade    int             `gorm:"not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'ativa'"`
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemTransacao) TableName() string { return "itens_transacao" }
