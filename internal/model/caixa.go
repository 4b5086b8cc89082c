package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa status values.
const (
	CaixaAberto  = "aberto"
	CaixaFechado = "fechado"
)

// Caixa is the daily cash register of one operator.
// Invariant: at most one Caixa with Status=aberto per operator per calendar
// day. Created on open, mutated by every sale/cancellation (ValorTotal) and
// by close (Status, FechadoEm); never deleted.
type Caixa struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     string          `gorm:"type:varchar(20);not null;default:'aberto'"`
	ValorTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AbertoEm   time.Time       `gorm:"not null"`
	FechadoEm  *time.Time

	Usuario    *Usuario    `gorm:"foreignKey:UsuarioID"`
	Transacoes []Transacao `gorm:"foreignKey:CaixaID"`
}

// TableName keeps the legacy schema name (caixa do dia).
func (Caixa) TableName() string { return "caixas_dia" }

// AbertoNoDia reports whether the register was opened on the same calendar
// day as ref, in ref's location.
func (c *Caixa) AbertoNoDia(ref time.Time) bool {
	y1, m1, d1 := c.AbertoEm.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
