package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is master data consumed by the stock ledger and reporting.
// MultiploVendas is the pack size used to decompose raw unit counts into
// packs + loose units for display (fardo de 12, caixa de 6, …).
type Produto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string    `gorm:"index;not null"`
	Descricao      *string
	CategoriaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MarcaID        *uuid.UUID      `gorm:"type:uuid"`
	UnidadeID      uuid.UUID       `gorm:"type:uuid;not null"`
	ValorUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MultiploVendas int             `gorm:"not null;default:1"`
	Imagem         *string
	Ativo          bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Marca     *Marca     `gorm:"foreignKey:MarcaID"`
	Unidade   *Unidade   `gorm:"foreignKey:UnidadeID"`
}

func (Produto) TableName() string { return "produtos" }

// DecomporQuantidade splits a raw unit count into whole packs and remainder
// units using the product's sale multiple.
func (p *Produto) DecomporQuantidade(quantidade int) (fardos, unidades int) {
	multiplo := p.MultiploVendas
	if multiplo <= 1 {
		return 0, quantidade
	}
	return quantidade / multiplo, quantidade % multiplo
}
