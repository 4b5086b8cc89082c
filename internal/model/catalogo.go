package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups products for reporting display.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }

// Marca is the product brand.
type Marca struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Marca) TableName() string { return "marcas" }

// Unidade is the unit-of-measure label used on receipts (FARDO, CAIXA, PACOTE…).
type Unidade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Unidade) TableName() string { return "unidades" }

// MetodoPagamento: Dinheiro, Cartão, Pix, …
type MetodoPagamento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MetodoPagamento) TableName() string { return "metodos_pagamento" }

// Empresa holds the business identity printed on receipt headers.
type Empresa struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazaoSocial string    `gorm:"not null"`
	CNPJ        string    `gorm:"not null"`
	Endereco    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Empresa) TableName() string { return "empresas" }
