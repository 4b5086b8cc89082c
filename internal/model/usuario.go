package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system operators with role-based access.
// Perfil: "operador" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	Email        *string
	PasswordHash string     `gorm:"not null"`
	Perfil       string     `gorm:"type:varchar(20);not null"`
	EmpresaID    *uuid.UUID `gorm:"type:uuid"`
	Ativo        bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Empresa *Empresa `gorm:"foreignKey:EmpresaID"`
}

func (Usuario) TableName() string { return "usuarios" }
