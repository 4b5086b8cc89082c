// cmd/seedadmin/main.go — cria/atualiza o usuário administrador de demo.
// Uso: go run cmd/seedadmin/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "postgres://g5:g5@localhost:5432/g5_distribuidora?sslmode=disable"
	}
	username := "admin"
	password := "1234"
	nome := "Administrador"
	perfil := "administrador"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (username, nome, password_hash, perfil)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    nome = EXCLUDED.nome,
		    perfil = EXCLUDED.perfil,
		    ativo = true
	`, username, nome, string(hash), perfil)

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("usuário '%s' criado/atualizado com senha '%s'\n", username, password)
}
