package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecomporQuantidade(t *testing.T) {
	fardo12 := &Produto{MultiploVendas: 12}

	fardos, unidades := fardo12.DecomporQuantidade(27)
	assert.Equal(t, 2, fardos)
	assert.Equal(t, 3, unidades)

	fardos, unidades = fardo12.DecomporQuantidade(24)
	assert.Equal(t, 2, fardos)
	assert.Equal(t, 0, unidades)

	fardos, unidades = fardo12.DecomporQuantidade(5)
	assert.Equal(t, 0, fardos)
	assert.Equal(t, 5, unidades)

	unitario := &Produto{MultiploVendas: 1}
	fardos, unidades = unitario.DecomporQuantidade(7)
	assert.Equal(t, 0, fardos)
	assert.Equal(t, 7, unidades)

	// multiplo zero (dados legados) se comporta como unitário
	semMultiplo := &Produto{}
	fardos, unidades = semMultiplo.DecomporQuantidade(3)
	assert.Equal(t, 0, fardos)
	assert.Equal(t, 3, unidades)
}

func TestAbertoNoDia(t *testing.T) {
	abertura := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	c := &Caixa{AbertoEm: abertura}

	assert.True(t, c.AbertoNoDia(abertura))
	assert.True(t, c.AbertoNoDia(time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)))
	assert.False(t, c.AbertoNoDia(time.Date(2026, 3, 11, 0, 1, 0, 0, time.Local)))
	assert.False(t, c.AbertoNoDia(abertura.AddDate(0, 0, -1)))
}

func TestRotuloTipo(t *testing.T) {
	assert.Equal(t, "Entrada", (&EstoqueMovimentacao{TipoMovimento: MovimentoEntrada}).RotuloTipo())
	assert.Equal(t, "Saída", (&EstoqueMovimentacao{TipoMovimento: MovimentoSaida}).RotuloTipo())
}
