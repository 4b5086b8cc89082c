// Package apperror define o tipo de erro tipado usado por toda a camada de
// serviço. Cada erro carrega um Kind que os handlers mapeiam para o status
// HTTP correspondente, no lugar de classes de exceção por condição.
package apperror

import "errors"

// Kind classifica o erro de negócio.
type Kind int

const (
	// KindValidation: entrada obrigatória ausente ou malformada — falha antes de qualquer I/O.
	KindValidation Kind = iota + 1
	// KindNotFound: registro referenciado não existe ou não pertence ao operador.
	KindNotFound
	// KindConflict: violação de regra de negócio (caixa já aberto/fechado,
	// estoque insuficiente, transação já cancelada).
	KindConflict
	// KindProcessing: operação atômica multi-etapa falhou; causa original
	// preservada para logs, nenhum estado parcial persistido.
	KindProcessing
)

// Códigos de conflito de VerificarEstado, consumidos pelo cliente para
// decidir entre retomar, abrir novo caixa ou bloquear.
const (
	CodigoCaixaAnteriorAberto = 1
	CodigoCaixaHojeFechado    = 2
)

// Error é o envelope único de erro de domínio.
type Error struct {
	Kind    Kind
	Codigo  int // opcional; apenas conflitos de estado do caixa usam
	Message string
	Err     error // causa interna — nunca exposta ao cliente
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// ConflictCode cria um Conflict com código numérico distinto.
func ConflictCode(codigo int, msg string) *Error {
	return &Error{Kind: KindConflict, Codigo: codigo, Message: msg}
}

// Processing envolve uma falha inesperada de baixo nível com mensagem genérica.
func Processing(msg string, cause error) *Error {
	return &Error{Kind: KindProcessing, Message: msg, Err: cause}
}

// As extrai um *Error da cadeia de erros.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf retorna o Kind do erro, ou zero quando não é um *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return 0
}

// IsDomain informa se o erro já é um erro de domínio classificado.
// O processador de vendas usa isto para deixar Conflict/NotFound propagarem
// intactos e envolver apenas falhas inesperadas como ProcessingFailure.
func IsDomain(err error) bool {
	_, ok := As(err)
	return ok
}
