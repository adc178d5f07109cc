package registration

import (
	"context"
	"errors"
	"fmt"
)

// Kind clasifica fallas del cadastro. Hoy el usuario sólo ve un error genérico;
// el Kind queda para logs, métricas y un manejo diferenciado futuro.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindConnectivity Kind = "connectivity"
	KindOverloaded   Kind = "overloaded"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("registration %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("registration %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError envuelve err con un Kind. Si err ya viene clasificado se devuelve tal cual.
func NewError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf devuelve el Kind de err. Cancelaciones de contexto cuentan como connectivity.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindConnectivity
	}
	return KindUnknown
}
