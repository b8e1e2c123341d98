// Package storeerr define el error estructurado que cruza la frontera del
// store remoto. El contrato observable del listado son tres salidas: "Erreur
// 404", "Erreur 500" o el mensaje crudo del error; la clasificación por
// substring ("404"/"500") se conserva solo como shim de compatibilidad para
// stores que devuelven errores planos.
package storeerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind clase estructurada del fallo remoto.
type Kind int

const (
	// KindUnknown fallo sin clasificar: se muestra el mensaje crudo.
	KindUnknown Kind = iota
	// KindNotFound el recurso no existe en el store remoto.
	KindNotFound
	// KindInternal fallo interno del store remoto.
	KindInternal
)

// Error error del store remoto con clase estructurada y mensaje legible.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New construye un error de store sin causa subyacente.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap construye un error de store envolviendo la causa.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf devuelve la clase del error. Si no es un *Error estructurado aplica
// el shim de compatibilidad: busca los tokens "404"/"500" en el mensaje.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "404"):
		return KindNotFound
	case strings.Contains(msg, "500"):
		return KindInternal
	default:
		return KindUnknown
	}
}

// Display texto a mostrar al usuario para un fallo del listado.
func Display(err error) string {
	switch KindOf(err) {
	case KindNotFound:
		return "Erreur 404"
	case KindInternal:
		return "Erreur 500"
	default:
		return err.Error()
	}
}
