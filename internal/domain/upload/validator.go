// Package upload valida el justificante elegido en el formulario antes de
// asignar cualquier campo de la nota. Sin red ni almacenamiento: puro y
// determinista para un mismo nombre de fichero.
package upload

import (
	"path/filepath"
	"strings"

	"github.com/billed-app/billed-api/internal/domain"
)

// Candidate fichero candidato a justificante: nombre original y MIME declarado.
// Transitorio, nunca se persiste.
type Candidate struct {
	FileName string
	MIMEType string
}

// Extensiones aceptadas (imágenes de recibos). La comparación ignora mayúsculas.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Validate acepta el candidato o devuelve domain.ErrUnsupportedFileType.
// El caller es quien limpia la selección y muestra u oculta el mensaje de
// error en el estado de la vista.
func Validate(c Candidate) error {
	ext := strings.ToLower(filepath.Ext(c.FileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}
	return nil
}
