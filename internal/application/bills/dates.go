package bills

import (
	"fmt"
	"time"
)

// Meses abreviados en francés, con mayúscula inicial, tal como los produce la
// UI de Billed ("4 Avr. 04"). No es orden lexicográfico: por eso el listado
// ordena por el valor crudo y solo muestra este formato.
var frenchShortMonths = [...]string{
	"Janv.", "Févr.", "Mars", "Avr.", "Mai", "Juin",
	"Juil.", "Août", "Sept.", "Oct.", "Nov.", "Déc.",
}

// FormatDate convierte una fecha ISO 8601 (YYYY-MM-DD) al formato corto
// francés de pantalla: día sin cero inicial, mes abreviado, año de dos cifras.
// Devuelve error si la fecha no se puede parsear; el caller decide qué mostrar.
func FormatDate(isoDate string) (string, error) {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return "", fmt.Errorf("fecha no parseable %q: %w", isoDate, err)
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchShortMonths[t.Month()-1], t.Year()%100), nil
}
