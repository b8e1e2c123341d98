// Package receiptstore guarda en disco los justificantes (imágenes de recibo)
// subidos con las notas de frais. Escritura en dos tiempos: fichero temporal,
// fsync y rename atómico; así nunca queda visible un justificante a medias.
package receiptstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ReceiptStore almacenamiento físico de justificantes.
type ReceiptStore struct {
	dataDir string
}

// New crea el store y la carpeta de datos si no existe.
func New(dataDir string) (*ReceiptStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("crear directorio de justificantes %s: %w", dataDir, err)
	}
	return &ReceiptStore{dataDir: dataDir}, nil
}

// Save escribe el contenido y devuelve el nombre de almacenamiento asignado
// (uuid + extensión original). El nombre original no se usa en disco.
func (s *ReceiptStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storageName := uuid.New().String() + ext
	fullPath := filepath.Join(s.dataDir, storageName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("crear fichero temporal: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("escribir justificante: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("cerrar fichero: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename atómico: %w", err)
	}
	return storageName, nil
}

// Open abre un justificante guardado por su nombre de almacenamiento.
func (s *ReceiptStore) Open(storageName string) (io.ReadCloser, error) {
	// Nunca salir del dataDir aunque el nombre venga corrupto de la DB.
	clean := filepath.Base(storageName)
	f, err := os.Open(filepath.Join(s.dataDir, clean))
	if err != nil {
		return nil, fmt.Errorf("abrir justificante %s: %w", clean, err)
	}
	return f, nil
}

// ContentType tipo MIME según la extensión del fichero.
func ContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
