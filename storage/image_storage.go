package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"properties-api/domain"
)

// MaxImageSize es el tamaño máximo por archivo: 5 MB
const MaxImageSize = 5 * 1024 * 1024

// Errores de validación de archivos
// El controlador los mapea a 400
var (
	ErrTooManyFiles    = errors.New("too many image files: maximum is 10")
	ErrFileTooLarge    = errors.New("image file exceeds the 5 MB limit")
	ErrInvalidFileType = errors.New("only jpeg, jpg, png and webp files are allowed")
)

// allowedExtensions son las extensiones de imagen aceptadas
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// ImageStorage define la interfaz del almacenamiento de imágenes
// Mantenerla angosta deja a los servicios testeables sin filesystem real
type ImageStorage interface {
	SaveImages(files []*multipart.FileHeader) ([]string, error)
}

// LocalImageStorage guarda las imágenes en disco, bajo baseDir/properties
type LocalImageStorage struct {
	baseDir string
}

// NewLocalImageStorage crea el almacenamiento local y su directorio
func NewLocalImageStorage(baseDir string) (*LocalImageStorage, error) {
	dir := filepath.Join(baseDir, "properties")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalImageStorage{baseDir: baseDir}, nil
}

// ValidateImages aplica los límites de cantidad, tamaño y tipo
// Se corre completa ANTES de escribir cualquier archivo: si un archivo
// no pasa, no se persiste ninguno
func ValidateImages(files []*multipart.FileHeader) error {
	if len(files) > domain.MaxPropertyImages {
		return ErrTooManyFiles
	}
	for _, file := range files {
		if file.Size > MaxImageSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, file.Filename)
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			return fmt.Errorf("%w: %s", ErrInvalidFileType, file.Filename)
		}
	}
	return nil
}

// SaveImages valida y guarda los archivos, devolviendo sus rutas
func (s *LocalImageStorage) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	if err := ValidateImages(files); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	written := make([]string, 0, len(files))
	for i, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		name := fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), i, ext)

		dst := filepath.Join(s.baseDir, "properties", name)
		if err := saveFile(file, dst); err != nil {
			// No dejar un lote a medias en disco
			for _, w := range written {
				os.Remove(w)
			}
			return nil, fmt.Errorf("failed to save image %s: %w", file.Filename, err)
		}
		written = append(written, dst)

		// La referencia guardada es la ruta pública bajo /uploads
		paths = append(paths, "uploads/properties/"+name)
	}
	return paths, nil
}

// saveFile copia un archivo del form al destino
func saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
