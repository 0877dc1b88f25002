package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

// formFiles arma headers reales, con contenido abrible, vía un form en memoria
func formFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("Expected no error creating form file, got %v", err)
		}
		part.Write([]byte("fake image bytes"))
	}
	writer.Close()

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("Expected no error reading form, got %v", err)
	}
	return form.File["images"]
}

// Test: Un lote válido pasa la validación
func TestValidateImages_Valid(t *testing.T) {
	files := []*multipart.FileHeader{
		header("front.jpg", 1024),
		header("back.PNG", MaxImageSize), // extensión en mayúsculas también vale
		header("plan.webp", 500),
	}

	if err := ValidateImages(files); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

// Test: Más de 10 archivos rechazados
func TestValidateImages_TooMany(t *testing.T) {
	files := make([]*multipart.FileHeader, 11)
	for i := range files {
		files[i] = header("img.jpg", 100)
	}

	if err := ValidateImages(files); !errors.Is(err, ErrTooManyFiles) {
		t.Errorf("Expected ErrTooManyFiles, got %v", err)
	}
}

// Test: Archivo por encima de 5 MB rechazado
func TestValidateImages_TooLarge(t *testing.T) {
	files := []*multipart.FileHeader{header("big.jpg", MaxImageSize+1)}

	if err := ValidateImages(files); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}

// Test: Extensiones fuera de la lista rechazadas
func TestValidateImages_InvalidType(t *testing.T) {
	for _, name := range []string{"anim.gif", "doc.pdf", "noext"} {
		files := []*multipart.FileHeader{header(name, 100)}

		if err := ValidateImages(files); !errors.Is(err, ErrInvalidFileType) {
			t.Errorf("%s: expected ErrInvalidFileType, got %v", name, err)
		}
	}
}

// Test: Un solo archivo inválido invalida el lote entero
func TestValidateImages_AllOrNothing(t *testing.T) {
	files := []*multipart.FileHeader{
		header("ok.jpg", 100),
		header("bad.gif", 100),
	}

	if err := ValidateImages(files); !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("Expected ErrInvalidFileType, got %v", err)
	}
}

// Test: Guardar un lote escribe los archivos y devuelve las rutas públicas
func TestSaveImages_WritesFiles(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalImageStorage(base)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	paths, err := storage.SaveImages(formFiles(t, "front.jpg", "back.png"))

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	for _, path := range paths {
		if !strings.HasPrefix(path, "uploads/properties/") {
			t.Errorf("Expected public path under uploads/properties/, got %s", path)
		}
		onDisk := filepath.Join(base, "properties", filepath.Base(path))
		if _, err := os.Stat(onDisk); err != nil {
			t.Errorf("Expected file on disk at %s, got %v", onDisk, err)
		}
	}
}

// Test: Si un archivo del lote falla no queda ninguno en disco
func TestSaveImages_CleansUpOnFailure(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalImageStorage(base)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// El header fabricado no tiene contenido: Open() falla al guardarlo,
	// después de que el primer archivo ya se escribió
	files := formFiles(t, "ok.jpg")
	files = append(files, header("broken.jpg", 100))

	if _, err := storage.SaveImages(files); err == nil {
		t.Fatal("Expected an error for the broken file")
	}

	entries, err := os.ReadDir(filepath.Join(base, "properties"))
	if err != nil {
		t.Fatalf("Expected no error reading directory, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files left on disk, got %d", len(entries))
	}
}

// Test: El constructor crea el subdirectorio de propiedades
func TestNewLocalImageStorage_CreatesDirectory(t *testing.T) {
	base := t.TempDir()

	if _, err := NewLocalImageStorage(base); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(filepath.Join(base, "properties"))
	if err != nil || !info.IsDir() {
		t.Errorf("Expected properties directory to exist, got %v", err)
	}
}
