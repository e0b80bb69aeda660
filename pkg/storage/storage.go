package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("arquivo não encontrado")

// FileStorage guarda arquivos enviados (notas fiscais, imagens de item)
// em um diretório local. O armazenamento definitivo é um colaborador
// externo; aqui mantemos apenas os bytes e os caminhos.
type FileStorage struct {
	baseDir string
}

// NewFileStorage cria o armazenamento no diretório informado
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de uploads: %w", err)
	}
	return &FileStorage{baseDir: baseDir}, nil
}

// Save grava o conteúdo em um subdiretório, com nome único preservando a
// extensão original, e retorna o caminho relativo
func (s *FileStorage) Save(subdir, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("erro ao gravar arquivo: %w", err)
	}

	return path, nil
}

// Open abre um arquivo previamente salvo
func (s *FileStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("erro ao abrir arquivo: %w", err)
	}
	return f, nil
}

// Remove apaga um arquivo; arquivo inexistente não é erro
func (s *FileStorage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erro ao remover arquivo: %w", err)
	}
	return nil
}
