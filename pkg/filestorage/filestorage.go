package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface é o contrato do armazenamento de anexos (certificados
// de calibração, fotos de equipamento). A chave retornada é gravada no banco.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (key string, err error)
	Delete(key string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("não foi possível criar o diretório de uploads: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	ext := filepath.Ext(originalFileName)
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Delete(key string) error {
	relativePath := strings.TrimPrefix(key, "/uploads/")
	fullPath := filepath.Join(s.basePath, relativePath)

	// Se o arquivo já não existe, a remoção conta como sucesso.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
