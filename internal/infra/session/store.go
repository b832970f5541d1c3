package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

type Store interface {
	Exists() bool
	Load() (entity.Session, error)
	Save(sess entity.Session) error
	Delete() error
}

// FileStore guarda a sessão como JSON em um único arquivo.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

func (s *FileStore) Load() (entity.Session, error) {
	var sess entity.Session

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return sess, fmt.Errorf("erro ao ler sessão: %w", err)
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return sess, fmt.Errorf("sessão corrompida em %s: %w", s.Path, err)
	}
	if sess.JID == "" {
		return sess, fmt.Errorf("sessão sem JID em %s", s.Path)
	}
	return sess, nil
}

func (s *FileStore) Save(sess entity.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar sessão: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("erro ao criar pasta da sessão: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("erro ao gravar sessão: %w", err)
	}
	return nil
}

func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("erro ao excluir sessão: %w", err)
	}
	return nil
}
