package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront-service/models"
)

// FileStore keeps every account and cart in a single JSON document that is
// read and rewritten whole on each operation. The mutex makes each method
// atomic with respect to the document; it does not order a caller's
// separate GetCart and ReplaceCart calls.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens the document at path, creating an empty one if the
// file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := s.write(models.NewDocument()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) CreateAccount(_ context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for _, u := range doc.Users {
		if u.Email == account.Email {
			return ErrDuplicate
		}
	}

	doc.Users = append(doc.Users, account)
	if _, ok := doc.Carts[account.Email]; !ok {
		doc.Carts[account.Email] = models.EmptyCart()
	}
	return s.write(doc)
}

func (s *FileStore) FindAccount(_ context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, u := range doc.Users {
		if u.Email == email {
			acct := u
			return &acct, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) GetCart(_ context.Context, email string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return models.Cart{}, err
	}
	c, ok := doc.Carts[email]
	if !ok {
		return models.EmptyCart(), nil
	}
	return c.Normalize(), nil
}

func (s *FileStore) ReplaceCart(_ context.Context, email string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Carts[email] = cart.Normalize()
	return s.write(doc)
}

func (s *FileStore) Snapshot(_ context.Context) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Document{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []models.Account{}
	}
	if doc.Carts == nil {
		doc.Carts = map[string]models.Cart{}
	}
	return doc, nil
}

// write replaces the document through a temp file and rename so readers
// never observe a half-written file.
func (s *FileStore) write(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
