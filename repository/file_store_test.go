package repository_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storefront-service/models"
	"storefront-service/repository"
)

func TestFileStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.Store {
		s, err := repository.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
		require.NoError(t, err)
		return s
	})
}

type FileStoreTestSuite struct {
	suite.Suite
	dir   string
	path  string
	store *repository.FileStore
}

func (s *FileStoreTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.path = filepath.Join(s.dir, "nested", "db.json")

	store, err := repository.NewFileStore(s.path)
	s.Require().NoError(err)
	s.store = store
}

func TestFileStore(t *testing.T) {
	suite.Run(t, new(FileStoreTestSuite))
}

func (s *FileStoreTestSuite) readDocument() map[string]json.RawMessage {
	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	var raw map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(data, &raw))
	return raw
}

func (s *FileStoreTestSuite) TestCreatesEmptyDocument() {
	raw := s.readDocument()
	s.JSONEq(`[]`, string(raw["users"]))
	s.JSONEq(`{}`, string(raw["carts"]))
}

func (s *FileStoreTestSuite) TestDocumentLayout() {
	ctx := context.Background()
	s.Require().NoError(s.store.CreateAccount(ctx, models.Account{Email: "ann@example.com", Password: "secret"}))

	raw := s.readDocument()
	s.JSONEq(`[{"email":"ann@example.com","password":"secret"}]`, string(raw["users"]))
	s.JSONEq(`{"ann@example.com":{"items":[]}}`, string(raw["carts"]))
}

func (s *FileStoreTestSuite) TestReadsExistingDocument() {
	doc := `{
  "users": [{"email": "bob@example.com", "password": "pw"}],
  "carts": {"bob@example.com": {"items": [{"id": 7, "title": "Mug", "price": 12.5, "image": "mug.png", "quantity": 2}]}}
}`
	path := filepath.Join(s.dir, "existing.json")
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0o644))

	store, err := repository.NewFileStore(path)
	s.Require().NoError(err)

	c, err := store.GetCart(context.Background(), "bob@example.com")
	s.Require().NoError(err)
	s.Require().Len(c.Items, 1)
	s.Equal(7, c.Items[0].ID)
	s.Equal(2, c.Items[0].Quantity)
	s.Equal("12.5", c.Items[0].Price.String())
}

func (s *FileStoreTestSuite) TestToleratesMissingSections() {
	path := filepath.Join(s.dir, "partial.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{}`), 0o644))

	store, err := repository.NewFileStore(path)
	s.Require().NoError(err)
	s.Require().NoError(store.ReplaceCart(context.Background(), "x@example.com", models.EmptyCart()))
}

func (s *FileStoreTestSuite) TestCorruptDocumentFails() {
	s.Require().NoError(os.WriteFile(s.path, []byte(`{not json`), 0o644))

	_, err := s.store.GetCart(context.Background(), "ann@example.com")
	s.Error(err)

	_, err = repository.NewFileStore(s.path)
	s.Error(err)
}

func (s *FileStoreTestSuite) TestNoTempFilesLeftBehind() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.ReplaceCart(ctx, "ann@example.com", models.EmptyCart()))
	}

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func TestFileStore_NilItemsPersistAsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.ReplaceCart(context.Background(), "a@example.com", models.Cart{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items": []`)
}
