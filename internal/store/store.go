// Package store persists whole collections as JSON files. Every
// mutation rewrites the owning file; payloads are small enough that
// incremental writes are not worth the complexity.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/example/barboard/internal/domain"
)

const (
	ordersFile = "orders.json"
	menuFile   = "menu.json"
	usersFile  = "users.json"
)

type Store interface {
	LoadOrders() ([]*domain.Order, error)
	SaveOrders([]*domain.Order) error
	LoadMenu() ([]*domain.MenuItem, error)
	SaveMenu([]*domain.MenuItem) error
	LoadUsers() ([]*domain.User, error)
	SaveUsers([]*domain.User) error
}

// FileStore keeps each collection in dir as a pretty-printed JSON
// file. The afero.Fs lets tests run against a MemMapFs.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

func (s *FileStore) LoadOrders() ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := s.load(ordersFile, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *FileStore) SaveOrders(orders []*domain.Order) error {
	return s.save(ordersFile, orders)
}

func (s *FileStore) LoadMenu() ([]*domain.MenuItem, error) {
	var items []*domain.MenuItem
	if err := s.load(menuFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) SaveMenu(items []*domain.MenuItem) error {
	return s.save(menuFile, items)
}

func (s *FileStore) LoadUsers() ([]*domain.User, error) {
	var users []*domain.User
	if err := s.load(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) SaveUsers(users []*domain.User) error {
	return s.save(usersFile, users)
}

// load reads the named collection. A missing file is an empty
// collection, not an error: the orders file does not exist until the
// first order is saved.
func (s *FileStore) load(name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("module", "store").Str("file", name).Msg("no data file, starting empty")
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *FileStore) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Err: err}
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.PersistenceError{Err: err}
	}
	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return &domain.PersistenceError{Err: err}
	}
	return nil
}
