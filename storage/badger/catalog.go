// Copyright 2026 Trafficlens Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/trafficlens/refsearch/core"
	"github.com/trafficlens/refsearch/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) *CatalogRepository {
	return &CatalogRepository{
		backend: backend,
	}
}

// PutCatalog stores a catalog snapshot under its fingerprint and points
// the latest marker at it.
func (r *CatalogRepository) PutCatalog(ctx context.Context, catalog *core.Catalog) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCatalogKey(catalog.Fingerprint())
		if err := tx.Set(key, storage.MarshalCatalog(catalog)); err != nil {
			return err
		}

		latest := make([]byte, 8)
		binary.BigEndian.PutUint64(latest, uint64(catalog.Fingerprint()))
		if err := tx.Set([]byte(catalogLatestKey), latest); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetCatalog retrieves the snapshot stored under fingerprint.
func (r *CatalogRepository) GetCatalog(ctx context.Context, fingerprint core.Fingerprint) (*core.Catalog, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var catalog *core.Catalog
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCatalogKey(fingerprint))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			catalog, unmarshalErr = storage.UnmarshalCatalog(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LatestCatalog retrieves the snapshot the latest marker points at.
func (r *CatalogRepository) LatestCatalog(ctx context.Context) (*core.Catalog, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var fp core.Fingerprint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(catalogLatestKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return storage.ErrSerializationFailed
			}
			fp = core.Fingerprint(binary.BigEndian.Uint64(val))
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return r.GetCatalog(ctx, fp)
}

// DeleteCatalog removes the snapshot stored under fingerprint.
func (r *CatalogRepository) DeleteCatalog(ctx context.Context, fingerprint core.Fingerprint) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCatalogKey(fingerprint)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (r *CatalogRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
