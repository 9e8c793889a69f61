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


package storage

import (
	"context"

	"github.com/trafficlens/refsearch/core"
)

// CatalogRepository persists compiled catalog snapshots keyed by the
// fingerprint of the definitions document they were built from.
// Implementations must be thread-safe and support concurrent access.
type CatalogRepository interface {
	// PutCatalog stores a compiled catalog under its own fingerprint,
	// replacing any previous snapshot with that fingerprint. The latest
	// pointer is updated to the stored snapshot.
	PutCatalog(ctx context.Context, catalog *core.Catalog) error

	// GetCatalog retrieves the catalog stored under fingerprint.
	// Returns ErrNotFound if no snapshot with that fingerprint exists.
	GetCatalog(ctx context.Context, fingerprint core.Fingerprint) (*core.Catalog, error)

	// LatestCatalog retrieves the most recently stored catalog.
	// Returns ErrNotFound if nothing has been stored yet.
	LatestCatalog(ctx context.Context) (*core.Catalog, error)

	// DeleteCatalog removes the snapshot stored under fingerprint.
	// Returns ErrNotFound if no such snapshot exists. The latest pointer
	// is left untouched; a dangling pointer reads as ErrNotFound.
	DeleteCatalog(ctx context.Context, fingerprint core.Fingerprint) error

	// Close closes the storage backend and releases resources.
	Close() error
}
