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
	"fmt"

	"github.com/trafficlens/refsearch/core"
)

// MarshalCatalog serializes a Catalog to bytes.
func MarshalCatalog(catalog *core.Catalog) []byte {
	buf := make([]byte, core.CatalogMUS.Size(catalog))
	core.CatalogMUS.Marshal(catalog, buf)
	return buf
}

// UnmarshalCatalog deserializes a Catalog from bytes.
func UnmarshalCatalog(data []byte) (*core.Catalog, error) {
	catalog, _, err := core.CatalogMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return catalog, nil
}
