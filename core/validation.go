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


package core

import "fmt"

// ValidateDefinition validates a Definition according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - Params (an engine may carry none; matching then never yields a keyword)
//   - Backlink and Charsets (both optional)
func ValidateDefinition(def *Definition) error {
	if def == nil {
		return fmt.Errorf("%w: definition is nil", ErrInvalidDefinition)
	}

	if def.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, ErrEmptyEngineName)
	}

	return nil
}

// ValidateEntry validates a catalog entry before it is admitted.
func ValidateEntry(entry *CatalogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidDefinition)
	}

	if entry.Pattern == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, ErrEmptyPattern)
	}

	return ValidateDefinition(&entry.Definition)
}
