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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDefinition indicates a Definition failed validation.
	ErrInvalidDefinition = errors.New("invalid search engine definition")

	// ErrEmptyEngineName indicates the definition Name field is empty.
	ErrEmptyEngineName = errors.New("engine name cannot be empty")

	// ErrEmptyPattern indicates a catalog entry has an empty URL pattern.
	ErrEmptyPattern = errors.New("url pattern cannot be empty")

	// ErrInvalidParamRule indicates a parameter rule could not be parsed.
	ErrInvalidParamRule = errors.New("invalid parameter rule")
)
