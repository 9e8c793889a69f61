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

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// FingerprintOf generates a deterministic fingerprint of a definitions
// document using BLAKE2b hashing. Identical documents produce identical
// fingerprints, so a persisted catalog can be reused without re-parsing.
func FingerprintOf(document []byte) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(document)
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}
