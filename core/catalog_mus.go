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
	"fmt"
	"regexp"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the catalog. Entries are encoded as an ordered list
// of (pattern, definition) pairs rather than a map so the first-insertion
// order of patterns survives a round trip; the name index depends on it.

// ParamRuleMUS serializes ParamRule values.
var ParamRuleMUS = paramRuleMUS{}

type paramRuleMUS struct{}

func (paramRuleMUS) Marshal(r ParamRule, bs []byte) (n int) {
	n = ord.Bool.Marshal(r.IsPattern(), bs)
	src := r.Name
	if r.IsPattern() {
		src = r.Pattern.String()
	}
	n += ord.String.Marshal(src, bs[n:])
	return
}

func (paramRuleMUS) Unmarshal(bs []byte) (r ParamRule, n int, err error) {
	isPattern, n, err := ord.Bool.Unmarshal(bs)
	if err != nil {
		return
	}
	src, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if isPattern {
		re, cerr := regexp.Compile(src)
		if cerr != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidParamRule, src, cerr)
			return
		}
		r = PatternParam(re)
		return
	}
	r = LiteralParam(src)
	return
}

func (paramRuleMUS) Size(r ParamRule) (size int) {
	src := r.Name
	if r.IsPattern() {
		src = r.Pattern.String()
	}
	return ord.Bool.Size(r.IsPattern()) + ord.String.Size(src)
}

// DefinitionMUS serializes Definition values.
var DefinitionMUS = definitionMUS{}

type definitionMUS struct{}

func (definitionMUS) Marshal(d Definition, bs []byte) (n int) {
	n = ord.String.Marshal(d.Name, bs)
	n += varint.Int.Marshal(len(d.Params), bs[n:])
	for _, p := range d.Params {
		n += ParamRuleMUS.Marshal(p, bs[n:])
	}
	n += ord.String.Marshal(d.Backlink, bs[n:])
	n += varint.Int.Marshal(len(d.Charsets), bs[n:])
	for _, cs := range d.Charsets {
		n += ord.String.Marshal(cs, bs[n:])
	}
	return
}

func (definitionMUS) Unmarshal(bs []byte) (d Definition, n int, err error) {
	d.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}

	var count, n1 int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count > 0 {
		d.Params = make([]ParamRule, 0, count)
	}
	for i := 0; i < count; i++ {
		var rule ParamRule
		rule, n1, err = ParamRuleMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		d.Params = append(d.Params, rule)
	}

	d.Backlink, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count > 0 {
		d.Charsets = make([]string, 0, count)
	}
	for i := 0; i < count; i++ {
		var cs string
		cs, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		d.Charsets = append(d.Charsets, cs)
	}
	return
}

func (definitionMUS) Size(d Definition) (size int) {
	size = ord.String.Size(d.Name)
	size += varint.Int.Size(len(d.Params))
	for _, p := range d.Params {
		size += ParamRuleMUS.Size(p)
	}
	size += ord.String.Size(d.Backlink)
	size += varint.Int.Size(len(d.Charsets))
	for _, cs := range d.Charsets {
		size += ord.String.Size(cs)
	}
	return
}

// CatalogMUS serializes whole catalogs.
var CatalogMUS = catalogMUS{}

type catalogMUS struct{}

func (catalogMUS) Marshal(c *Catalog, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(c.fingerprint), bs)
	n += varint.Int.Marshal(len(c.patterns), bs[n:])
	for _, p := range c.patterns {
		n += ord.String.Marshal(p, bs[n:])
		n += DefinitionMUS.Marshal(c.entries[p], bs[n:])
	}
	return
}

func (catalogMUS) Unmarshal(bs []byte) (c *Catalog, n int, err error) {
	fp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}

	count, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	entries := make([]CatalogEntry, 0, count)
	for i := 0; i < count; i++ {
		var (
			pattern string
			def     Definition
		)
		pattern, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		def, n1, err = DefinitionMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		entries = append(entries, CatalogEntry{Pattern: pattern, Definition: def})
	}

	c = NewCatalog(entries, Fingerprint(fp))
	return
}

func (catalogMUS) Size(c *Catalog) (size int) {
	size = varint.Uint64.Size(uint64(c.fingerprint))
	size += varint.Int.Size(len(c.patterns))
	for _, p := range c.patterns {
		size += ord.String.Size(p)
		size += DefinitionMUS.Size(c.entries[p])
	}
	return
}
