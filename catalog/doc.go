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


// Package catalog turns the declarative search-engine definitions document
// into the frozen lookup catalog the classifier matches referrers against.
//
// The definitions document is a YAML mapping from engine name to a list of
// blocks, each block carrying the URL patterns the engine appears under and
// optional parameter rules, backlink pattern, and charsets:
//
//	Google:
//	  - urls: ["google.com", "google.{}"]
//	    params: ["q", "query"]
//	    backlink: "search?q={k}"
//
// Flattening is order-dependent by contract: the document is walked in
// document order and a later URL overwrites an earlier identical one
// (last write wins). Contributors registered on Build may append or
// override entries before the catalog freezes; after Build the catalog
// is immutable and safe for concurrent readers.
package catalog
