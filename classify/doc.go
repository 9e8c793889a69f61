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


// Package classify resolves referrer URLs to search engines and extracts
// the keyword the visitor typed.
//
// The Classifier implements a multi-stage matching algorithm over a
// frozen catalog:
//   - host matching with an ordered fallback chain (exact host+path,
//     exact host, lossy host+path, lossy host, fixed special cases)
//   - per-engine keyword extraction (literal parameters, regex rules,
//     Google image/advanced-search recovery, no-keyword overrides)
//   - charset-aware decoding to lowercase UTF-8
//
// Classification is a pure read over the catalog snapshot; a Classifier
// is safe for concurrent use.
package classify
