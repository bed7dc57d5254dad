// Copyright 2025 Poiesic Systems
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


// Package search provides weighted multi-field relevance search over an
// in-memory product collection.
//
// The Engine type ranks products against a free-text query by scoring each
// of four weighted fields (title, vendor, description, tags) through a
// fixed strategy ladder:
//   - Exact full-field match
//   - Prefix match
//   - Word-boundary match
//   - Substring match
//   - Fuzzy subsequence match
//
// Structured filters (vendor set, price interval, stock) shrink the
// candidate set before scoring, and a sort engine applies one of six total
// orders either as the primary order or as an override of relevance order.
// A search is a pure function of the record collection and the options;
// the Engine holds no state across invocations.
package search
