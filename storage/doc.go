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


// Package storage provides the snapshot cache abstraction for catalog.
//
// The engine itself owns no persistent state: a search is a pure function
// of the record collection and the options. The only persistence in the
// system is an optional, best-effort cache of the most recent successful
// parse, keyed by the feed content, so a caller can reload a large feed
// without re-parsing it.
//
// This package defines the CatalogCache interface that decouples the cache
// contract from its implementation, and the serialization helpers shared
// by implementations. The storage/badger subpackage provides the BadgerDB
// implementation (on disk or in memory).
//
// Create a cache instance:
//
//	cache, err := badger.NewCache("/path/to/cache")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// All cache implementations must be safe for concurrent use: a snapshot is
// written in a single transaction, so a concurrent reader observes either
// the previous snapshot or the new one, never a partial state.
package storage
