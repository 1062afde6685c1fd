// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains the data-access layer for Sitescope.
//
// It abstracts the underlying database (SQLite by default, PostgreSQL or
// MySQL via configuration) behind the Store interface, backed by a
// Bun-based implementation. A package-level store is initialized once via
// InitDB or New; tests inject fakes with SetStore or use NewMemoryStore.
package db
