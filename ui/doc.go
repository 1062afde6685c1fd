// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui contains the top-level UI wiring for Sitescope.
//
// This package exposes the high-level UI entry points used by the
// application to start the different user interfaces (CLI, TUI).
package ui
