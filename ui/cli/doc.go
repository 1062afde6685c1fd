// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Sitescope using
// Cobra. It wires configuration, default services, and provides commands
// that delegate to the analysis packages. CLI code should remain thin and
// delegate business logic to the internal packages.
package cli
