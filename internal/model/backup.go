// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// BackupData is the portable dump format used by the backup and restore
// commands. It contains everything needed to rebuild the store on any
// supported database backend.
type BackupData struct {
	Version  int             `json:"version"`
	Reports  []Report        `json:"reports"`
	AuditLog []AuditLogEntry `json:"audit_log"`
}

// BackupFormatVersion is bumped when the backup layout changes in a way
// older binaries cannot read.
const BackupFormatVersion = 1
