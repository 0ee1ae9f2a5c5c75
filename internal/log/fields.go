// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService       = "service"
	FieldVersion       = "version"
	FieldCorrelationID = "correlation_id"
	FieldRequestID     = "request_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Config fields
	FieldConfigPath  = "config_path"
	FieldFormat      = "format"
	FieldFingerprint = "fingerprint"
	FieldChanged     = "changed"
	FieldEnvKey      = "key"
	FieldSource      = "source"

	// Content fields
	FieldRoot       = "root"
	FieldPath       = "path"
	FieldPatterns   = "patterns"
	FieldFiles      = "files"
	FieldCandidates = "candidates"
	FieldDuration   = "duration"
)
