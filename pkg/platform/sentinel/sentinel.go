package sentinel

import "errors"

// ErrNotFound marks a lookup for an entity that does not exist. Stores return
// it (optionally wrapped) so services and handlers can translate it into a
// domain error without inspecting driver error types.
//
// For validation errors use pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
