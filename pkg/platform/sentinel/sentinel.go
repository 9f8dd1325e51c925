// Package sentinel holds infrastructure sentinel errors. Stores return these
// (optionally wrapped) so services can translate them into coded domain
// errors. They represent factual states about resources, not validation
// failures; for validation use pkg/domain-errors directly.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
