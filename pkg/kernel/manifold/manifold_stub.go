//go:build !manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library. Without the "manifold" build tag only this stub is
// compiled, and New reports that the backend is unavailable so callers
// can fall back to the sdfx kernel.
package manifold

import (
	"errors"

	"github.com/chazu/cogworks/pkg/kernel"
)

// ErrUnavailable is returned by New when the binary was built without
// the manifold tag.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// New always fails in stub builds.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
