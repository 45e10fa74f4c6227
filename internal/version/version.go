// Package version resolves the API revision a request asks for.
//
// Callers declare a version in the Accept-Version header. Each operation
// supports exactly one version string and matching is exact: there is no
// range or semantic-version comparison.
package version

import (
	"fmt"
	"net/http"

	"github.com/serroba/shortipy/internal/domain"
)

const (
	// Header carries the caller's requested version.
	Header = "Accept-Version"

	// Default is assumed when the caller sends no version.
	Default = "1.0"

	// MetadataKey is the huma operation metadata key holding the supported version.
	MetadataKey = "apiVersion"

	// Status is returned when no revision of an operation matches the request.
	Status = http.StatusNotAcceptable
)

// Resolve checks declared against supported. An empty declared version means Default.
func Resolve(declared, supported string) error {
	if declared == "" {
		declared = Default
	}

	if declared != supported {
		return fmt.Errorf("version %q (supported %q): %w", declared, supported, domain.ErrMethodVersionNotFound)
	}

	return nil
}
