package manager

import (
	"fmt"
	"strings"
)

// unknownPairError signals an unsupported translation pair (client input
// fault, 422 at the HTTP boundary). It carries the supported pairs for
// caller diagnostics.
type unknownPairError struct {
	pair      string
	supported []string
}

func (e unknownPairError) Error() string {
	return fmt.Sprintf("translation pair %q not found. available pairs: [%s]",
		e.pair, strings.Join(e.supported, ", "))
}

// ErrUnknownPair constructs an unknownPairError.
func ErrUnknownPair(pair string, supported []string) error {
	return unknownPairError{pair: pair, supported: supported}
}

// IsUnknownPair reports whether err indicates an unsupported translation pair.
func IsUnknownPair(err error) bool {
	_, ok := err.(unknownPairError)
	return ok
}

// invalidInputError signals empty or otherwise unusable input text (400).
type invalidInputError struct{ msg string }

func (e invalidInputError) Error() string { return e.msg }

// ErrInvalidInput constructs an invalidInputError.
func ErrInvalidInput(msg string) error { return invalidInputError{msg: msg} }

// IsInvalidInput reports whether err indicates invalid request input.
func IsInvalidInput(err error) bool {
	_, ok := err.(invalidInputError)
	return ok
}

// artifactMissingError signals that a pair's bundle is not available on
// local disk and policy forbade (or fetching failed to produce) it.
type artifactMissingError struct {
	pair string
	dir  string
	// remote marks bundles that were also absent from the storage backend.
	remote bool
}

func (e artifactMissingError) Error() string {
	if e.remote {
		return fmt.Sprintf("artifact for translation pair %q not found remotely; publish the model first", e.pair)
	}
	return fmt.Sprintf("model for translation pair %q not found at %q; provision the model first", e.pair, e.dir)
}

// ErrArtifactMissing constructs an artifactMissingError for a local miss.
func ErrArtifactMissing(pair, dir string) error {
	return artifactMissingError{pair: pair, dir: dir}
}

// IsArtifactMissing reports whether err indicates a missing artifact bundle.
func IsArtifactMissing(err error) bool {
	_, ok := err.(artifactMissingError)
	return ok
}

// incompleteArtifactError signals a bundle that exists but lacks required
// files: a data-integrity fault that needs re-provisioning, not a retry.
type incompleteArtifactError struct {
	pair    string
	missing []string
}

func (e incompleteArtifactError) Error() string {
	return fmt.Sprintf("artifact bundle for %q is incomplete, missing files: [%s]",
		e.pair, strings.Join(e.missing, ", "))
}

// ErrIncompleteArtifact constructs an incompleteArtifactError.
func ErrIncompleteArtifact(pair string, missing []string) error {
	return incompleteArtifactError{pair: pair, missing: missing}
}

// MissingFiles returns the required files absent from the bundle.
func (e incompleteArtifactError) MissingFiles() []string { return e.missing }

// IsIncompleteArtifact reports whether err indicates a partial bundle.
func IsIncompleteArtifact(err error) bool {
	_, ok := err.(incompleteArtifactError)
	return ok
}

// fetchError wraps a conversion or download failure. Non-fatal at startup
// granularity, fatal for a single predict under strict policy.
type fetchError struct {
	pair  string
	cause error
}

func (e fetchError) Error() string {
	return fmt.Sprintf("fetch model for %q: %v", e.pair, e.cause)
}

func (e fetchError) Unwrap() error { return e.cause }

// ErrFetchFailure constructs a fetchError.
func ErrFetchFailure(pair string, cause error) error {
	return fetchError{pair: pair, cause: cause}
}

// IsFetchFailure reports whether err indicates a failed artifact fetch.
func IsFetchFailure(err error) bool {
	_, ok := err.(fetchError)
	return ok
}
