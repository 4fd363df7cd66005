// Package bundle assembles selected guidelines into an assistant-specific
// configuration bundle and writes it to disk with provenance tracking.
package bundle

import "errors"

// Sentinel errors for bundle operations.
var (
	// ErrTemplateNotFound indicates the entry template could not be read.
	ErrTemplateNotFound = errors.New("bundle: template not found")

	// ErrMissingTemplateKey indicates the entry template referenced a key
	// absent from the render data.
	ErrMissingTemplateKey = errors.New("bundle: missing template key")

	// ErrUnexpandedToken indicates dynamic tokens survived rendering.
	ErrUnexpandedToken = errors.New("bundle: unexpanded token in rendered output")

	// ErrPathTraversal indicates a bundle file path escapes the output root.
	ErrPathTraversal = errors.New("bundle: path escapes output root")

	// ErrEmptySelection indicates the filters matched no guidelines.
	ErrEmptySelection = errors.New("bundle: no guidelines matched the filters")

	// ErrUnknownTarget indicates an unsupported assistant target.
	ErrUnknownTarget = errors.New("bundle: unknown target")
)
