package named

import "errors"

var (
	// ErrManifestNotFound indicates neither <name>.xml nor <name> exists in
	// the manifests directory.
	ErrManifestNotFound = errors.New("named manifest not found")

	// ErrManifestCorrupt indicates the file lacks the <Package> element.
	ErrManifestCorrupt = errors.New("manifest appears to be corrupted - invalid XML structure")

	// ErrPathTraversal indicates a manifest path resolving outside the
	// manifests directory.
	ErrPathTraversal = errors.New("invalid manifest path: directory traversal detected")

	// ErrEmptyName indicates a blank manifest name.
	ErrEmptyName = errors.New("manifest name must not be empty")
)
