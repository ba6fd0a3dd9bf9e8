package assets

import (
	"strings"
)

// Source identifies one asset to load: a file path/URL, or an in-memory
// payload. Immutable once issued; a new Source implicitly supersedes any
// in-flight one.
type Source struct {
	// Identifier is a path or URL. Empty when Data carries the payload.
	Identifier string
	// Data holds an embedded in-memory payload, if any.
	Data []byte
	// FormatHint is an explicit file-extension hint ("gltf", "glb",
	// "obj"). Required for embedded payloads, which carry no
	// extension-bearing identifier to infer from.
	FormatHint string
}

// IsEmpty reports the "no model" request that resets the session to its
// default state.
func (s Source) IsEmpty() bool {
	return s.Identifier == "" && len(s.Data) == 0
}

// IsEmbedded reports whether the payload is in-memory rather than
// addressable, in which case sibling resource files are not resolvable.
func (s Source) IsEmbedded() bool {
	return len(s.Data) > 0 || strings.HasPrefix(s.Identifier, "data:")
}

// IsRemote reports whether the identifier carries a URL scheme. Remote
// sources cannot be watched for file changes.
func (s Source) IsRemote() bool {
	return strings.Contains(s.Identifier, "://")
}

// Split separates the identifier into a base path and a file body at
// the last path separator. Embedded payloads are the whole file body
// with an empty base path.
func (s Source) Split() (basePath, file string) {
	if s.IsEmbedded() {
		return "", s.Identifier
	}
	idx := strings.LastIndexAny(s.Identifier, "/\\")
	if idx < 0 {
		return "", s.Identifier
	}
	return s.Identifier[:idx+1], s.Identifier[idx+1:]
}

// Format resolves the effective format: the explicit hint when present,
// otherwise the lowercased file extension of the identifier.
func (s Source) Format() string {
	if s.FormatHint != "" {
		return strings.ToLower(strings.TrimPrefix(s.FormatHint, "."))
	}
	_, file := s.Split()
	idx := strings.LastIndex(file, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(file[idx+1:])
}
