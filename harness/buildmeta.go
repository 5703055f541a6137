package harness

import (
	"os"
	"strings"
)

// MetadataPrefix is the conventional environment prefix for build-injected
// harness metadata.
const MetadataPrefix = "PACKSMITH_"

const artifactRootKey = "ARTIFACT_ROOT"

// Metadata is the key/value channel between the build system and the
// harness. How the mapping is produced is the build's concern (environment
// variables, a generated file, command-line flags); the harness only reads
// it. MetadataFromEnv is the default source.
type Metadata map[string]string

// MetadataFromEnv collects every environment variable carrying prefix into a
// Metadata map, with the prefix stripped from the keys.
func MetadataFromEnv(prefix string) Metadata {
	m := Metadata{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		m[strings.TrimPrefix(k, prefix)] = v
	}
	return m
}

// Get returns the value for key, or empty if absent.
func (m Metadata) Get(key string) string {
	return m[key]
}

// ArtifactRoot returns the artifact discovery root the build advertised, if
// any (PACKSMITH_ARTIFACT_ROOT when sourced from the environment).
func (m Metadata) ArtifactRoot() string {
	return m[artifactRootKey]
}
