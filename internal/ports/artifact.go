package ports

// ArtifactPort persists rendered source artifacts into an output
// directory.
type ArtifactPort interface {
	WriteArtifact(dir string, name string, data []byte) error
}
