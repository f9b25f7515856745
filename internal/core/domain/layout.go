package domain

import "path/filepath"

const (
	// MasonDirName is the name of the internal state directory.
	MasonDirName = ".mason"

	// ManifestFileName is the name of the persisted manifest file.
	ManifestFileName = "manifest.json"

	// TmpRootDirName is the name of the temp root under the state directory.
	TmpRootDirName = "tmp"

	// ConfigFileName is the default name of the pipeline configuration file.
	ConfigFileName = "mason.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultManifestPath returns the default location of the manifest file.
func DefaultManifestPath() string {
	return filepath.Join(MasonDirName, ManifestFileName)
}

// DefaultTmpRoot returns the default temp root for fingerprint-scoped
// directories.
func DefaultTmpRoot() string {
	return filepath.Join(MasonDirName, TmpRootDirName)
}
