package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careforge/standards/internal/manifest"
)

func TestSaveAndLoadRoundTrip(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()

	createdManifest := manifest.New("1.2.0", "python")
	createdManifest.RecordArtifact(".editorconfig", []byte("root = true\n"))
	require.NoError(testInstance, createdManifest.Save(targetDirectory))

	loadedManifest, loadError := manifest.Load(targetDirectory)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, createdManifest.InstallationIdentifier, loadedManifest.InstallationIdentifier)
	require.Equal(testInstance, "1.2.0", loadedManifest.ToolVersion)
	require.Equal(testInstance, "python", loadedManifest.Language)
	require.Equal(testInstance, manifest.Digest([]byte("root = true\n")), loadedManifest.ArtifactDigests[".editorconfig"])
}

func TestLoadMissingManifestReturnsSentinel(testInstance *testing.T) {
	_, loadError := manifest.Load(testInstance.TempDir())
	require.ErrorIs(testInstance, loadError, manifest.ErrManifestNotFound)
}

func TestLoadMalformedManifestFails(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	manifestDirectory := filepath.Join(targetDirectory, manifest.DirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(manifestDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(manifest.Path(targetDirectory), []byte(":\tnot yaml"), 0o644))

	_, loadError := manifest.Load(targetDirectory)
	require.Error(testInstance, loadError)
	require.NotErrorIs(testInstance, loadError, manifest.ErrManifestNotFound)
}

func TestDigestIsStable(testInstance *testing.T) {
	firstDigest := manifest.Digest([]byte("payload"))
	secondDigest := manifest.Digest([]byte("payload"))
	require.Equal(testInstance, firstDigest, secondDigest)
	require.Len(testInstance, firstDigest, 64)
	require.NotEqual(testInstance, firstDigest, manifest.Digest([]byte("other payload")))
}
