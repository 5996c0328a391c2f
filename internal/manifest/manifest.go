package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	DirectoryNameConstant = ".standards"
	FileNameConstant      = "manifest.yaml"

	manifestDirectoryPermissionsConstant = 0o755
	manifestFilePermissionsConstant      = 0o644

	manifestReadErrorTemplateConstant      = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant     = "unable to parse manifest %s: %w"
	manifestEncodeErrorTemplateConstant    = "unable to encode manifest: %w"
	manifestDirectoryErrorTemplateConstant = "unable to create manifest directory %s: %w"
	manifestWriteErrorTemplateConstant     = "unable to write manifest %s: %w"
)

// ErrManifestNotFound indicates the target repository has no recorded installation.
var ErrManifestNotFound = errors.New("standards manifest not found")

// Manifest describes one installation of the standards artifacts.
type Manifest struct {
	InstallationIdentifier string            `yaml:"installation_id"`
	ToolVersion            string            `yaml:"tool_version"`
	InstalledAt            time.Time         `yaml:"installed_at"`
	Language               string            `yaml:"language"`
	ArtifactDigests        map[string]string `yaml:"artifact_digests"`
}

// New creates a manifest for a fresh installation.
func New(toolVersion string, language string) *Manifest {
	return &Manifest{
		InstallationIdentifier: uuid.NewString(),
		ToolVersion:            toolVersion,
		InstalledAt:            time.Now().UTC(),
		Language:               language,
		ArtifactDigests:        map[string]string{},
	}
}

// Digest returns the hex-encoded SHA-256 digest of the provided payload.
func Digest(payload []byte) string {
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:])
}

// RecordArtifact stores the digest of an installed artifact payload.
func (manifestInstance *Manifest) RecordArtifact(destinationPath string, payload []byte) {
	if manifestInstance.ArtifactDigests == nil {
		manifestInstance.ArtifactDigests = map[string]string{}
	}
	manifestInstance.ArtifactDigests[destinationPath] = Digest(payload)
}

// Path returns the manifest location inside the target directory.
func Path(targetDirectory string) string {
	return filepath.Join(targetDirectory, DirectoryNameConstant, FileNameConstant)
}

// Load reads the manifest from the target directory. A missing manifest
// yields ErrManifestNotFound.
func Load(targetDirectory string) (*Manifest, error) {
	manifestPath := Path(targetDirectory)
	manifestPayload, readError := os.ReadFile(manifestPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}
	var loadedManifest Manifest
	if unmarshalError := yaml.Unmarshal(manifestPayload, &loadedManifest); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, unmarshalError)
	}
	return &loadedManifest, nil
}

// Save writes the manifest beneath the target directory, creating the
// manifest directory when needed.
func (manifestInstance *Manifest) Save(targetDirectory string) error {
	encodedManifest, marshalError := yaml.Marshal(manifestInstance)
	if marshalError != nil {
		return fmt.Errorf(manifestEncodeErrorTemplateConstant, marshalError)
	}
	manifestDirectory := filepath.Join(targetDirectory, DirectoryNameConstant)
	if directoryError := os.MkdirAll(manifestDirectory, manifestDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(manifestDirectoryErrorTemplateConstant, manifestDirectory, directoryError)
	}
	manifestPath := Path(targetDirectory)
	if writeError := os.WriteFile(manifestPath, encodedManifest, manifestFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(manifestWriteErrorTemplateConstant, manifestPath, writeError)
	}
	return nil
}
