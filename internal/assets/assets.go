package assets

import (
	"embed"
	"fmt"
)

//go:embed all:data
var embeddedArtifacts embed.FS

const contentReadErrorTemplateConstant = "unable to read embedded artifact %s: %w"

// Content returns the raw embedded payload of the provided artifact.
func Content(artifact Artifact) ([]byte, error) {
	payload, readError := embeddedArtifacts.ReadFile(artifact.SourcePath)
	if readError != nil {
		return nil, fmt.Errorf(contentReadErrorTemplateConstant, artifact.SourcePath, readError)
	}
	return payload, nil
}
