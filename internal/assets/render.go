package assets

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	renderTemplateNameConstant         = "artifact"
	renderParseErrorTemplateConstant   = "unable to parse artifact template %s: %w"
	renderExecuteErrorTemplateConstant = "unable to render artifact template %s: %w"
)

// ProjectContext carries the values substituted into templated artifacts.
type ProjectContext struct {
	ProjectName string
}

// Render returns the artifact payload with project values substituted when
// the artifact is templated, and the raw payload otherwise.
func Render(artifact Artifact, projectContext ProjectContext) ([]byte, error) {
	payload, contentError := Content(artifact)
	if contentError != nil {
		return nil, contentError
	}
	if !artifact.Templated {
		return payload, nil
	}
	parsedTemplate, parseError := template.New(renderTemplateNameConstant).Parse(string(payload))
	if parseError != nil {
		return nil, fmt.Errorf(renderParseErrorTemplateConstant, artifact.SourcePath, parseError)
	}
	var renderedPayload bytes.Buffer
	if executeError := parsedTemplate.Execute(&renderedPayload, projectContext); executeError != nil {
		return nil, fmt.Errorf(renderExecuteErrorTemplateConstant, artifact.SourcePath, executeError)
	}
	return renderedPayload.Bytes(), nil
}
