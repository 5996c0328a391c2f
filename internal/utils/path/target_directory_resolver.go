// Package pathutils normalizes filesystem path inputs shared across commands.
package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultTargetDirectoryConstant          = "."
	targetDirectoryMissingTemplateConstant  = "target directory does not exist: %s"
	targetDirectoryNotDirTemplateConstant   = "target path is not a directory: %s"
	targetDirectoryResolveTemplateConstant  = "unable to resolve target directory %s: %w"
	targetDirectoryEmptyAfterExpandConstant = "target directory resolves to an empty path"
)

// TargetDirectoryResolver normalizes a target project directory argument for installer commands.
type TargetDirectoryResolver struct {
	homeExpander *HomeExpander
}

// NewTargetDirectoryResolver constructs a resolver with operating-system home lookup.
func NewTargetDirectoryResolver() *TargetDirectoryResolver {
	return NewTargetDirectoryResolverWithExpander(nil)
}

// NewTargetDirectoryResolverWithExpander constructs a resolver using the provided expander.
func NewTargetDirectoryResolverWithExpander(homeExpander *HomeExpander) *TargetDirectoryResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &TargetDirectoryResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands home shortcuts, and returns the absolute path of an existing directory.
func (resolver *TargetDirectoryResolver) Resolve(candidatePath string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		trimmedCandidate = defaultTargetDirectoryConstant
	}

	expandedPath := resolver.homeExpander.Expand(trimmedCandidate)
	if len(expandedPath) == 0 {
		return "", errors.New(targetDirectoryEmptyAfterExpandConstant)
	}

	absolutePath, absoluteError := filepath.Abs(filepath.Clean(expandedPath))
	if absoluteError != nil {
		return "", fmt.Errorf(targetDirectoryResolveTemplateConstant, expandedPath, absoluteError)
	}

	pathInformation, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(targetDirectoryMissingTemplateConstant, absolutePath)
		}
		return "", fmt.Errorf(targetDirectoryResolveTemplateConstant, absolutePath, statError)
	}

	if !pathInformation.IsDir() {
		return "", fmt.Errorf(targetDirectoryNotDirTemplateConstant, absolutePath)
	}

	return absolutePath, nil
}
