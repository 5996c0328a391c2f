package sensitive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/careforge/standards/internal/execshell"
)

const (
	stagedFileListErrorTemplateConstant = "unable to list staged files: %w"

	gitOptionalLocksVariableConstant = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant = "0"
)

var stagedFileListArgumentsConstant = []string{"diff", "--cached", "--name-only", "--diff-filter=ACM"}

// GitExecutor runs git commands for staged-file discovery.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ListStagedFiles returns the absolute paths of files staged for commit in
// the provided working directory. The listing is read-only, so git is told
// not to take its optional locks; pre-commit already holds the index lock
// when the scan runs as a hook.
func ListStagedFiles(executionContext context.Context, gitExecutor GitExecutor, workingDirectory string) ([]string, error) {
	executionResult, executionError := gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            stagedFileListArgumentsConstant,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitOptionalLocksVariableConstant: gitOptionalLocksDisabledConstant},
	})
	if executionError != nil {
		return nil, fmt.Errorf(stagedFileListErrorTemplateConstant, executionError)
	}

	var stagedFilePaths []string
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		stagedFilePaths = append(stagedFilePaths, filepath.Join(workingDirectory, filepath.FromSlash(trimmedLine)))
	}
	return stagedFilePaths, nil
}
