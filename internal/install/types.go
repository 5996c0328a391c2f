package install

import "github.com/careforge/standards/internal/assets"

// Options controls a single installation run.
type Options struct {
	TargetDirectory         string
	Language                assets.Language
	Overwrite               bool
	NonInteractive          bool
	IncludeDocumentation    bool
	IncludeCursorRules      bool
	IncludeAntigravityRules bool
	InstallPreCommitHooks   bool
}

// FileAction names the outcome of placing one artifact.
type FileAction string

// Possible artifact outcomes.
const (
	FileActionInstalled   FileAction = "installed"
	FileActionOverwritten FileAction = "overwritten"
	FileActionMerged      FileAction = "merged"
	FileActionSkipped     FileAction = "skipped"
	FileActionUnchanged   FileAction = "unchanged"
)

// FileResult records what happened to one artifact destination.
type FileResult struct {
	DestinationPath string
	Action          FileAction
}

// Summary aggregates the results of an installation run.
type Summary struct {
	Results             []FileResult
	HookInstallationRan bool
}

// Count returns how many artifacts ended with the provided action.
func (summary Summary) Count(action FileAction) int {
	matchingCount := 0
	for _, result := range summary.Results {
		if result.Action == action {
			matchingCount++
		}
	}
	return matchingCount
}
