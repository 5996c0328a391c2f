package compliance

// FileStatus classifies one managed file during a compliance check.
type FileStatus string

// Possible file statuses.
const (
	FileStatusOK       FileStatus = "ok"
	FileStatusModified FileStatus = "modified"
	FileStatusMissing  FileStatus = "missing"
	FileStatusFixed    FileStatus = "fixed"
)

// FileReport records the status of one managed file.
type FileReport struct {
	DestinationPath string
	Status          FileStatus
}

// Report aggregates the statuses of every managed file.
type Report struct {
	Files []FileReport
}

// Compliant reports whether every managed file matches its recorded state.
func (report Report) Compliant() bool {
	for _, fileReport := range report.Files {
		if fileReport.Status == FileStatusModified || fileReport.Status == FileStatusMissing {
			return false
		}
	}
	return true
}

// Count returns how many files carry the provided status.
func (report Report) Count(status FileStatus) int {
	matchingCount := 0
	for _, fileReport := range report.Files {
		if fileReport.Status == status {
			matchingCount++
		}
	}
	return matchingCount
}
