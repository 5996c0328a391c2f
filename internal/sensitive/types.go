package sensitive

// Finding reports one sensitive match discovered during a scan.
// MatchedText carries the matched fragment, truncated for display.
type Finding struct {
	FilePath    string
	LineNumber  int
	MatchedText string
	Reason      string
}
