package sensitive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	fileReadErrorTemplateConstant = "unable to read %s: %w"
	matchedTextLimitConstant      = 120
)

var binaryFileExtensionSet = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".bz2": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".so": {}, ".dylib": {}, ".dll": {}, ".exe": {}, ".bin": {},
	".pyc": {}, ".class": {}, ".jar": {}, ".wasm": {},
}

// Scanner applies detection rules to file contents line by line.
type Scanner struct {
	rules []Rule
}

// NewScanner constructs a scanner with the built-in rules.
func NewScanner() *Scanner {
	return NewScannerWithRules(DefaultRules())
}

// NewScannerWithRules constructs a scanner with the provided rules.
func NewScannerWithRules(rules []Rule) *Scanner {
	return &Scanner{rules: rules}
}

// ScanFile scans one file. Missing files and binary files yield no findings;
// a hook must not block commits that delete files or add binary artifacts.
func (scanner *Scanner) ScanFile(filePath string) ([]Finding, error) {
	if hasBinaryFileExtension(filePath) {
		return nil, nil
	}
	fileContent, readError := os.ReadFile(filePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf(fileReadErrorTemplateConstant, filePath, readError)
	}
	return scanner.ScanContent(filePath, fileContent), nil
}

// ScanContent scans in-memory content attributed to the provided path.
func (scanner *Scanner) ScanContent(filePath string, content []byte) []Finding {
	if isBinaryContent(content) {
		return nil
	}

	var findings []Finding
	for lineIndex, lineText := range strings.Split(string(content), "\n") {
		for _, rule := range scanner.rules {
			matchedText := rule.Pattern.FindString(lineText)
			if len(matchedText) == 0 {
				continue
			}
			findings = append(findings, Finding{
				FilePath:    filePath,
				LineNumber:  lineIndex + 1,
				MatchedText: truncateMatchedText(matchedText),
				Reason:      rule.Reason,
			})
		}
	}
	return findings
}

func hasBinaryFileExtension(filePath string) bool {
	_, isBinaryExtension := binaryFileExtensionSet[strings.ToLower(filepath.Ext(filePath))]
	return isBinaryExtension
}

func isBinaryContent(content []byte) bool {
	if bytes.IndexByte(content, 0) >= 0 {
		return true
	}
	return !utf8.Valid(content)
}

func truncateMatchedText(matchedText string) string {
	if len(matchedText) <= matchedTextLimitConstant {
		return matchedText
	}
	return matchedText[:matchedTextLimitConstant]
}
