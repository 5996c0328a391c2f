package sensitive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careforge/standards/internal/sensitive"
)

func TestScanContentDetections(testInstance *testing.T) {
	testCases := []struct {
		name            string
		content         string
		expectedReasons []string
	}{
		{
			name:            "hl7_message_header",
			content:         "MSH|^~\\&|SENDER|FACILITY|RECEIVER|FACILITY|202401011200||ADT^A01|MSG001|P|2.5\n",
			expectedReasons: []string{"HL7 message header segment"},
		},
		{
			name:            "hl7_patient_segment",
			content:         "PID|1||123456^^^FACILITY^MR||DOE^JANE\n",
			expectedReasons: []string{"HL7 patient identification segment"},
		},
		{
			name:            "mds_section_header",
			content:         "Section A - Identification Information\n",
			expectedReasons: []string{"MDS assessment section header"},
		},
		{
			name:            "mds_item_code",
			content:         "A0100. Facility Provider Numbers\n",
			expectedReasons: []string{"MDS assessment item code"},
		},
		{
			name:            "social_security_number",
			content:         "ssn value 123-45-6789 recorded\n",
			expectedReasons: []string{"social security number"},
		},
		{
			name:            "phi_field_names",
			content:         "Social Security Number:\nMedical Record Number:\nDate of Birth:\n",
			expectedReasons: []string{"protected health information field name", "protected health information field name", "protected health information field name"},
		},
		{
			name:    "clean_source_file",
			content: "package main\n\nfunc main() {}\n",
		},
		{
			name:    "hl7_tokens_not_at_line_start_pass",
			content: "const segmentName = \"the MSH| prefix marks a message header\"\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			scanner := sensitive.NewScanner()
			findings := scanner.ScanContent("fixture.txt", []byte(testCase.content))
			require.Len(subtestInstance, findings, len(testCase.expectedReasons), testCaseIndex)
			for findingIndex, finding := range findings {
				require.Equal(subtestInstance, testCase.expectedReasons[findingIndex], finding.Reason, testCaseIndex)
				require.Equal(subtestInstance, "fixture.txt", finding.FilePath, testCaseIndex)
				require.Positive(subtestInstance, finding.LineNumber, testCaseIndex)
				require.NotEmpty(subtestInstance, finding.MatchedText, testCaseIndex)
			}
		})
	}
}

func TestScanContentReportsMatchedFragment(testInstance *testing.T) {
	scanner := sensitive.NewScanner()
	findings := scanner.ScanContent("notes.txt", []byte("resident ssn 123-45-6789 on file\n"))
	require.Len(testInstance, findings, 1)
	require.Equal(testInstance, "123-45-6789", findings[0].MatchedText)
}

func TestScanContentReportsLineNumbers(testInstance *testing.T) {
	scanner := sensitive.NewScanner()
	content := "first line is fine\nsecond line is fine\nPID|1||123456\n"
	findings := scanner.ScanContent("sample.hl7", []byte(content))
	require.Len(testInstance, findings, 1)
	require.Equal(testInstance, 3, findings[0].LineNumber)
}

func TestScanContentSkipsBinaryPayloads(testInstance *testing.T) {
	scanner := sensitive.NewScanner()
	binaryPayload := append([]byte("MSH|"), 0x00, 0x01, 0x02)
	require.Empty(testInstance, scanner.ScanContent("artifact.bin", binaryPayload))

	invalidUTF8Payload := []byte{0xff, 0xfe, 'M', 'S', 'H', '|'}
	require.Empty(testInstance, scanner.ScanContent("artifact.dat", invalidUTF8Payload))
}

func TestScanFileSkipsBinaryExtensions(testInstance *testing.T) {
	fixturePath := filepath.Join(testInstance.TempDir(), "scan.pdf")
	require.NoError(testInstance, os.WriteFile(fixturePath, []byte("MSH|embedded text\n"), 0o644))

	scanner := sensitive.NewScanner()
	findings, scanError := scanner.ScanFile(fixturePath)
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, findings)
}

func TestScanFileMissingFileYieldsNoFindings(testInstance *testing.T) {
	scanner := sensitive.NewScanner()
	findings, scanError := scanner.ScanFile(filepath.Join(testInstance.TempDir(), "deleted.txt"))
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, findings)
}

func TestScanFileReadsFromDisk(testInstance *testing.T) {
	fixturePath := filepath.Join(testInstance.TempDir(), "notes.txt")
	require.NoError(testInstance, os.WriteFile(fixturePath, []byte("Date of Birth: 01/02/1934\n"), 0o644))

	scanner := sensitive.NewScanner()
	findings, scanError := scanner.ScanFile(fixturePath)
	require.NoError(testInstance, scanError)
	require.Len(testInstance, findings, 1)
	require.Equal(testInstance, fixturePath, findings[0].FilePath)
}
