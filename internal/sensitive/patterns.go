package sensitive

import "regexp"

const (
	hl7MessageHeaderReasonConstant     = "HL7 message header segment"
	hl7PatientSegmentReasonConstant    = "HL7 patient identification segment"
	mdsSectionHeaderReasonConstant     = "MDS assessment section header"
	mdsItemCodeReasonConstant          = "MDS assessment item code"
	socialSecurityNumberReasonConstant = "social security number"
	phiKeywordReasonConstant           = "protected health information field name"
)

// Rule pairs a compiled pattern with the reason reported on a match.
type Rule struct {
	Pattern *regexp.Regexp
	Reason  string
}

// DefaultRules returns the built-in detection rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Pattern: regexp.MustCompile(`^MSH\|`),
			Reason:  hl7MessageHeaderReasonConstant,
		},
		{
			Pattern: regexp.MustCompile(`^PID\|`),
			Reason:  hl7PatientSegmentReasonConstant,
		},
		{
			Pattern: regexp.MustCompile(`(?i)section\s+[a-z]{1,2}\d{0,2}\s*[-:]\s*identification information`),
			Reason:  mdsSectionHeaderReasonConstant,
		},
		{
			Pattern: regexp.MustCompile(`^[A-Z]\d{4}[A-Z]?\.\s`),
			Reason:  mdsItemCodeReasonConstant,
		},
		{
			Pattern: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			Reason:  socialSecurityNumberReasonConstant,
		},
		{
			Pattern: regexp.MustCompile(`(?i)\b(social security number|medical record number|date of birth)\b`),
			Reason:  phiKeywordReasonConstant,
		},
	}
}
