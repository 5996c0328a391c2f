// Package sensitive scans text files for healthcare data that must never be
// committed, such as HL7 message segments, MDS assessment extracts, and
// patient identifiers.
package sensitive
