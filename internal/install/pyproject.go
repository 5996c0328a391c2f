package install

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	toolTableKeyConstant                   = "tool"
	existingTOMLParseErrorTemplateConstant = "unable to parse existing pyproject.toml: %w"
	incomingTOMLParseErrorTemplateConstant = "unable to parse packaged pyproject.toml: %w"
	mergedTOMLEncodeErrorTemplateConstant  = "unable to encode merged pyproject.toml: %w"
)

// MergePyprojectTOML folds the packaged tool configuration into an existing
// pyproject.toml. Tool tables from the packaged payload replace their
// counterparts; every other existing value is preserved.
func MergePyprojectTOML(existingPayload []byte, incomingPayload []byte) ([]byte, error) {
	var existingDocument map[string]any
	if parseError := toml.Unmarshal(existingPayload, &existingDocument); parseError != nil {
		return nil, fmt.Errorf(existingTOMLParseErrorTemplateConstant, parseError)
	}
	var incomingDocument map[string]any
	if parseError := toml.Unmarshal(incomingPayload, &incomingDocument); parseError != nil {
		return nil, fmt.Errorf(incomingTOMLParseErrorTemplateConstant, parseError)
	}
	if existingDocument == nil {
		existingDocument = map[string]any{}
	}

	mergedDocument := map[string]any{}
	for existingKey, existingValue := range existingDocument {
		mergedDocument[existingKey] = existingValue
	}
	for incomingKey, incomingValue := range incomingDocument {
		preferIncoming := incomingKey == toolTableKeyConstant
		mergedDocument[incomingKey] = mergeValues(mergedDocument[incomingKey], incomingValue, preferIncoming)
	}

	encodedDocument, marshalError := toml.Marshal(mergedDocument)
	if marshalError != nil {
		return nil, fmt.Errorf(mergedTOMLEncodeErrorTemplateConstant, marshalError)
	}
	return encodedDocument, nil
}

func mergeValues(existingValue any, incomingValue any, preferIncoming bool) any {
	existingTable, existingIsTable := existingValue.(map[string]any)
	incomingTable, incomingIsTable := incomingValue.(map[string]any)
	if existingIsTable && incomingIsTable {
		mergedTable := map[string]any{}
		for existingKey, nestedExisting := range existingTable {
			mergedTable[existingKey] = nestedExisting
		}
		for incomingKey, nestedIncoming := range incomingTable {
			mergedTable[incomingKey] = mergeValues(mergedTable[incomingKey], nestedIncoming, preferIncoming)
		}
		return mergedTable
	}
	if existingValue == nil || preferIncoming {
		return incomingValue
	}
	return existingValue
}
