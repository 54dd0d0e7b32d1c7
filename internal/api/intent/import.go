package intents

import (
	"fmt"
	"gopkg.in/yaml.v3"
)

func ParseImportDocument(data []byte) (ImportDocument, error) {
	var doc ImportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ImportDocument{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return doc, nil
}
