// Package backup encodes and decodes the portable JSON document holding both
// entry collections. Decoding validates the payload shape at the boundary so
// callers only ever see trusted entries; a malformed document is rejected as
// a whole and never partially applied.
package backup

import (
	"bytes"
	"encoding/json"

	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Document is the backup payload: both entry collections keyed by their
// legacy names.
type Document struct {
	Income   []models.Entry `json:"income"`
	Expenses []models.Entry `json:"expenses"`
}

// Encode renders the document as indented JSON. Nil collections are written
// as empty arrays so the output always decodes back.
func Encode(doc Document) ([]byte, error) {
	if doc.Income == nil {
		doc.Income = []models.Entry{}
	}
	if doc.Expenses == nil {
		doc.Expenses = []models.Entry{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode validates raw bytes into a Document. The payload must be a JSON
// object carrying both "income" and "expenses" as arrays of entries; anything
// else is rejected with a MalformedDocumentError.
func Decode(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &parsererror.MalformedDocumentError{Reason: "not a JSON object", Err: err}
	}
	if raw == nil {
		return Document{}, &parsererror.MalformedDocumentError{Reason: "not a JSON object"}
	}

	income, err := decodeCollection(raw, "income")
	if err != nil {
		return Document{}, err
	}
	expenses, err := decodeCollection(raw, "expenses")
	if err != nil {
		return Document{}, err
	}

	return Document{Income: income, Expenses: expenses}, nil
}

func decodeCollection(raw map[string]json.RawMessage, field string) ([]models.Entry, error) {
	value, ok := raw[field]
	if !ok {
		return nil, &parsererror.MalformedDocumentError{Field: field, Reason: "missing"}
	}
	if !isJSONArray(value) {
		return nil, &parsererror.MalformedDocumentError{Field: field, Reason: "expected an array"}
	}

	entries := []models.Entry{}
	if err := json.Unmarshal(value, &entries); err != nil {
		return nil, &parsererror.MalformedDocumentError{Field: field, Reason: "entries do not decode", Err: err}
	}
	// Field-level decoding already rejects bad labels, but keys absent from
	// the payload leave zero values behind; validate so callers never see an
	// entry that could not have been created locally.
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, &parsererror.MalformedDocumentError{Field: field, Reason: "invalid entry", Err: err}
		}
	}
	return entries, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
