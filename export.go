package psytext

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// WriteJSON writes records as a 4-space indented JSON array. Non-ASCII and
// HTML characters are written as-is. A nil slice is written as [].
func WriteJSON(w io.Writer, records []SentenceRecord) error {
	if records == nil {
		records = []SentenceRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return &ExportError{Message: "failed to encode records", Cause: err}
	}
	return nil
}

// ReadJSON parses a document written by WriteJSON.
func ReadJSON(r io.Reader) ([]SentenceRecord, error) {
	var records []SentenceRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, &ExportError{Message: "failed to decode records", Cause: err}
	}
	return records, nil
}

// ExportJSON writes the records to path, optionally validating the encoded
// document against AnalysisSchema first. Nothing is written if validation fails.
func ExportJSON(path string, records []SentenceRecord, validate bool) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, records); err != nil {
		return err
	}
	if validate {
		if err := ValidateAnalysisJSON(buf.Bytes()); err != nil {
			return &ExportError{Message: "analysis document failed schema validation", Cause: err}
		}
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &ExportError{Message: "failed to write " + path, Cause: err}
	}
	return nil
}

var analysisSchema = sync.OnceValue(func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect([]SentenceRecord{})
	schema.Title = "Sentence analysis"
	schema.Description = "Per-sentence valence, arousal and color bucket in source order."
	return schema
})

// AnalysisSchema returns the JSON Schema of the _analysis.json document.
func AnalysisSchema() *jsonschema.Schema {
	return analysisSchema()
}

// AnalysisSchemaJSON returns AnalysisSchema indented for display.
func AnalysisSchemaJSON() ([]byte, error) {
	return json.MarshalIndent(AnalysisSchema(), "", "  ")
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateAnalysisJSON checks data against AnalysisSchema.
func ValidateAnalysisJSON(data []byte) error {
	schemaObj, err := schemaToMap(AnalysisSchema())
	if err != nil {
		return err
	}
	// the validator only knows drafts up to 7; the structure is compatible
	delete(schemaObj, "$schema")

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schemaObj), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteCSV writes stats as one header row and one data row. Pronoun counts
// become pronoun_<category> columns in alphabetical order.
func WriteCSV(w io.Writer, stats AggregateStats) error {
	fields := statFields(stats)
	pronouns := sortedPronouns(stats.PronounCounts)

	header := make([]string, 0, len(fields)+len(pronouns))
	row := make([]string, 0, len(fields)+len(pronouns))
	for _, f := range fields {
		header = append(header, f.Key)
		row = append(row, f.Value.String())
	}
	for _, name := range pronouns {
		header = append(header, "pronoun_"+name)
		row = append(row, strconv.Itoa(stats.PronounCounts[name]))
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{header, row}); err != nil {
		return &ExportError{Message: "failed to write csv", Cause: err}
	}
	return nil
}

// ExportCSV writes the statistics CSV atomically to path.
func ExportCSV(path string, stats AggregateStats) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, stats); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &ExportError{Message: "failed to write " + path, Cause: err}
	}
	return nil
}
