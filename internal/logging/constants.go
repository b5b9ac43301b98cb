package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldSlot       = "slot"
	FieldBackend    = "backend"
	FieldEntryID    = "entry_id"
	FieldEntryType  = "entry_type"
	FieldFrequency  = "frequency"
	FieldLine       = "line"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
