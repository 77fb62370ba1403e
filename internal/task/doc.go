// Package task models a single task document and computes its schedule.
//
// Each task lives in its own file. The document format (JSON shown, YAML
// documents carry the same tree) follows the embedded task.schema.json:
//
//	{
//	  "name": "Water plants",
//	  "priority": 2,
//	  "due": "2026-10-20",
//	  "preview": 3,
//	  "reschedule": {"interval": 7, "from": "completion_date"},
//	  "history": ["2026-10-13"]
//	}
//
// A recurring task replaces due/reschedule with a recurring block:
//
//	{"name": "Change filter", "recurring": {"completed": "2026-10-01", "duration": 14}}
//
// # Kinds
//
//   - normal: no due and no recurring block; done once history is non-empty
//   - scheduled: carries due or recurring; reported by its due date
//
// # Decoding
//
// Decode runs, in order: parse (ErrMalformedDocument), root shape check,
// legacy migration, schema validation (ErrSchemaViolation), date parsing
// (ErrInvalidDate) and cross-field checks (ErrSchemaViolation).
//
// # Dates
//
// All dates are calendar days in YYYY-MM-DD form. Day arithmetic never looks
// at time of day or at the system clock; callers pass the reference date.
//
// # File Format
//
// Encode writes 2-space indented JSON with a trailing newline, or YAML with
// 2-space indentation. Absent optional fields are omitted.
package task
