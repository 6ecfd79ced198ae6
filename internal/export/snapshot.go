// internal/export/snapshot.go

// Package export reads and writes form snapshots: the JSON interchange
// format of the capture form, and xlsx workbooks for the admin console.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"minutes-service/internal/common/errors"
	"minutes-service/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Snapshot is one exported form: the flat field map plus the delivery table.
type Snapshot struct {
	Fields models.FormSnapshot
	Rows   []models.DeliveryRow
}

const deliveryKey = "deliveryDetails"

// snapshotSchema validates the interchange shape: every field is a string,
// except the delivery table, which is an array of string-valued row objects.
const snapshotSchema = `{
	"type": "object",
	"properties": {
		"deliveryDetails": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		}
	},
	"additionalProperties": {"type": "string"}
}`

var schemaLoader = gojsonschema.NewStringLoader(snapshotSchema)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Parse decodes and validates an exported snapshot. A top-level array is
// accepted for compatibility with hand-merged exports; its first element is
// used.
func Parse(data []byte) (Snapshot, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Snapshot{}, errors.NewSnapshotInvalidError(err.Error())
	}

	if arr, ok := probe.([]interface{}); ok {
		if len(arr) == 0 {
			return Snapshot{}, errors.NewSnapshotInvalidError("empty snapshot array")
		}
		first, err := json.Marshal(arr[0])
		if err != nil {
			return Snapshot{}, errors.NewSnapshotInvalidError(err.Error())
		}
		data = first
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Snapshot{}, errors.NewSnapshotInvalidError(err.Error())
	}
	if !result.Valid() {
		detail := ""
		for _, e := range result.Errors() {
			if detail != "" {
				detail += "; "
			}
			detail += e.String()
		}
		return Snapshot{}, errors.NewSnapshotInvalidError(detail)
	}

	return decode(data)
}

func decode(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, errors.NewSnapshotInvalidError(err.Error())
	}

	snap := Snapshot{Fields: models.FormSnapshot{}}
	for key, val := range raw {
		if key == deliveryKey {
			if err := json.Unmarshal(val, &snap.Rows); err != nil {
				return Snapshot{}, errors.NewSnapshotInvalidError(err.Error())
			}
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return Snapshot{}, errors.NewSnapshotInvalidError(fmt.Sprintf("field %s: %v", key, err))
		}
		snap.Fields[key] = s
	}
	return snap, nil
}

// Encode serializes the snapshot in the interchange format, indented the way
// the capture form writes its downloads.
func (s Snapshot) Encode() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Fields)+1)
	for k, v := range s.Fields {
		out[k] = v
	}
	rows := s.Rows
	if rows == nil {
		rows = []models.DeliveryRow{}
	}
	out[deliveryKey] = rows

	buf, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, errors.NewExportFailedError(err)
	}
	return buf, nil
}

// Filename names a snapshot download: project name, the business code in
// parentheses when present, and a minute-resolution timestamp. Characters
// that are unsafe in filenames become underscores.
func Filename(fields models.FormSnapshot, now time.Time) string {
	name := fields.GetTrimmed(models.FieldProjectName)
	if name == "" {
		name = "纪要数据"
	}
	code := ""
	if c := fields.GetTrimmed(models.FieldBusinessCode); c != "" {
		code = "(" + c + ")"
	}
	raw := fmt.Sprintf("%s%s_%s.json", name, code, now.Format("200601021504"))
	return unsafeFilenameChars.ReplaceAllString(raw, "_")
}
