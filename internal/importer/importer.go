// Package importer parses externally supplied JSON payloads into ledger
// entries. Payloads come from an older spreadsheet export and use Icelandic
// field names, with English alternates accepted for hand-edited files.
package importer

import (
	"encoding/json"
	"errors"

	"verkskra/internal/core"
)

// ErrInvalidPayload is returned when the payload is not a JSON object.
var ErrInvalidPayload = errors.New("invalid import payload")

// Payload holds the normalized entries parsed from one import document.
// Every entry already has a fresh id and defaulted fields, ready to be
// appended to a project.
type Payload struct {
	Materials []core.MaterialEntry
	Work      []core.WorkEntry
}

// Empty reports whether the payload contains no entries at all.
func (p Payload) Empty() bool {
	return len(p.Materials) == 0 && len(p.Work) == 0
}

const (
	defaultStartTime = "08:00"
	defaultEndTime   = "16:00"
)

// Parse decodes raw JSON into a normalized payload. Malformed JSON or a
// non-object document yields ErrInvalidPayload; nothing is partially applied.
func Parse(raw []byte) (Payload, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Payload{}, ErrInvalidPayload
	}

	var out Payload

	materials, err := records(doc, "efni", "materials")
	if err != nil {
		return Payload{}, err
	}
	for _, rec := range materials {
		out.Materials = append(out.Materials, core.MaterialEntry{
			ID:       core.GenerateID(),
			Date:     stringField(rec, defaultDate(), "dags", "date"),
			Name:     stringField(rec, "", "heiti", "name"),
			Quantity: stringField(rec, "", "magn", "quantity"),
			Amount:   amountField(rec, "verd", "amount"),
		})
	}

	work, err := records(doc, "vinna", "work-sessions")
	if err != nil {
		return Payload{}, err
	}
	for _, rec := range work {
		entry := core.WorkEntry{
			ID:        core.GenerateID(),
			Date:      stringField(rec, defaultDate(), "dags", "date"),
			StartTime: stringField(rec, defaultStartTime, "byrjun", "start"),
			EndTime:   stringField(rec, defaultEndTime, "lok", "end"),
			Notes:     stringField(rec, "", "athugasemd", "notes"),
		}
		entry.Hours = core.CalculateHours(entry.StartTime, entry.EndTime)
		if explicit := numberField(rec, "stundir", "hours"); explicit != 0 {
			entry.Hours = explicit
		}
		out.Work = append(out.Work, entry)
	}

	return out, nil
}

// records decodes the first present array among the given keys. A present
// key holding something other than an array invalidates the whole payload.
func records(doc map[string]json.RawMessage, keys ...string) ([]map[string]any, error) {
	for _, key := range keys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		var recs []map[string]any
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, ErrInvalidPayload
		}
		return recs, nil
	}
	return nil, nil
}

func defaultDate() string {
	return core.TodayDate()
}

// stringField returns the first non-empty string value among keys, or the
// fallback. Non-string values are skipped.
func stringField(rec map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// numberField returns the first non-zero numeric value among keys.
func numberField(rec map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if n, ok := rec[key].(float64); ok && n != 0 {
			return n
		}
	}
	return 0
}

// amountField accepts both numbers and strings, since exports write prices
// inconsistently. Strings go through the lenient amount parser.
func amountField(rec map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case string:
			if v != "" {
				return core.ParseAmount(v)
			}
		}
	}
	return 0
}
