package ledger

// WorkField names one mutable field of a work entry. Updates go through a
// closed set of fields instead of an open string-keyed setter.
type WorkField string

const (
	WorkFieldDate      WorkField = "date"
	WorkFieldStartTime WorkField = "startTime"
	WorkFieldEndTime   WorkField = "endTime"
	WorkFieldNotes     WorkField = "notes"
)

// ParseWorkField maps a form field name to a WorkField.
func ParseWorkField(s string) (WorkField, bool) {
	switch f := WorkField(s); f {
	case WorkFieldDate, WorkFieldStartTime, WorkFieldEndTime, WorkFieldNotes:
		return f, true
	}
	return "", false
}

// MaterialField names one mutable field of a material entry.
type MaterialField string

const (
	MaterialFieldDate     MaterialField = "date"
	MaterialFieldName     MaterialField = "name"
	MaterialFieldQuantity MaterialField = "quantity"
	MaterialFieldAmount   MaterialField = "amount"
)

// ParseMaterialField maps a form field name to a MaterialField.
func ParseMaterialField(s string) (MaterialField, bool) {
	switch f := MaterialField(s); f {
	case MaterialFieldDate, MaterialFieldName, MaterialFieldQuantity, MaterialFieldAmount:
		return f, true
	}
	return "", false
}
