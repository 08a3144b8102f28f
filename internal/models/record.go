// ABOUTME: Record model and RecordType enum for daily wellness entries.
// ABOUTME: Defines the five tracked types, their labels, units, and merge policy.
package models

// RecordType identifies what a record measures.
type RecordType string

const (
	TypeWeight   RecordType = "weight"
	TypeWater    RecordType = "water"
	TypeSleep    RecordType = "sleep"
	TypeExercise RecordType = "exercise"
	TypeReading  RecordType = "reading"
)

// AllRecordTypes lists the known record types in display order.
var AllRecordTypes = []RecordType{
	TypeWeight, TypeWater, TypeSleep, TypeExercise, TypeReading,
}

// DefaultUnits maps record types to the unit label stored with new records.
var DefaultUnits = map[RecordType]string{
	TypeWeight:   "kg",
	TypeWater:    "ml",
	TypeSleep:    "品質",
	TypeExercise: "部位",
	TypeReading:  "本書",
}

// typeLabels are the localized names used in summaries and CSV files.
var typeLabels = map[RecordType]string{
	TypeWeight:   "體重",
	TypeWater:    "飲水",
	TypeSleep:    "睡眠",
	TypeExercise: "運動",
	TypeReading:  "閱讀",
}

// labelTypes is the inverse of typeLabels, used when importing CSV files.
var labelTypes = map[string]RecordType{
	"體重": TypeWeight,
	"飲水": TypeWater,
	"睡眠": TypeSleep,
	"運動": TypeExercise,
	"閱讀": TypeReading,
}

// ExercisePresets are the tags offered when logging exercise.
// Tags are free-form; these are suggestions only.
var ExercisePresets = []string{"腿", "背", "胸", "肩", "有氧", "拉伸"}

// IsKnown reports whether t is one of the built-in record types.
func (t RecordType) IsKnown() bool {
	_, ok := typeLabels[t]
	return ok
}

// LatestOnly reports whether only the last same-day record of this type
// is shown in daily summaries.
func (t RecordType) LatestOnly() bool {
	return t == TypeWeight || t == TypeSleep
}

// Label returns the localized label for t. Unknown types return the raw tag.
func (t RecordType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// TypeFromLabel maps a localized label to its record type.
// Unmapped labels are returned verbatim as the type tag.
func TypeFromLabel(label string) RecordType {
	if t, ok := labelTypes[label]; ok {
		return t
	}
	return RecordType(label)
}

// DateLayout is the calendar date format used by Record.Date.
const DateLayout = "2006-01-02"

// Record is a single logged event of one type on one date.
type Record struct {
	ID        int64      `json:"id" yaml:"id"`
	Timestamp int64      `json:"timestamp" yaml:"timestamp"`
	Date      string     `json:"date" yaml:"date"`
	Type      RecordType `json:"type" yaml:"type"`
	Value     string     `json:"value" yaml:"value"`
	Unit      string     `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Payload decodes the record's value according to its type.
func (r Record) Payload() (Payload, error) {
	return DecodePayload(r.Type, r.Value)
}

// Draft holds the caller-supplied fields of a new record.
// The store assigns ID and Timestamp.
type Draft struct {
	Date  string     `json:"date"`
	Type  RecordType `json:"type"`
	Value string     `json:"value"`
	Unit  string     `json:"unit,omitempty"`
}

// NewDraft builds a draft from a typed payload, using the type's default unit.
func NewDraft(date string, p Payload) Draft {
	return Draft{
		Date:  date,
		Type:  p.Type(),
		Value: p.Encode(),
		Unit:  DefaultUnits[p.Type()],
	}
}

// Patch holds the fields an update replaces. Nil fields are left unchanged.
// ID and Timestamp are never patchable.
type Patch struct {
	Date  *string     `json:"date,omitempty"`
	Type  *RecordType `json:"type,omitempty"`
	Value *string     `json:"value,omitempty"`
	Unit  *string     `json:"unit,omitempty"`
}

// Apply returns r with the patch merged over it.
func (p Patch) Apply(r Record) Record {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Unit != nil {
		r.Unit = *p.Unit
	}
	return r
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Type == nil && p.Value == nil && p.Unit == nil
}
