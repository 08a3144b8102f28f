// ABOUTME: Typed record payloads with encode/decode to the flat value string.
// ABOUTME: Isolates number, enum, tag-list, and reading-duration parsing from callers.
package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Payload is the typed form of a record value. Each record type has one
// implementation; Unknown carries values of unrecognised types.
type Payload interface {
	Type() RecordType
	Encode() string
}

// SleepQuality is the four-level sleep rating.
type SleepQuality string

const (
	SleepPoor  SleepQuality = "差"
	SleepFair  SleepQuality = "普通"
	SleepGood  SleepQuality = "好"
	SleepGreat SleepQuality = "很棒"
)

// SleepQualities lists the ratings from worst to best.
var SleepQualities = []SleepQuality{SleepPoor, SleepFair, SleepGood, SleepGreat}

var sleepAliases = map[string]SleepQuality{
	"poor":  SleepPoor,
	"fair":  SleepFair,
	"good":  SleepGood,
	"great": SleepGreat,
}

// IsValid reports whether q is one of the four ratings.
func (q SleepQuality) IsValid() bool {
	for _, s := range SleepQualities {
		if s == q {
			return true
		}
	}
	return false
}

// ParseSleepQuality accepts a stored rating or its English alias.
func ParseSleepQuality(s string) (SleepQuality, bool) {
	s = strings.TrimSpace(s)
	if q := SleepQuality(s); q.IsValid() {
		return q, true
	}
	q, ok := sleepAliases[strings.ToLower(s)]
	return q, ok
}

// Weight is a body weight sample.
type Weight struct {
	Kilograms float64
}

func (Weight) Type() RecordType { return TypeWeight }
func (w Weight) Encode() string { return strconv.FormatFloat(w.Kilograms, 'f', -1, 64) }

// Water is an amount of water drunk.
type Water struct {
	Milliliters float64
}

func (Water) Type() RecordType { return TypeWater }
func (w Water) Encode() string { return strconv.FormatFloat(w.Milliliters, 'f', -1, 64) }

// Sleep is a night's sleep rating.
type Sleep struct {
	Quality SleepQuality
}

func (Sleep) Type() RecordType { return TypeSleep }
func (s Sleep) Encode() string { return string(s.Quality) }

// Exercise is a set of trained body parts or activity kinds.
type Exercise struct {
	Tags []string
}

func (Exercise) Type() RecordType { return TypeExercise }
func (e Exercise) Encode() string { return strings.Join(e.Tags, ", ") }

// Reading is a reading session on one title.
type Reading struct {
	Title   string
	Minutes int
}

func (Reading) Type() RecordType { return TypeReading }
func (r Reading) Encode() string { return fmt.Sprintf("%s (%d 分鐘)", r.Title, r.Minutes) }

// Unknown carries the raw value of a record type this build doesn't know.
type Unknown struct {
	Kind RecordType
	Raw  string
}

func (u Unknown) Type() RecordType { return u.Kind }
func (u Unknown) Encode() string { return u.Raw }

// readingPattern matches "<title> (<minutes> 分鐘)".
var readingPattern = regexp.MustCompile(`^(.*) \((\d+) 分鐘\)$`)

// ErrMalformedValue is returned when a stored value doesn't match its type.
var ErrMalformedValue = errors.New("malformed value")

// DecodePayload parses a flat value string according to its record type.
// Unknown types decode to Unknown and never fail.
func DecodePayload(t RecordType, raw string) (Payload, error) {
	switch t {
	case TypeWeight:
		v, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", raw, err)
		}
		return Weight{Kilograms: v}, nil
	case TypeWater:
		v, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("water %q: %w", raw, err)
		}
		return Water{Milliliters: v}, nil
	case TypeSleep:
		q := SleepQuality(strings.TrimSpace(raw))
		if !q.IsValid() {
			return nil, fmt.Errorf("sleep %q: %w", raw, ErrMalformedValue)
		}
		return Sleep{Quality: q}, nil
	case TypeExercise:
		return Exercise{Tags: splitTags(raw)}, nil
	case TypeReading:
		r, ok := ParseReading(raw)
		if !ok {
			return nil, fmt.Errorf("reading %q: %w", raw, ErrMalformedValue)
		}
		return r, nil
	default:
		return Unknown{Kind: t, Raw: raw}, nil
	}
}

// ParseReading decodes "<title> (<minutes> 分鐘)". The title is trimmed.
func ParseReading(raw string) (Reading, bool) {
	m := readingPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Reading{}, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return Reading{}, false
	}
	return Reading{Title: strings.TrimSpace(m[1]), Minutes: minutes}, true
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrMalformedValue
	}
	return v, nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Validate applies the entry-form rules to a payload before it is stored.
// The store itself never validates.
func Validate(p Payload) error {
	switch v := p.(type) {
	case Weight:
		if v.Kilograms <= 0 {
			return fmt.Errorf("weight must be greater than 0")
		}
	case Water:
		if v.Milliliters <= 0 || v.Milliliters != math.Trunc(v.Milliliters) {
			return fmt.Errorf("water must be a whole number greater than 0")
		}
	case Sleep:
		if !v.Quality.IsValid() {
			return fmt.Errorf("sleep quality must be one of 差, 普通, 好, 很棒")
		}
	case Exercise:
		if len(v.Tags) == 0 {
			return fmt.Errorf("select at least one exercise type")
		}
		for _, tag := range v.Tags {
			if strings.TrimSpace(tag) == "" || strings.Contains(tag, ",") {
				return fmt.Errorf("invalid exercise tag %q", tag)
			}
		}
	case Reading:
		if strings.TrimSpace(v.Title) == "" {
			return fmt.Errorf("reading title is required")
		}
		if v.Minutes <= 0 {
			return fmt.Errorf("reading minutes must be greater than 0")
		}
	default:
		return fmt.Errorf("unknown record type: %s", p.Type())
	}
	return nil
}

// PayloadFromInput builds and validates a payload from entry-form style
// arguments, as typed on the command line or sent by an API client:
//
//	weight   <kg>
//	water    <ml>
//	sleep    <差|普通|好|很棒|poor|fair|good|great>
//	exercise <tag> [tag...]   (tags may also be comma-separated)
//	reading  <title...> <minutes>
func PayloadFromInput(t RecordType, args []string) (Payload, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s requires a value", t)
	}

	var p Payload
	switch t {
	case TypeWeight, TypeWater:
		v, err := parseNumber(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %s", t, args[0])
		}
		if t == TypeWeight {
			p = Weight{Kilograms: v}
		} else {
			p = Water{Milliliters: v}
		}
	case TypeSleep:
		q, ok := ParseSleepQuality(args[0])
		if !ok {
			return nil, fmt.Errorf("invalid sleep quality: %s", args[0])
		}
		p = Sleep{Quality: q}
	case TypeExercise:
		var tags []string
		for _, arg := range args {
			tags = append(tags, splitTags(arg)...)
		}
		p = Exercise{Tags: tags}
	case TypeReading:
		if len(args) < 2 {
			return nil, fmt.Errorf("reading requires a title and minutes")
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(args[len(args)-1]))
		if err != nil {
			return nil, fmt.Errorf("invalid reading minutes: %s", args[len(args)-1])
		}
		p = Reading{Title: strings.TrimSpace(strings.Join(args[:len(args)-1], " ")), Minutes: minutes}
	default:
		return nil, fmt.Errorf("unknown record type: %s", t)
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DraftFromInput validates entry-form arguments and builds a draft for date.
func DraftFromInput(t RecordType, date string, args []string) (Draft, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Draft{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	p, err := PayloadFromInput(t, args)
	if err != nil {
		return Draft{}, err
	}
	return NewDraft(date, p), nil
}

// ValidateValue checks a raw stored value against its type's entry rules.
// Unknown types are accepted as-is.
func ValidateValue(t RecordType, raw string) error {
	if !t.IsKnown() {
		return nil
	}
	p, err := DecodePayload(t, raw)
	if err != nil {
		return err
	}
	return Validate(p)
}
