// Package diary defines the domain records of the health diary and their
// mapping to and from stored table entities.
//
// Five logical tables exist: food, symptom, medication and drink entries
// written by the user, and analysis entries written back after a
// text-completion run. Records are created exactly once via insert, read
// via unfiltered full-table scan, and never mutated or deleted.
package diary

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tphakala/healthdiary-go/internal/errors"
	"github.com/tphakala/healthdiary-go/internal/tablestore"
)

// Table names in the storage account.
const (
	FoodTable       = "foodentries"
	SymptomTable    = "symptomentries"
	MedicationTable = "medicationentries"
	DrinkTable      = "drinkentries"
	AnalysisTable   = "analysisentries"
)

// Fixed partition keys, one per table.
const (
	foodPartition       = "food"
	symptomPartition    = "symptoms"
	medicationPartition = "medications"
	drinkPartition      = "drinks"
	analysisPartition   = "analysis"
)

// IntValue is an integer that unmarshals from a JSON number or a numeric
// JSON string. Anything non-numeric is rejected at decode time instead of
// being stored as garbage.
type IntValue int

// UnmarshalJSON implements strict integer decoding.
func (n *IntValue) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.Newf("value %q is not an integer", s).
			Component("diary").
			Category(errors.CategoryValidation).
			Build()
	}
	*n = IntValue(v)
	return nil
}

// FoodEntry records something eaten.
type FoodEntry struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Food  string `json:"food"`
	Notes string `json:"notes"`
}

// Validate checks required fields before any network interaction.
func (e *FoodEntry) Validate() error {
	return requireFields(map[string]string{
		"date": e.Date,
		"time": e.Time,
		"food": e.Food,
	})
}

// ToEntity maps the record to its stored shape, assigning the fixed
// partition key and a fresh row key.
func (e *FoodEntry) ToEntity() tablestore.Entity {
	return tablestore.Entity{
		tablestore.PropPartitionKey: foodPartition,
		tablestore.PropRowKey:       NewRowKey(e.Date, e.Time),
		"date":                      e.Date,
		"time":                      e.Time,
		"food":                      e.Food,
		"notes":                     e.Notes,
	}
}

// FoodEntryFromEntity extracts the whitelisted fields of a stored entity.
// Unknown fields are dropped; missing optionals default to empty string.
func FoodEntryFromEntity(ent tablestore.Entity) FoodEntry {
	return FoodEntry{
		Date:  ent.String("date"),
		Time:  ent.String("time"),
		Food:  ent.String("food"),
		Notes: ent.String("notes"),
	}
}

// SymptomEntry records a symptom observation with a 1-10 severity score.
type SymptomEntry struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	SymptomScore IntValue `json:"symptomScore"`
	Notes        string   `json:"notes"`
}

// Validate checks required fields and the score range.
func (e *SymptomEntry) Validate() error {
	if err := requireFields(map[string]string{
		"date": e.Date,
		"time": e.Time,
	}); err != nil {
		return err
	}
	if e.SymptomScore < 1 || e.SymptomScore > 10 {
		return errors.Newf("symptomScore must be between 1 and 10, got %d", e.SymptomScore).
			Component("diary").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// ToEntity maps the record to its stored shape. The score is stored as an
// integer, never as a string.
func (e *SymptomEntry) ToEntity() tablestore.Entity {
	return tablestore.Entity{
		tablestore.PropPartitionKey: symptomPartition,
		tablestore.PropRowKey:       NewRowKey(e.Date, e.Time),
		"date":                      e.Date,
		"time":                      e.Time,
		"symptomScore":              int(e.SymptomScore),
		"notes":                     e.Notes,
	}
}

// SymptomEntryFromEntity extracts the whitelisted fields of a stored entity.
func SymptomEntryFromEntity(ent tablestore.Entity) SymptomEntry {
	return SymptomEntry{
		Date:         ent.String("date"),
		Time:         ent.String("time"),
		SymptomScore: IntValue(ent.Int("symptomScore")),
		Notes:        ent.String("notes"),
	}
}

// MedicationEntry records a medication or supplement taken.
type MedicationEntry struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Notes      string `json:"notes"`
}

// Validate checks required fields; dosage and notes are optional.
func (e *MedicationEntry) Validate() error {
	return requireFields(map[string]string{
		"date":       e.Date,
		"time":       e.Time,
		"medication": e.Medication,
	})
}

// ToEntity maps the record to its stored shape.
func (e *MedicationEntry) ToEntity() tablestore.Entity {
	return tablestore.Entity{
		tablestore.PropPartitionKey: medicationPartition,
		tablestore.PropRowKey:       NewRowKey(e.Date, e.Time),
		"date":                      e.Date,
		"time":                      e.Time,
		"medication":                e.Medication,
		"dosage":                    e.Dosage,
		"notes":                     e.Notes,
	}
}

// MedicationEntryFromEntity extracts the whitelisted fields of a stored entity.
func MedicationEntryFromEntity(ent tablestore.Entity) MedicationEntry {
	return MedicationEntry{
		Date:       ent.String("date"),
		Time:       ent.String("time"),
		Medication: ent.String("medication"),
		Dosage:     ent.String("dosage"),
		Notes:      ent.String("notes"),
	}
}

// DrinkEntry records an alcoholic drink.
type DrinkEntry struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Drink  string `json:"drink"`
	Amount string `json:"amount"`
	Notes  string `json:"notes"`
}

// Validate checks required fields; amount and notes are optional.
func (e *DrinkEntry) Validate() error {
	return requireFields(map[string]string{
		"date":  e.Date,
		"time":  e.Time,
		"drink": e.Drink,
	})
}

// ToEntity maps the record to its stored shape.
func (e *DrinkEntry) ToEntity() tablestore.Entity {
	return tablestore.Entity{
		tablestore.PropPartitionKey: drinkPartition,
		tablestore.PropRowKey:       NewRowKey(e.Date, e.Time),
		"date":                      e.Date,
		"time":                      e.Time,
		"drink":                     e.Drink,
		"amount":                    e.Amount,
		"notes":                     e.Notes,
	}
}

// DrinkEntryFromEntity extracts the whitelisted fields of a stored entity.
func DrinkEntryFromEntity(ent tablestore.Entity) DrinkEntry {
	return DrinkEntry{
		Date:   ent.String("date"),
		Time:   ent.String("time"),
		Drink:  ent.String("drink"),
		Amount: ent.String("amount"),
		Notes:  ent.String("notes"),
	}
}

// AnalysisEntry records one text-completion analysis run over a window of
// diary data.
type AnalysisEntry struct {
	Timestamp string   `json:"timestamp"`
	Days      IntValue `json:"days"`
	Analysis  string   `json:"analysis"`
}

// ToEntity maps the record to its stored shape. The row key is derived
// from the ISO timestamp with characters the service forbids replaced.
func (e *AnalysisEntry) ToEntity() tablestore.Entity {
	return tablestore.Entity{
		tablestore.PropPartitionKey: analysisPartition,
		tablestore.PropRowKey:       AnalysisRowKey(e.Timestamp),
		"timestamp":                 e.Timestamp,
		"days":                      int(e.Days),
		"analysis":                  e.Analysis,
	}
}

// AnalysisEntryFromEntity extracts the whitelisted fields of a stored entity.
func AnalysisEntryFromEntity(ent tablestore.Entity) AnalysisEntry {
	return AnalysisEntry{
		Timestamp: ent.String("timestamp"),
		Days:      IntValue(ent.Int("days")),
		Analysis:  ent.String("analysis"),
	}
}

// requireFields returns a validation error naming the first missing field.
func requireFields(fields map[string]string) error {
	// Check in a stable order so error messages are deterministic.
	for _, name := range []string{"date", "time", "food", "medication", "drink"} {
		value, ok := fields[name]
		if ok && value == "" {
			return errors.Newf("%s is required", name).
				Component("diary").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (n IntValue) String() string {
	return fmt.Sprintf("%d", int(n))
}
