// Package domain contains pure, dependency-free domain models and types
// for the compliance decisioning engine.
package domain

import (
	"fmt"
	"maps"
	"sort"
)

// Key represents a type-safe generic key for accessing fields in a Record.
// The type parameter T ensures compile-time type safety when getting and
// setting values, eliminating the need for runtime type assertions.
type Key[T any] struct{ name string }

// NewKey creates a new Key with the specified name and type.
// This function is provided for creating keys outside of the domain package.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the field name the key addresses.
func (k Key[T]) Name() string { return k.name }

// Predefined record keys for the loan application fields consumed by the
// scoring pipeline. Each key is strongly typed to ensure type safety at
// compile time. Numeric fields are uniformly float64 so records built from
// JSON or CSV input need no per-field coercion.
var (
	// KeyApplicationID stores the application identifier (e.g. "LC_1001").
	KeyApplicationID = Key[string]{"id"}

	// KeyLoanAmount stores the requested loan principal in dollars.
	KeyLoanAmount = Key[float64]{"loan_amount"}

	// KeyInterestRate stores the annual interest rate as a percentage.
	KeyInterestRate = Key[float64]{"interest_rate"}

	// KeyGrade stores the credit grade letter (A through E or beyond).
	KeyGrade = Key[string]{"grade"}

	// KeyEmploymentLength stores the applicant's employment length in years.
	KeyEmploymentLength = Key[float64]{"employment_length"}

	// KeyHomeOwnership stores the housing status (RENT, OWN, MORTGAGE, ...).
	KeyHomeOwnership = Key[string]{"home_ownership"}

	// KeyAnnualIncome stores the self-reported annual income in dollars.
	KeyAnnualIncome = Key[float64]{"annual_income"}

	// KeyPurpose stores the stated loan purpose (debt_consolidation, ...).
	KeyPurpose = Key[string]{"purpose"}

	// KeyDTI stores the debt-to-income ratio as a percentage.
	KeyDTI = Key[float64]{"dti"}

	// KeyDelinquencies stores the delinquency count over the last two years.
	KeyDelinquencies = Key[float64]{"delinq_2yrs"}

	// KeyFramework stores the regulatory framework identifier injected into
	// the record before factor evaluation so framework-sensitive evaluators
	// can branch on it. It is evaluation context, not applicant data.
	KeyFramework = Key[string]{"regulatory_framework"}
)

// RequiredFields enumerates the ten fields a complete loan application
// carries. The completeness evaluator scores presence against this list.
var RequiredFields = []string{
	KeyApplicationID.name,
	KeyLoanAmount.name,
	KeyInterestRate.name,
	KeyGrade.name,
	KeyEmploymentLength.name,
	KeyHomeOwnership.name,
	KeyAnnualIncome.name,
	KeyPurpose.name,
	KeyDTI.name,
	KeyDelinquencies.name,
}

// Record represents an immutable loan application flowing through the
// scoring pipeline. It uses copy-on-write semantics so evaluators can
// never mutate a caller's data, and absent fields read as zero values
// rather than errors. Record is the primary input to every evaluator.
type Record struct {
	// data holds the field name to value pairs that make up the record.
	// It is unexported to maintain immutability guarantees.
	data map[string]any
}

// NewRecord creates a new empty Record.
// The returned Record is ready to use and can be safely shared across
// goroutines.
func NewRecord() Record {
	return Record{data: make(map[string]any)}
}

// RecordFromMap builds a Record from a raw field map, such as a decoded
// JSON object or a CSV row. The map is copied; later changes to it do not
// affect the Record.
func RecordFromMap(fields map[string]any) Record {
	return Record{data: maps.Clone(fields)}
}

// Get retrieves a field from the Record with compile-time type safety.
// It returns the value and a boolean indicating whether the field exists,
// is non-nil, and holds a value of the expected type. A missing field
// returns the zero value with ok=false, which evaluators treat as a
// neutral contribution by policy.
//
// Example:
//
//	grade, ok := Get(rec, KeyGrade)
//	if !ok {
//	    // field absent; grade is ""
//	}
func Get[T any](r Record, key Key[T]) (T, bool) {
	var zero T
	value, exists := r.data[key.name]
	if !exists || value == nil {
		return zero, false
	}
	val, ok := value.(T)
	if !ok {
		return zero, false
	}
	return val, true
}

// With creates a new Record with the specified field added or updated.
// It implements copy-on-write semantics, returning a new Record instance
// while leaving the original unchanged.
//
// Example:
//
//	rec = domain.With(rec, domain.KeyFramework, "EU_AI_ACT")
func With[T any](r Record, key Key[T], value T) Record {
	newData := maps.Clone(r.data)
	if newData == nil {
		newData = make(map[string]any, 1)
	}
	newData[key.name] = value
	return Record{data: newData}
}

// Has reports whether the named field is present with a non-nil value.
// It checks presence only; the field's type is not inspected.
func (r Record) Has(name string) bool {
	v, ok := r.data[name]
	return ok && v != nil
}

// Fields returns the names of all populated fields in sorted order.
// The returned slice is safe to modify without affecting the Record.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r.data))
	for k := range r.data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the record's fields for serialization.
func (r Record) Map() map[string]any {
	if r.data == nil {
		return map[string]any{}
	}
	return maps.Clone(r.data)
}

// String returns a string representation of the Record for debugging.
func (r Record) String() string {
	return fmt.Sprintf("Record%v", r.data)
}
