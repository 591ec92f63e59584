package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/internal/domain"
)

func sampleLoader(t *testing.T) *Loader {
	t.Helper()
	loader, err := NewLoader(filepath.Join(t.TempDir(), "sample.csv"))
	require.NoError(t, err)
	return loader
}

func TestNewLoader_CreatesSampleWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sample.csv")

	loader, err := NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, path, loader.Path())
	assert.FileExists(t, path)

	records, err := loader.Load(0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestLoader_LoadParsesTypes(t *testing.T) {
	loader := sampleLoader(t)

	records, err := loader.Load(1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	id, ok := domain.Get(rec, domain.KeyApplicationID)
	require.True(t, ok)
	assert.Equal(t, "LC_1001", id)

	amount, ok := domain.Get(rec, domain.KeyLoanAmount)
	require.True(t, ok)
	assert.InDelta(t, 10000.0, amount, 1e-9)

	rate, ok := domain.Get(rec, domain.KeyInterestRate)
	require.True(t, ok)
	assert.InDelta(t, 5.32, rate, 1e-9)

	grade, ok := domain.Get(rec, domain.KeyGrade)
	require.True(t, ok)
	assert.Equal(t, "A", grade)

	for _, field := range domain.RequiredFields {
		assert.True(t, rec.Has(field), "field %s", field)
	}
}

func TestLoader_LoadHonorsCount(t *testing.T) {
	loader := sampleLoader(t)

	records, err := loader.Load(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = loader.Load(50)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestLoader_ByID(t *testing.T) {
	loader := sampleLoader(t)

	rec, err := loader.ByID("LC_1004")
	require.NoError(t, err)

	grade, _ := domain.Get(rec, domain.KeyGrade)
	assert.Equal(t, "E", grade)
	delinq, _ := domain.Get(rec, domain.KeyDelinquencies)
	assert.InDelta(t, 3.0, delinq, 1e-9)

	_, err = loader.ByID("LC_9999")
	assert.ErrorIs(t, err, domain.ErrUnknownApplication)
}

func TestLoader_RawLendingClubHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	csvData := "id,loan_amnt,int_rate,grade,emp_length,home_ownership,annual_inc,purpose,dti,delinq_2yrs\n" +
		"LC_2001,12000,9.5,B,4,RENT,55000,credit_card,22.1,0\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	loader, err := NewLoader(path)
	require.NoError(t, err)

	rec, err := loader.ByID("LC_2001")
	require.NoError(t, err)

	amount, ok := domain.Get(rec, domain.KeyLoanAmount)
	require.True(t, ok, "loan_amnt resolves to loan_amount")
	assert.InDelta(t, 12000.0, amount, 1e-9)

	income, ok := domain.Get(rec, domain.KeyAnnualIncome)
	require.True(t, ok, "annual_inc resolves to annual_income")
	assert.InDelta(t, 55000.0, income, 1e-9)
}

func TestLoader_FuzzyHeaderMatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typos.csv")
	// "grde" and "purpos" are within edit distance 2 of canonical
	// fields; "comment" is not and its column is dropped.
	csvData := "id,grde,purpos,comment\n" +
		"LC_3001,A,credit_card,ignore me\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	loader, err := NewLoader(path)
	require.NoError(t, err)

	rec, err := loader.ByID("LC_3001")
	require.NoError(t, err)

	grade, ok := domain.Get(rec, domain.KeyGrade)
	require.True(t, ok)
	assert.Equal(t, "A", grade)

	purpose, ok := domain.Get(rec, domain.KeyPurpose)
	require.True(t, ok)
	assert.Equal(t, "credit_card", purpose)

	assert.False(t, rec.Has("comment"))
}

func TestLoader_EmptyCellsAreAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.csv")
	csvData := "id,loan_amount,grade\n" +
		"LC_4001,,B\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	loader, err := NewLoader(path)
	require.NoError(t, err)

	rec, err := loader.ByID("LC_4001")
	require.NoError(t, err)
	assert.False(t, rec.Has("loan_amount"))

	grade, _ := domain.Get(rec, domain.KeyGrade)
	assert.Equal(t, "B", grade)
}

func TestLoader_MalformedNumberFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	csvData := "id,loan_amount\nLC_5001,not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	loader, err := NewLoader(path)
	require.NoError(t, err)

	_, err = loader.Load(0)
	assert.ErrorContains(t, err, "loan_amount")
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sample.csv")
	require.NoError(t, WriteSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,loan_amount,interest_rate")
	assert.Contains(t, string(data), "LC_1005")
}
