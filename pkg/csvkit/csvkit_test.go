package csvkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleRows(t *testing.T) {
	rows := Parse("a,b,c\n1,2,3")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

func TestParse_QuotedFieldWithComma(t *testing.T) {
	rows := Parse(`name,city` + "\n" + `"Acme Rentals, Ltd",Lahore`)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Acme Rentals, Ltd", "Lahore"}, rows[1])
}

func TestParse_EscapedQuotes(t *testing.T) {
	rows := Parse(`"He said ""hello""",x`)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{`He said "hello"`, "x"}, rows[0])
}

func TestParse_BlankLinesDropped(t *testing.T) {
	rows := Parse("a,b\n\n   \n1,2\n\n")

	require.Len(t, rows, 2, "Blank and whitespace-only lines should be dropped")
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestParse_CRLFAndBareCR(t *testing.T) {
	rows := Parse("a,b\r\n1,2\r3,4")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "2"}, rows[1])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestParse_EmptyFields(t *testing.T) {
	rows := Parse("a,,c\n,,")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "", "c"}, rows[0])
	assert.Equal(t, []string{"", "", ""}, rows[1])
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n"))
}

func TestParse_UnevenRecordLengths(t *testing.T) {
	// The parser stays lenient; the caller decides whether this is an error.
	rows := Parse("a,b,c\n1,2")

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 2)
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Business Name":   "business_name",
		"  Email  ":       "email",
		"CITY":            "city",
		"Contact  Phone ": "contact_phone",
		"slug":            "slug",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeHeader(input), "Header %q", input)
	}
}
