package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSheetDetailsStandardLink(t *testing.T) {
	d, err := ExtractSheetDetails("https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=456")

	assert.NoError(t, err)
	assert.Equal(t, "1AbC-dEf_123", d.ID)
	assert.False(t, d.IsPublished)
	assert.Equal(t, "456", d.GID)
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/1AbC-dEf_123/gviz/tq?tqx=out:csv&gid=456",
		d.ExportURL())
}

func TestExtractSheetDetailsGidInQuery(t *testing.T) {
	d, err := ExtractSheetDetails("https://docs.google.com/spreadsheets/d/XYZ/edit?gid=99")

	assert.NoError(t, err)
	assert.Equal(t, "99", d.GID)
}

func TestExtractSheetDetailsNoGid(t *testing.T) {
	d, err := ExtractSheetDetails("https://docs.google.com/spreadsheets/d/XYZ/edit")

	assert.NoError(t, err)
	assert.Equal(t, "", d.GID)
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/XYZ/gviz/tq?tqx=out:csv",
		d.ExportURL())
}

func TestExtractSheetDetailsPublishedLink(t *testing.T) {
	d, err := ExtractSheetDetails("https://docs.google.com/spreadsheets/d/e/2PACX-abc123/pubhtml")

	assert.NoError(t, err)
	assert.True(t, d.IsPublished)
	assert.Equal(t, "2PACX-abc123", d.ID)
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/e/2PACX-abc123/pub?output=csv",
		d.ExportURL())
}

func TestExtractSheetDetailsInvalid(t *testing.T) {
	_, err := ExtractSheetDetails("https://example.com/nada-a-ver")
	assert.ErrorIs(t, err, ErrInvalidSheetURL)

	_, err = ExtractSheetDetails("texto solto")
	assert.ErrorIs(t, err, ErrInvalidSheetURL)
}
