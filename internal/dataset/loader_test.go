package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacraft/domain/core"
)

func TestLoadCSV_Basic(t *testing.T) {
	csv := "id,amount,category\n1,10.5,food\n2,20.0,travel\n3,,food\n"

	frame, err := NewLoader().LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, frame.RowCount())
	assert.Equal(t, []string{"id", "amount", "category"}, frame.ColumnNames())
	assert.Equal(t, 1, frame.MissingCount("amount"))
}

func TestLoadCSV_HeaderTrimmedCellsAreNot(t *testing.T) {
	csv := " id , name \n1, alice \n"

	frame, err := NewLoader().LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, frame.ColumnNames())

	col, ok := frame.Column("name")
	require.True(t, ok)
	assert.Equal(t, " alice ", col.Cells[0], "cell whitespace must survive loading")
}

func TestLoadCSV_ShortRecordsPadded(t *testing.T) {
	csv := "a,b,c\n1,2,3\n4,5\n6\n"

	frame, err := NewLoader().LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, frame.RowCount())
	assert.Equal(t, []string{"4", "5", ""}, frame.Row(1))
	assert.Equal(t, 2, frame.MissingCount("c"))
}

func TestLoadCSV_MissingTokensRecognized(t *testing.T) {
	csv := "v\nNA\nnull\nn/a\n#N/A\nNone\nhello\n"

	frame, err := NewLoader().LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 5, frame.MissingCount("v"))
	assert.Equal(t, []string{"hello"}, frame.NonMissing("v"))
}

func TestLoadCSV_ExtraTokens(t *testing.T) {
	csv := "v\n-\n1\n"

	frame, err := NewLoader("-").LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, frame.MissingCount("v"))
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	_, err := NewLoader().LoadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	_, err := NewLoader().LoadCSV(strings.NewReader("a,b,c\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := NewLoader().LoadFile("data.parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedFile)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	csv := "id,name\n1,alice\n2,bob\n"

	loader := NewLoader()
	frame, err := loader.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, WriteCSV(&out, frame))

	reloaded, err := loader.LoadCSV(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.Equal(t, frame.ColumnNames(), reloaded.ColumnNames())
	assert.Equal(t, frame.RowCount(), reloaded.RowCount())
	assert.Equal(t, frame.Row(0), reloaded.Row(0))
}
