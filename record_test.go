package bitinfo

import (
	"testing"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "Analysis": "BitInformation",
  "date": "2026-07-31T00:00:00Z",
  "file": "/data/example.nc",
  "version": "1.0",
  "groups": {
    "": {
      "vars": {
        "temperature": {
          "type": "float32",
          "itemsize": 4,
          "byteorder": "<",
          "signbit": 31,
          "manbit": [0, 23],
          "expbit": [23, 31],
          "elements": 128,
          "bitinfo": [0, 0, 0],
          "axis": 0
        }
      }
    }
  }
}`

func TestParseDocument_Valid(t *testing.T) {
	doc, err := ParseDocument([]byte(validDoc))
	require.NoError(t, err)
	require.Equal(t, "BitInformation", doc.Analysis)
	rec := doc.Groups[""].Vars["temperature"]
	require.Equal(t, "float32", rec.Type)
	require.Equal(t, uint64(128), rec.Elements)
}

func TestParseDocument_MissingRequiredKey(t *testing.T) {
	missing := `{"groups": {"": {"vars": {"temperature": {"type": "float32", "manbit": [0,23], "elements": 128}}}}}`
	_, err := ParseDocument([]byte(missing))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInconsistentAnalysis)
}

func TestParseDocument_UnknownDtype(t *testing.T) {
	bad := `{"groups": {"": {"vars": {"x": {"type": "float8", "bitinfo": [], "manbit": [0,1], "elements": 1}}}}}`
	_, err := ParseDocument([]byte(bad))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInconsistentAnalysis)
}

func TestParseDocument_InvalidJSON(t *testing.T) {
	_, err := ParseDocument([]byte("not json"))
	require.Error(t, err)
}

func TestDocument_Marshal_RoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(validDoc))
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	doc2, err := ParseDocument(data)
	require.NoError(t, err)
	require.Equal(t, doc.Analysis, doc2.Analysis)
}

func TestByteOrderFromTag(t *testing.T) {
	require.Equal(t, core.LittleEndian, ByteOrderFromTag("<"))
	require.Equal(t, core.BigEndian, ByteOrderFromTag(">"))
	require.Equal(t, core.NativeOrder, ByteOrderFromTag(""))
	require.Equal(t, core.NativeOrder, ByteOrderFromTag("??"))
}

func TestKindFromTypeName(t *testing.T) {
	k, err := kindFromTypeName("float32")
	require.NoError(t, err)
	require.Equal(t, core.KindFloat32, k)

	_, err = kindFromTypeName("bogus")
	require.Error(t, err)
}
