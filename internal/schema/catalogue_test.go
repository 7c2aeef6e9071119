package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	TxHash    string  `avro:"tx_hash"`
	Timestamp int64   `avro:"timestamp"`
	Memo      *string `avro:"memo"`
}

const testRowSchema = `{
  "type": "record",
  "name": "CatalogueTestRow",
  "namespace": "io.solana.decoder.test",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "timestamp", "type": "long"},
    {"name": "memo", "type": ["null", "string"], "default": null}
  ]
}`

func TestMustRegister_LookupAndTables(t *testing.T) {
	s := MustRegister("catalogue_test_rows", testRowSchema)

	got, ok := Lookup("catalogue_test_rows")
	require.True(t, ok)
	assert.Equal(t, s.Fingerprint(), got.Fingerprint())
	assert.Contains(t, Tables(), "catalogue_test_rows")

	_, ok = Lookup("no_such_table")
	assert.False(t, ok)

	assert.Panics(t, func() { MustRegister("catalogue_test_rows", testRowSchema) }, "重复注册应 panic")
}

func TestMustParse_Malformed(t *testing.T) {
	assert.Panics(t, func() { MustParse(`{"type": "record", "name": "Broken"`) })
}

func TestRowEncoding_NullableField(t *testing.T) {
	s := MustParse(testRowSchema)
	memo := "hello"

	b, err := avro.Marshal(s, &testRow{TxHash: "tx", Timestamp: 1, Memo: &memo})
	require.NoError(t, err)

	var out testRow
	require.NoError(t, avro.Unmarshal(s, b, &out))
	assert.Equal(t, "tx", out.TxHash)
	require.NotNil(t, out.Memo)
	assert.Equal(t, "hello", *out.Memo)
}

func TestInstructionSetSchema_Parsed(t *testing.T) {
	rec, ok := InstructionSet.(*avro.RecordSchema)
	require.True(t, ok)
	assert.Len(t, rec.Fields(), 2)
}
