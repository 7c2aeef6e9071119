package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRefs_DenseIndex(t *testing.T) {
	refs := AccountRefs("a", "b", "c")
	for i, ref := range refs {
		assert.Equal(t, i, ref.Index, "Index 应与位置一致")
	}
	assert.Equal(t, "c", refs[2].AccountAddress)
	assert.Empty(t, AccountRefs())
}

func TestInstruction_IsInner(t *testing.T) {
	parent := int32(2)
	assert.False(t, (&Instruction{}).IsInner())
	assert.True(t, (&Instruction{ParentIndex: &parent}).IsInner())
}

func TestRowCount(t *testing.T) {
	tables := []*TableData{
		NewTableData(nil, "a", 1, 2),
		NewTableData(nil, "b"),
		NewTableData(nil, "c", 3),
	}
	assert.Equal(t, 3, RowCount(tables))
	assert.Equal(t, 0, RowCount(nil))
}

func TestTxContext_TimestampMs(t *testing.T) {
	ctx := &TxContext{BlockTime: 1_700_000_000}
	assert.Equal(t, int64(1_700_000_000_000), ctx.TimestampMs())
}
