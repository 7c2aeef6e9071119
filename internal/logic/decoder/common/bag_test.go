package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ix-decoder-sol/internal/logic/core"
)

func TestPropertyBag_Order(t *testing.T) {
	bag := NewPropertyBag(1000).
		Uint("offset", 16, "").
		Base64("bytes", []byte{0xde, 0xad, 0xbe, 0xef}, "info").
		Int("unix_timestamp", -1, "lockup").
		Bool("public", true, "")

	props := bag.Properties()
	assert.Equal(t, []core.Property{
		{Key: "offset", Value: "16", ParentKey: "", Timestamp: 1000},
		{Key: "bytes", Value: "3q2+7w==", ParentKey: "info", Timestamp: 1000},
		{Key: "unix_timestamp", Value: "-1", ParentKey: "lockup", Timestamp: 1000},
		{Key: "public", Value: "true", ParentKey: "", Timestamp: 1000},
	}, props)
}

func TestBuildInstructionSet_EmptyBag(t *testing.T) {
	ix := &core.Instruction{Program: "p", TransactionHash: "tx", Timestamp: 5}
	set := BuildInstructionSet(ix, "finalize", NewPropertyBag(ix.Timestamp))
	assert.Equal(t, core.Function{TxHash: "tx", Program: "p", Name: "finalize", Timestamp: 5}, set.Function)
	assert.NotNil(t, set.Properties)
	assert.Empty(t, set.Properties)
}

func TestSplitPair(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 7, 1001, ^uint64(0)} {
		a, b := SplitPair(n)
		assert.Equal(t, n/2, a)
		assert.Equal(t, n, a+b, "拆分后总量应守恒: n=%d", n)
	}
}
