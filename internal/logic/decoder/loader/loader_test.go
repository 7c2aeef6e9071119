package loader

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

func encodeWrite(t *testing.T, offset uint32, payload []byte) []byte {
	var buf bytes.Buffer
	enc := bin.NewBinEncoder(&buf)
	require.NoError(t, enc.WriteUint32(InstructionWrite, bin.LE))
	require.NoError(t, enc.WriteUint32(offset, bin.LE))
	require.NoError(t, enc.WriteUint64(uint64(len(payload)), bin.LE))
	require.NoError(t, enc.WriteBytes(payload, false))
	return buf.Bytes()
}

func loaderInstruction(data []byte) *core.Instruction {
	return &core.Instruction{
		Program:         consts.BPFLoaderProgramStr,
		Data:            data,
		Accounts:        core.AccountRefs("ProgramAccount"),
		TransactionHash: "TX",
		Timestamp:       7,
	}
}

// 场景：Write { offset=0x100, bytes=[0xDE, 0xAD] }
func TestDecode_Write(t *testing.T) {
	set, err := DecodeInstructionSet(loaderInstruction(encodeWrite(t, 0x100, []byte{0xDE, 0xAD})))
	require.NoError(t, err)

	assert.Equal(t, core.Function{TxHash: "TX", Program: consts.BPFLoaderProgramStr, Name: "write", Timestamp: 7}, set.Function)
	assert.Equal(t, []core.Property{
		{Key: "offset", Value: "256", ParentKey: "", Timestamp: 7},
		{Key: "bytes", Value: "3q0=", ParentKey: "info", Timestamp: 7},
	}, set.Properties)
}

func TestDecode_Finalize(t *testing.T) {
	set, err := DecodeInstructionSet(loaderInstruction([]byte{1, 0, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, "finalize", set.Function.Name)
	assert.Empty(t, set.Properties)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"空数据":      {},
		"未知标签":     {9, 0, 0, 0},
		"多余字节":     {1, 0, 0, 0, 0},
		"bytes 截断": encodeWrite(t, 1, []byte{1, 2, 3})[:18],
	}
	for name, data := range cases {
		_, err := DecodeInstructionSet(loaderInstruction(data))
		assert.ErrorIs(t, err, common.ErrDecode, name)
	}
}

func TestHandler_SharedBetweenDeployments(t *testing.T) {
	m := map[string]common.InstructionHandler{}
	RegisterHandlers(m)
	require.Len(t, m, 2)

	ix := loaderInstruction(encodeWrite(t, 0, []byte("x")))
	ix.Program = consts.BPFLoaderDeprecatedProgramStr
	tables, err := m[consts.BPFLoaderDeprecatedProgramStr](ix)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, TableName, tables[0].TableName)
	require.Len(t, tables[0].Rows, 1)

	_, err = avro.Marshal(tables[0].Schema, tables[0].Rows[0])
	assert.NoError(t, err, "属性包行应能按 schema 编码")
}
