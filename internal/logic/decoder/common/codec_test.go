package common

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ix-decoder-sol/internal/types"
)

type fixedArgs struct {
	Amount   uint64
	Resource types.Pubkey
	Public   bool
}

func TestDecodeBorshFixed(t *testing.T) {
	want := fixedArgs{Amount: 42, Public: true}
	want.Resource[0] = 9
	data, err := borsh.Serialize(want)
	require.NoError(t, err)

	got, err := DecodeBorshFixed[fixedArgs](data)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = DecodeBorshFixed[fixedArgs](append(data, 0))
	assert.ErrorIs(t, err, ErrDecode, "多余字节应报错")

	_, err = DecodeBorshFixed[fixedArgs](data[:len(data)-1])
	assert.ErrorIs(t, err, ErrDecode, "截断数据应报错")
}

func TestPayloadReader_Primitives(t *testing.T) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	require.NoError(t, enc.WriteUint8(7))
	require.NoError(t, enc.WriteUint16(513, bin.LE))
	require.NoError(t, enc.WriteUint32(70000, bin.LE))
	require.NoError(t, enc.WriteUint64(1<<40, bin.LE))
	require.NoError(t, enc.WriteInt64(-5, bin.LE))
	require.NoError(t, enc.WriteUint128(bin.Uint128{Lo: 42}, bin.LE))
	require.NoError(t, enc.WriteBool(true))

	r := NewPayloadReader(buf.Bytes())
	assert.Equal(t, uint8(7), r.U8())
	assert.Equal(t, uint16(513), r.U16())
	assert.Equal(t, uint32(70000), r.U32())
	assert.Equal(t, uint64(1<<40), r.U64())
	assert.Equal(t, int64(-5), r.I64())
	assert.Equal(t, "42", r.U128())
	assert.True(t, r.Bool())
	assert.NoError(t, r.Finish())
}

func TestPayloadReader_Options(t *testing.T) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	require.NoError(t, enc.WriteOption(true))
	require.NoError(t, enc.WriteUint64(99, bin.LE))
	require.NoError(t, enc.WriteOption(false))
	require.NoError(t, enc.WriteOption(true))
	require.NoError(t, enc.WriteUint32(3, bin.LE))
	require.NoError(t, enc.WriteBytes([]byte("uri"), false))

	r := NewPayloadReader(buf.Bytes())
	v := r.OptionU64()
	require.NotNil(t, v)
	assert.Equal(t, uint64(99), *v)
	assert.Nil(t, r.OptionI64())
	s := r.OptionBorshString()
	require.NotNil(t, s)
	assert.Equal(t, "uri", *s)
	assert.NoError(t, r.Finish())
}

func TestPayloadReader_InvalidOptionTag(t *testing.T) {
	r := NewPayloadReader([]byte{2, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.Nil(t, r.OptionU64())
	assert.ErrorIs(t, r.Finish(), ErrDecode)
}

func TestPayloadReader_BincodeString(t *testing.T) {
	var buf bytes.Buffer
	enc := bin.NewBinEncoder(&buf)
	require.NoError(t, enc.WriteRustString("seed"))

	r := NewPayloadReader(buf.Bytes())
	assert.Equal(t, "seed", r.BincodeString())
	assert.NoError(t, r.Finish())

	// 长度超出剩余字节
	r = NewPayloadReader([]byte{0xff, 0, 0, 0, 0, 0, 0, 0, 'a'})
	r.BincodeString()
	assert.ErrorIs(t, r.Finish(), ErrDecode)
}

func TestPayloadReader_InvalidUTF8(t *testing.T) {
	r := NewPayloadReader([]byte{2, 0, 0, 0, 0xff, 0xfe})
	assert.Empty(t, r.BorshString())
	assert.ErrorIs(t, r.Finish(), ErrDecode, "borsh 字符串必须是合法 UTF-8")

	r = NewPayloadReader([]byte{2, 0, 0, 0, 'o', 'k'})
	assert.Equal(t, "ok", r.BorshString())
	assert.NoError(t, r.Finish())
}

func TestPayloadReader_FixedString(t *testing.T) {
	name := make([]byte, 8)
	copy(name, "drop")
	r := NewPayloadReader(name)
	assert.Equal(t, "drop", r.FixedString(8), "尾部补零被去掉")
	assert.NoError(t, r.Finish())

	name[0] = 0xff
	r = NewPayloadReader(name)
	assert.Empty(t, r.FixedString(8))
	assert.ErrorIs(t, r.Finish(), ErrDecode, "非法 UTF-8 不能写入 avro string")

	r = NewPayloadReader([]byte{'a', 'b'})
	r.FixedString(8)
	assert.ErrorIs(t, r.Finish(), ErrDecode)
}

func TestPayloadReader_TruncatedAndTrailing(t *testing.T) {
	r := NewPayloadReader([]byte{1, 2, 3})
	r.U64()
	assert.ErrorIs(t, r.Finish(), ErrDecode)

	r = NewPayloadReader([]byte{1, 2})
	r.U8()
	err := r.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing")
}

func TestPayloadReader_Enum(t *testing.T) {
	r := NewPayloadReader([]byte{4})
	r.Enum("curve_type", 3)
	assert.ErrorIs(t, r.Finish(), ErrDecode)

	r = NewPayloadReader([]byte{2, 0, 0, 0})
	assert.Equal(t, uint32(2), r.EnumU32("order_type", 2))
	assert.NoError(t, r.Finish())
}

func TestPayloadReader_SeqLen(t *testing.T) {
	// 2 个 (u64, u64) 元素
	data := []byte{2, 0, 0, 0}
	data = append(data, make([]byte, 32)...)
	r := NewPayloadReader(data)
	assert.Equal(t, 2, r.SeqLen(16))
	r.Bytes(32)
	assert.NoError(t, r.Finish())

	// 声明 1000 个元素但只有 16 字节
	data = []byte{0xE8, 0x03, 0, 0}
	data = append(data, make([]byte, 16)...)
	r = NewPayloadReader(data)
	assert.Equal(t, 0, r.SeqLen(16))
	assert.ErrorIs(t, r.Err(), ErrDecode)
}
