package common

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/near/borsh-go"

	"ix-decoder-sol/internal/types"
)

// DecodeBorshFixed 解析不含 Option / Vec / String 的定长 borsh 参数。
// 数据长度必须与结构体编码长度完全一致，截断或多余字节都视为错误。
func DecodeBorshFixed[T any](data []byte) (T, error) {
	var out T
	zero, err := borsh.Serialize(out)
	if err != nil {
		return out, fmt.Errorf("borsh layout of %T: %w", out, err)
	}
	if len(data) != len(zero) {
		return out, DecodeErrorf("%T expects %d bytes, got %d", out, len(zero), len(data))
	}
	if err := borsh.Deserialize(&out, data); err != nil {
		return out, DecodeErrorf("%T: %v", out, err)
	}
	return out, nil
}

// PayloadReader 顺序读取小端编码的指令参数（borsh / bincode / packed 布局共用）。
// 与 AccountReader 一样采用粘滞错误，调用方最后通过 Finish 统一检查。
type PayloadReader struct {
	dec *bin.Decoder
	err error
}

func NewPayloadReader(data []byte) *PayloadReader {
	return &PayloadReader{dec: bin.NewBorshDecoder(data)}
}

func (r *PayloadReader) fail(what string, err error) {
	if r.err == nil {
		r.err = DecodeErrorf("read %s at offset %d: %v", what, r.dec.Position(), err)
	}
}

func (r *PayloadReader) U8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	if err != nil {
		r.fail("u8", err)
	}
	return v
}

func (r *PayloadReader) U16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint16(bin.LE)
	if err != nil {
		r.fail("u16", err)
	}
	return v
}

func (r *PayloadReader) U32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint32(bin.LE)
	if err != nil {
		r.fail("u32", err)
	}
	return v
}

func (r *PayloadReader) U64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	if err != nil {
		r.fail("u64", err)
	}
	return v
}

func (r *PayloadReader) I64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(bin.LE)
	if err != nil {
		r.fail("i64", err)
	}
	return v
}

// U128 以十进制字符串返回
func (r *PayloadReader) U128() string {
	if r.err != nil {
		return ""
	}
	v, err := r.dec.ReadUint128(bin.LE)
	if err != nil {
		r.fail("u128", err)
		return ""
	}
	return v.DecimalString()
}

// Bool 只接受 0 / 1
func (r *PayloadReader) Bool() bool {
	b := r.U8()
	if r.err == nil && b > 1 {
		r.fail("bool", fmt.Errorf("invalid bool byte %d", b))
	}
	return b == 1
}

func (r *PayloadReader) Bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	v, err := r.dec.ReadNBytes(n)
	if err != nil {
		r.fail(fmt.Sprintf("[%d]byte", n), err)
		return nil
	}
	out := make([]byte, n)
	copy(out, v)
	return out
}

func (r *PayloadReader) Pubkey() types.Pubkey {
	var p types.Pubkey
	copy(p[:], r.Bytes(types.PubkeySize))
	return p
}

// Enum 读取 u8 枚举标签，超过 maxTag 视为非法
func (r *PayloadReader) Enum(name string, maxTag uint8) uint8 {
	v := r.U8()
	if r.err == nil && v > maxTag {
		r.fail(name, fmt.Errorf("invalid variant %d", v))
	}
	return v
}

// EnumU32 读取 u32 枚举标签（bincode / packed 布局）
func (r *PayloadReader) EnumU32(name string, maxTag uint32) uint32 {
	v := r.U32()
	if r.err == nil && v > maxTag {
		r.fail(name, fmt.Errorf("invalid variant %d", v))
	}
	return v
}

// Option 读取 Option 标签，只接受 0 / 1
func (r *PayloadReader) Option() bool {
	if r.err != nil {
		return false
	}
	b, err := r.dec.ReadUint8()
	if err != nil {
		r.fail("option tag", err)
		return false
	}
	if b > 1 {
		r.fail("option tag", fmt.Errorf("invalid option tag %d", b))
		return false
	}
	return b == 1
}

func (r *PayloadReader) OptionU8() *uint8 {
	if !r.Option() {
		return nil
	}
	v := r.U8()
	return &v
}

func (r *PayloadReader) OptionU64() *uint64 {
	if !r.Option() {
		return nil
	}
	v := r.U64()
	return &v
}

func (r *PayloadReader) OptionI64() *int64 {
	if !r.Option() {
		return nil
	}
	v := r.I64()
	return &v
}

func (r *PayloadReader) OptionPubkey() *types.Pubkey {
	if !r.Option() {
		return nil
	}
	v := r.Pubkey()
	return &v
}

// BorshString u32 长度前缀的 UTF-8 字符串
func (r *PayloadReader) BorshString() string {
	n := r.U32()
	return r.utf8(uint64(n))
}

func (r *PayloadReader) OptionBorshString() *string {
	if !r.Option() {
		return nil
	}
	v := r.BorshString()
	return &v
}

// BincodeString u64 长度前缀的 UTF-8 字符串
func (r *PayloadReader) BincodeString() string {
	n := r.U64()
	return r.utf8(n)
}

// BincodeBytes u64 长度前缀的字节序列
func (r *PayloadReader) BincodeBytes() []byte {
	n := r.U64()
	if r.err != nil {
		return nil
	}
	if n > uint64(r.dec.Remaining()) {
		r.fail("bytes", fmt.Errorf("length %d exceeds remaining %d", n, r.dec.Remaining()))
		return nil
	}
	return r.Bytes(int(n))
}

func (r *PayloadReader) utf8(n uint64) string {
	if r.err != nil {
		return ""
	}
	if n > uint64(r.dec.Remaining()) {
		r.fail("string", fmt.Errorf("length %d exceeds remaining %d", n, r.dec.Remaining()))
		return ""
	}
	b := r.Bytes(int(n))
	if r.err == nil && !utf8.Valid(b) {
		r.fail("string", fmt.Errorf("invalid utf-8"))
		return ""
	}
	return string(b)
}

// FixedString 定长 n 字节、尾部补零的 UTF-8 字符串
func (r *PayloadReader) FixedString(n int) string {
	b := bytes.TrimRight(r.Bytes(n), "\x00")
	if r.err == nil && !utf8.Valid(b) {
		r.fail("string", fmt.Errorf("invalid utf-8"))
		return ""
	}
	return string(b)
}

// SeqLen 读取 borsh Vec 的 u32 元素个数，并按最小元素长度校验剩余字节
func (r *PayloadReader) SeqLen(minElemSize int) int {
	n := r.U32()
	if r.err != nil {
		return 0
	}
	if uint64(n)*uint64(minElemSize) > uint64(r.dec.Remaining()) {
		r.fail("vec", fmt.Errorf("%d elements exceed remaining %d bytes", n, r.dec.Remaining()))
		return 0
	}
	return int(n)
}

// Remaining 剩余未读字节数
func (r *PayloadReader) Remaining() int {
	return r.dec.Remaining()
}

func (r *PayloadReader) Err() error {
	return r.err
}

// Finish 返回读取过程中的错误，并要求数据恰好读完
func (r *PayloadReader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if n := r.dec.Remaining(); n > 0 {
		return DecodeErrorf("%d trailing bytes", n)
	}
	return nil
}
