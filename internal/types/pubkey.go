package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const PubkeySize = 32

// Pubkey 链上地址的原始 32 字节表示，输出行中统一用 base58 字符串
type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// StringPtr 便于填充可空的 avro 字段
func (p Pubkey) StringPtr() *string {
	s := p.String()
	return &s
}

// PubkeyFromBytes 从 32 字节切片构造 Pubkey，长度不符时返回 error
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != PubkeySize {
		return p, fmt.Errorf("invalid pubkey length: got %d, want %d", len(b), PubkeySize)
	}
	copy(p[:], b)
	return p, nil
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	p, err := PubkeyFromBytes(data)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w, input=%q", err, s)
	}
	return p, nil
}

// PubkeyFromBase58 仅用于常量初始化，非法输入直接 panic
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
