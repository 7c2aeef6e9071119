package common

import (
	"ix-decoder-sol/internal/logic/core"
)

// AccountReader 按位置读取指令账户。
// 第一次越界后记录错误，后续读取全部返回空值，handler 在组装完行之后统一检查 Err()。
type AccountReader struct {
	accounts []core.AccountRef
	err      error
}

func NewAccountReader(ix *core.Instruction) *AccountReader {
	return &AccountReader{accounts: ix.Accounts}
}

func (r *AccountReader) Len() int {
	return len(r.accounts)
}

// At 读取第 i 个账户地址
func (r *AccountReader) At(i int) string {
	if r.err != nil {
		return ""
	}
	if i < 0 || i >= len(r.accounts) {
		r.err = &AccountOutOfRangeError{Index: i, Len: len(r.accounts)}
		return ""
	}
	return r.accounts[i].AccountAddress
}

// Optional 仅当账户数 > threshold 时读取第 i 个账户，否则返回 nil
func (r *AccountReader) Optional(i, threshold int) *string {
	if !r.Extended(threshold) {
		return nil
	}
	addr := r.At(i)
	if r.err != nil {
		return nil
	}
	return &addr
}

// Trailing 末尾可选账户：存在即读取
func (r *AccountReader) Trailing(i int) *string {
	return r.Optional(i, i)
}

// Extended 账户数是否超过阈值（即是否为带可选账户的布局）
func (r *AccountReader) Extended(threshold int) bool {
	return len(r.accounts) > threshold
}

// Shift 可选账户之后的位置偏移：扩展布局为 1，否则为 0
func (r *AccountReader) Shift(threshold int) int {
	if r.Extended(threshold) {
		return 1
	}
	return 0
}

func (r *AccountReader) Err() error {
	return r.err
}
