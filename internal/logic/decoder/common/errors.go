package common

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode 指令数据无法按预期布局解析：截断、多余字节、未知变体、非法枚举值
	ErrDecode = errors.New("decode error")

	// ErrAccountOutOfRange 按位置读取账户时越界
	ErrAccountOutOfRange = errors.New("account out of range")
)

// AccountOutOfRangeError 记录越界的位置与实际账户数
type AccountOutOfRangeError struct {
	Index int
	Len   int
}

func (e *AccountOutOfRangeError) Error() string {
	return fmt.Sprintf("account out of range: index=%d len=%d", e.Index, e.Len)
}

func (e *AccountOutOfRangeError) Is(target error) bool {
	return target == ErrAccountOutOfRange
}

// DecodeErrorf 构造一个可被 errors.Is(err, ErrDecode) 识别的错误
func DecodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

// UnknownVariant 未知的指令标签
func UnknownVariant(tag uint64) error {
	return DecodeErrorf("unknown instruction tag %d", tag)
}
