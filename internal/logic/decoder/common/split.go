package common

// SplitPair 将池子份额拆分到一对行上：前一行 floor(n/2)，后一行补足余数
func SplitPair(n uint64) (uint64, uint64) {
	first := n / 2
	return first, n - first
}

// Int64Ptr 可空 long 字段的辅助转换
func Int64Ptr[T ~int64 | ~uint64 | ~uint32 | ~uint16 | ~uint8](v *T) *int64 {
	if v == nil {
		return nil
	}
	out := int64(*v)
	return &out
}

// Int16Ptr 可空 int 字段（枚举 / 小整数）的辅助转换
func Int16Ptr[T ~uint8 | ~int16](v *T) *int16 {
	if v == nil {
		return nil
	}
	out := int16(*v)
	return &out
}
