package common

import (
	"github.com/hamba/avro/v2"

	"ix-decoder-sol/internal/logic/core"
)

// Emit 检查账户读取错误后将行包装为单个 TableData；任一账户越界时整批丢弃
func Emit(acc *AccountReader, schema avro.Schema, table string, rows ...any) ([]*core.TableData, error) {
	if err := acc.Err(); err != nil {
		return nil, err
	}
	return []*core.TableData{core.NewTableData(schema, table, rows...)}, nil
}

// Int16 可空 int 字段
func Int16(v int16) *int16 {
	return &v
}

// Int64 可空 long 字段
func Int64(v int64) *int64 {
	return &v
}
