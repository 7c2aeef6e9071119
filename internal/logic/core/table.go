package core

import (
	"github.com/hamba/avro/v2"
)

// TableData 一次解码输出中属于同一张表的行集合。
// Rows 中的每个元素都是可按 Schema 直接 avro 编码的结构体指针。
type TableData struct {
	Schema    avro.Schema
	TableName string
	Rows      []any
}

func NewTableData(schema avro.Schema, tableName string, rows ...any) *TableData {
	return &TableData{
		Schema:    schema,
		TableName: tableName,
		Rows:      rows,
	}
}

// RowCount 所有表的总行数
func RowCount(tables []*TableData) int {
	n := 0
	for _, t := range tables {
		n += len(t.Rows)
	}
	return n
}

// Function 属性包形式的指令头
type Function struct {
	TxHash    string `avro:"tx_hash"`
	Program   string `avro:"program"`
	Name      string `avro:"name"`
	Timestamp int64  `avro:"timestamp"`
}

// Property 属性包中的一项，ParentKey 为空表示顶层字段
type Property struct {
	Key       string `avro:"key"`
	Value     string `avro:"value"`
	ParentKey string `avro:"parent_key"`
	Timestamp int64  `avro:"timestamp"`
}

// InstructionSet 属性包形式的解码结果：指令头 + 有序属性列表
type InstructionSet struct {
	Function   Function   `avro:"function"`
	Properties []Property `avro:"properties"`
}
