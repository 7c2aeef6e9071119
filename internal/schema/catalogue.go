// Package schema 维护表名到 avro schema 的只读目录。
// 所有 schema 都在包初始化阶段注册并解析一次，非法字面量直接 panic。
//
// avro 没有无符号整型：链上 u64 字段按位转为 long 写入（大于 MaxInt64 的值表现为负数），
// 这类字段在 schema 中带 doc "u64 stored as two's complement long; read as unsigned"，
// 消费方需按 uint64 解读。
package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hamba/avro/v2"
)

var (
	mu      sync.RWMutex
	catalog = make(map[string]avro.Schema)
)

// MustParse 解析 schema 字面量，失败时 panic（属于程序缺陷，不应在运行期出现）
func MustParse(literal string) avro.Schema {
	s, err := avro.Parse(literal)
	if err != nil {
		panic(fmt.Errorf("invalid avro schema: %w", err))
	}
	return s
}

// MustRegister 解析并注册一张表的 schema，同名表重复注册会 panic
func MustRegister(table, literal string) avro.Schema {
	return MustRegisterParsed(table, MustParse(literal))
}

// MustRegisterParsed 注册已解析的 schema，多张表共用同一 schema 时使用
func MustRegisterParsed(table string, s avro.Schema) avro.Schema {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := catalog[table]; ok {
		panic(fmt.Errorf("avro schema for table %q registered twice", table))
	}
	catalog[table] = s
	return s
}

// Lookup 按表名查询 schema
func Lookup(table string) (avro.Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := catalog[table]
	return s, ok
}

// Tables 返回已注册的全部表名（升序），用于创建 Kafka topic
func Tables() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
