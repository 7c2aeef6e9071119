package common

import (
	"encoding/base64"
	"strconv"

	"github.com/hamba/avro/v2"

	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/types"
)

// PropertyBag 按插入顺序收集属性包条目。
// 值统一转为字符串：整数十进制，地址 base58，字节序列标准 base64。
type PropertyBag struct {
	timestamp int64
	props     []core.Property
}

func NewPropertyBag(timestamp int64) *PropertyBag {
	return &PropertyBag{timestamp: timestamp}
}

func (b *PropertyBag) Add(key, value, parent string) *PropertyBag {
	b.props = append(b.props, core.Property{
		Key:       key,
		Value:     value,
		ParentKey: parent,
		Timestamp: b.timestamp,
	})
	return b
}

func (b *PropertyBag) Uint(key string, v uint64, parent string) *PropertyBag {
	return b.Add(key, strconv.FormatUint(v, 10), parent)
}

func (b *PropertyBag) Int(key string, v int64, parent string) *PropertyBag {
	return b.Add(key, strconv.FormatInt(v, 10), parent)
}

func (b *PropertyBag) Bool(key string, v bool, parent string) *PropertyBag {
	return b.Add(key, strconv.FormatBool(v), parent)
}

func (b *PropertyBag) Pubkey(key string, v types.Pubkey, parent string) *PropertyBag {
	return b.Add(key, v.String(), parent)
}

func (b *PropertyBag) Base64(key string, v []byte, parent string) *PropertyBag {
	return b.Add(key, base64.StdEncoding.EncodeToString(v), parent)
}

// Properties 返回收集到的属性；没有任何条目时返回空切片而不是 nil
func (b *PropertyBag) Properties() []core.Property {
	if b.props == nil {
		return []core.Property{}
	}
	return b.props
}

// BuildInstructionSet 组装属性包形式的解码结果，指令头取自原始指令
func BuildInstructionSet(ix *core.Instruction, name string, bag *PropertyBag) *core.InstructionSet {
	return &core.InstructionSet{
		Function: core.Function{
			TxHash:    ix.TransactionHash,
			Program:   ix.Program,
			Name:      name,
			Timestamp: ix.Timestamp,
		},
		Properties: bag.Properties(),
	}
}

// WrapInstructionSet 将属性包结果包装为单行 TableData
func WrapInstructionSet(schema avro.Schema, table string, set *core.InstructionSet) []*core.TableData {
	return []*core.TableData{core.NewTableData(schema, table, set)}
}
