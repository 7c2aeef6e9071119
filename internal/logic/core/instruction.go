package core

import (
	"ix-decoder-sol/internal/types"
)

// TxContext 表示交易所属区块的上下文信息
type TxContext struct {
	BlockTime  int64      // 区块时间戳（Unix 秒）
	Slot       uint64     // 当前 Slot
	ParentSlot uint64     // 父 Slot（用于漏块检测）
	BlockHash  types.Hash // 区块哈希
}

// TimestampMs 区块时间换算为毫秒，写入输出行的 timestamp 字段
func (c *TxContext) TimestampMs() int64 {
	return c.BlockTime * 1000
}

// AccountRef 指令中的一个账户引用，Index 与其在 Accounts 中的位置一致
type AccountRef struct {
	Index          int
	AccountAddress string // base58
}

// Instruction 已展平的一条主指令或 inner 指令，是解码器的唯一输入。
// 解码过程中只读，不会被修改。
type Instruction struct {
	Program         string       // 程序地址（base58）
	Data            []byte       // 指令原始数据
	Accounts        []AccountRef // 按声明顺序排列
	TxInstructionID int32        // 交易内指令序号
	TransactionHash string       // base58 签名
	ParentIndex     *int32       // inner 指令所属主指令序号，主指令为 nil
	Timestamp       int64        // 毫秒
}

// IsInner 是否为 CPI 产生的 inner 指令
func (ix *Instruction) IsInner() bool {
	return ix.ParentIndex != nil
}

// AccountRefs 由地址列表构造连续编号的 AccountRef，测试与适配层共用
func AccountRefs(addresses ...string) []AccountRef {
	refs := make([]AccountRef, len(addresses))
	for i, addr := range addresses {
		refs[i] = AccountRef{Index: i, AccountAddress: addr}
	}
	return refs
}
