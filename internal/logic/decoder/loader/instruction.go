package loader

import (
	"ix-decoder-sol/internal/logic/decoder/common"
)

// 来源, https://github.com/solana-labs/solana/blob/master/sdk/program/src/loader_instruction.rs
// bincode 编码：u32 小端标签 + 字段
const (
	InstructionWrite    uint32 = 0
	InstructionFinalize uint32 = 1
)

// Instruction 解码后的 loader 指令
type Instruction interface {
	isLoaderInstruction()
}

// Write 向程序账户的 offset 处写入一段字节
type Write struct {
	Offset uint32
	Bytes  []byte
}

// Finalize 写入完成，标记账户为可执行
type Finalize struct{}

func (*Write) isLoaderInstruction()    {}
func (*Finalize) isLoaderInstruction() {}

// ParseInstruction 解析 loader 指令数据，要求恰好读完
func ParseInstruction(data []byte) (Instruction, error) {
	r := common.NewPayloadReader(data)
	tag := r.U32()
	if err := r.Err(); err != nil {
		return nil, err
	}

	var inst Instruction
	switch tag {
	case InstructionWrite:
		inst = &Write{
			Offset: r.U32(),
			Bytes:  r.BincodeBytes(),
		}
	case InstructionFinalize:
		inst = &Finalize{}
	default:
		return nil, common.UnknownVariant(uint64(tag))
	}

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return inst, nil
}
