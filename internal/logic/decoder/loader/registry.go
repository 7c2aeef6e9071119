package loader

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/schema"
)

const TableName = "loader_instructions"

var instructionSetSchema = schema.MustRegisterParsed(TableName, schema.InstructionSet)

// RegisterHandlers 注册 BPF Loader（deprecated 与 v2 共用）
func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.BPFLoaderDeprecatedProgramStr] = handleInstruction
	m[consts.BPFLoaderProgramStr] = handleInstruction
}

func handleInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	set, err := DecodeInstructionSet(ix)
	if err != nil {
		return nil, err
	}
	return common.WrapInstructionSet(instructionSetSchema, TableName, set), nil
}

// DecodeInstructionSet 属性包形式的解码入口
func DecodeInstructionSet(ix *core.Instruction) (*core.InstructionSet, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	bag := common.NewPropertyBag(ix.Timestamp)
	switch v := inst.(type) {
	case *Write:
		bag.Uint("offset", uint64(v.Offset), "").
			Base64("bytes", v.Bytes, "info")
		return common.BuildInstructionSet(ix, "write", bag), nil

	case *Finalize:
		return common.BuildInstructionSet(ix, "finalize", bag), nil

	default:
		return nil, common.DecodeErrorf("unhandled loader instruction %T", inst)
	}
}
