package tokenswap

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.TokenSwapProgramStr] = DecodeInstruction
	m[consts.OrcaSwapV1ProgramStr] = DecodeInstruction
	m[consts.OrcaSwapV2ProgramStr] = DecodeInstruction
}

func DecodeInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	switch v := inst.(type) {
	case *InitializeArgs:
		return handleInitialize(ix, v)
	case *SwapArgs:
		return handleSwap(ix, v)
	case *DepositAllTokenTypesArgs:
		return handleDepositAllTokenTypes(ix, v)
	case *WithdrawAllTokenTypesArgs:
		return handleWithdrawAllTokenTypes(ix, v)
	case *DepositSingleTokenTypeExactAmountInArgs, *WithdrawSingleTokenTypeExactAmountOutArgs:
		// 单币种存取无法仅凭本指令确定实际流动的币种，需要 inner instruction，暂不输出
		return []*core.TableData{}, nil
	case *RoutedSwapArgs:
		return handleRoutedSwap(ix, v)
	default:
		return nil, common.DecodeErrorf("unhandled token swap instruction %T", inst)
	}
}
