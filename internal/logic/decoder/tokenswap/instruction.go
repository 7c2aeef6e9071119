package tokenswap

import (
	"ix-decoder-sol/internal/logic/decoder/common"
)

// 来源, https://github.com/solana-labs/solana-program-library/blob/master/token-swap/program/src/instruction.rs
// 1 字节标签 + 小端定长字段
const (
	InstructionInitialize uint8 = iota
	InstructionSwap
	InstructionDepositAllTokenTypes
	InstructionWithdrawAllTokenTypes
	InstructionDepositSingleTokenTypeExactAmountIn
	InstructionWithdrawSingleTokenTypeExactAmountOut
	InstructionRoutedSwap
)

// CurveType
const (
	CurveConstantProduct uint8 = 0
	CurveConstantPrice   uint8 = 1
	CurveStable          uint8 = 2
	CurveOffset          uint8 = 3
)

// FlowType peg flow 方向
const (
	FlowDeposit  int16 = 0
	FlowWithdraw int16 = 1
)

// SwapKind
const (
	SwapNormal int16 = 0
	SwapRouted int16 = 1
)

const CurveParametersSize = 32

type Instruction interface {
	isTokenSwapInstruction()
}

type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64
}

type InitializeArgs struct {
	Fees            Fees
	CurveType       uint8
	CurveParameters [CurveParametersSize]byte
}

type SwapArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

type DepositAllTokenTypesArgs struct {
	PoolTokenAmount     uint64
	MaximumTokenAAmount uint64
	MaximumTokenBAmount uint64
}

type WithdrawAllTokenTypesArgs struct {
	PoolTokenAmount     uint64
	MinimumTokenAAmount uint64
	MinimumTokenBAmount uint64
}

type DepositSingleTokenTypeExactAmountInArgs struct {
	SourceTokenAmount      uint64
	MinimumPoolTokenAmount uint64
}

type WithdrawSingleTokenTypeExactAmountOutArgs struct {
	DestinationTokenAmount uint64
	MaximumPoolTokenAmount uint64
}

type RoutedSwapArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

func (*InitializeArgs) isTokenSwapInstruction()                            {}
func (*SwapArgs) isTokenSwapInstruction()                                  {}
func (*DepositAllTokenTypesArgs) isTokenSwapInstruction()                  {}
func (*WithdrawAllTokenTypesArgs) isTokenSwapInstruction()                 {}
func (*DepositSingleTokenTypeExactAmountInArgs) isTokenSwapInstruction()   {}
func (*WithdrawSingleTokenTypeExactAmountOutArgs) isTokenSwapInstruction() {}
func (*RoutedSwapArgs) isTokenSwapInstruction()                            {}

// ParseInstruction 解析 token swap 指令（SPL Token Swap 与 Orca fork 共用）
func ParseInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, common.DecodeErrorf("empty token swap instruction")
	}
	tag, args := data[0], data[1:]

	switch tag {
	case InstructionInitialize:
		return parseInitialize(args)
	case InstructionSwap:
		return decodeFixed[SwapArgs](args)
	case InstructionDepositAllTokenTypes:
		return decodeFixed[DepositAllTokenTypesArgs](args)
	case InstructionWithdrawAllTokenTypes:
		return decodeFixed[WithdrawAllTokenTypesArgs](args)
	case InstructionDepositSingleTokenTypeExactAmountIn:
		return decodeFixed[DepositSingleTokenTypeExactAmountInArgs](args)
	case InstructionWithdrawSingleTokenTypeExactAmountOut:
		return decodeFixed[WithdrawSingleTokenTypeExactAmountOutArgs](args)
	case InstructionRoutedSwap:
		return decodeFixed[RoutedSwapArgs](args)
	default:
		return nil, common.UnknownVariant(uint64(tag))
	}
}

func decodeFixed[T any](data []byte) (Instruction, error) {
	v, err := common.DecodeBorshFixed[T](data)
	if err != nil {
		return nil, err
	}
	inst, ok := any(&v).(Instruction)
	if !ok {
		return nil, common.DecodeErrorf("%T is not a token swap instruction", v)
	}
	return inst, nil
}

// parseInitialize curve_type 需要校验取值，按顺序读取
func parseInitialize(data []byte) (Instruction, error) {
	r := common.NewPayloadReader(data)
	v := &InitializeArgs{
		Fees: Fees{
			TradeFeeNumerator:           r.U64(),
			TradeFeeDenominator:         r.U64(),
			OwnerTradeFeeNumerator:      r.U64(),
			OwnerTradeFeeDenominator:    r.U64(),
			OwnerWithdrawFeeNumerator:   r.U64(),
			OwnerWithdrawFeeDenominator: r.U64(),
			HostFeeNumerator:            r.U64(),
			HostFeeDenominator:          r.U64(),
		},
		CurveType: r.Enum("curve_type", CurveOffset),
	}
	copy(v.CurveParameters[:], r.Bytes(CurveParametersSize))
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}
