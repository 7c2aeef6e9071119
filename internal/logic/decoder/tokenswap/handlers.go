package tokenswap

import (
	"encoding/base64"

	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

// host fee 账户位于末尾，可选
const (
	SwapHostFeeIndex       = 10
	RoutedSwapHostFeeIndex = 17
)

// Initialize 账户布局:
//
//	#0 - swap
//	#1 - swap authority
//	#2 - token a
//	#3 - token b
//	#4 - pool mint
//	#5 - pool fee account
//	#6 - pool token destination
func handleInitialize(ix *core.Instruction, args *InitializeArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	fees := args.Fees
	row := &InitializationRow{
		TxHash:                      ix.TransactionHash,
		Swap:                        acc.At(0),
		Authority:                   acc.At(1),
		TokenA:                      acc.At(2),
		TokenB:                      acc.At(3),
		PoolMint:                    acc.At(4),
		FeeAccount:                  acc.At(5),
		Destination:                 acc.At(6),
		TradeFeeNumerator:           int64(fees.TradeFeeNumerator),
		TradeFeeDenominator:         int64(fees.TradeFeeDenominator),
		OwnerTradeFeeNumerator:      int64(fees.OwnerTradeFeeNumerator),
		OwnerTradeFeeDenominator:    int64(fees.OwnerTradeFeeDenominator),
		OwnerWithdrawFeeNumerator:   int64(fees.OwnerWithdrawFeeNumerator),
		OwnerWithdrawFeeDenominator: int64(fees.OwnerWithdrawFeeDenominator),
		HostFeeNumerator:            int64(fees.HostFeeNumerator),
		HostFeeDenominator:          int64(fees.HostFeeDenominator),
		CurveType:                   int16(args.CurveType),
		CurveParameters:             base64.StdEncoding.EncodeToString(args.CurveParameters[:]),
		Timestamp:                   ix.Timestamp,
	}
	return common.Emit(acc, initializationSchema, InitializationsTable, row)
}

// Swap 账户布局:
//
//	#0 - swap
//	#1 - swap authority
//	#2 - user transfer authority
//	#3 - source
//	#4 - swap source
//	#5 - swap destination
//	#6 - destination
//	#7 - pool mint
//	#8 - pool fee account
//	#9 - token program
//	#10 - host fee account (可选)
func handleSwap(ix *core.Instruction, args *SwapArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &SwapRow{
		TxHash:                ix.TransactionHash,
		Kind:                  SwapNormal,
		Leg:                   0,
		Swap:                  acc.At(0),
		Authority:             acc.At(1),
		UserTransferAuthority: acc.At(2),
		Source:                acc.At(3),
		SwapSource:            acc.At(4),
		SwapDestination:       acc.At(5),
		Destination:           acc.At(6),
		PoolMint:              acc.At(7),
		PoolFee:               acc.At(8),
		HostFee:               acc.Trailing(SwapHostFeeIndex),
		AmountIn:              int64(args.AmountIn),
		MinimumAmountOut:      int64(args.MinimumAmountOut),
		Timestamp:             ix.Timestamp,
	}
	return common.Emit(acc, swapSchema, SwapsTable, row)
}

// RoutedSwap 账户布局，两个池子共用 user transfer authority，
// 第一跳的 destination 即第二跳的 source:
//
//	#0 - swap (leg 0)
//	#1 - swap authority (leg 0)
//	#2 - user transfer authority
//	#3 - source
//	#4 - swap source (leg 0)
//	#5 - swap destination (leg 0)
//	#6 - intermediate token account
//	#7 - pool mint (leg 0)
//	#8 - pool fee account (leg 0)
//	#9 - swap (leg 1)
//	#10 - swap authority (leg 1)
//	#11 - swap source (leg 1)
//	#12 - swap destination (leg 1)
//	#13 - destination
//	#14 - pool mint (leg 1)
//	#15 - pool fee account (leg 1)
//	#16 - token program
//	#17 - host fee account (可选)
func handleRoutedSwap(ix *core.Instruction, args *RoutedSwapArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	hostFee := acc.Trailing(RoutedSwapHostFeeIndex)
	first := &SwapRow{
		TxHash:                ix.TransactionHash,
		Kind:                  SwapRouted,
		Leg:                   0,
		Swap:                  acc.At(0),
		Authority:             acc.At(1),
		UserTransferAuthority: acc.At(2),
		Source:                acc.At(3),
		SwapSource:            acc.At(4),
		SwapDestination:       acc.At(5),
		Destination:           acc.At(6),
		PoolMint:              acc.At(7),
		PoolFee:               acc.At(8),
		HostFee:               hostFee,
		AmountIn:              int64(args.AmountIn),
		MinimumAmountOut:      int64(args.MinimumAmountOut),
		Timestamp:             ix.Timestamp,
	}
	second := &SwapRow{
		TxHash:                ix.TransactionHash,
		Kind:                  SwapRouted,
		Leg:                   1,
		Swap:                  acc.At(9),
		Authority:             acc.At(10),
		UserTransferAuthority: first.UserTransferAuthority,
		Source:                first.Destination,
		SwapSource:            acc.At(11),
		SwapDestination:       acc.At(12),
		Destination:           acc.At(13),
		PoolMint:              acc.At(14),
		PoolFee:               acc.At(15),
		HostFee:               hostFee,
		AmountIn:              int64(args.AmountIn),
		MinimumAmountOut:      int64(args.MinimumAmountOut),
		Timestamp:             ix.Timestamp,
	}
	return common.Emit(acc, swapSchema, SwapsTable, first, second)
}

// DepositAllTokenTypes 账户布局:
//
//	#0 - swap
//	#1 - swap authority
//	#2 - user transfer authority
//	#3 - token a source
//	#4 - token b source
//	#5 - swap token a
//	#6 - swap token b
//	#7 - pool mint
//	#8 - pool token destination
func handleDepositAllTokenTypes(ix *core.Instruction, args *DepositAllTokenTypesArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	amountA, amountB := common.SplitPair(args.PoolTokenAmount)
	base := PegFlowRow{
		TxHash:                ix.TransactionHash,
		FlowType:              FlowDeposit,
		Swap:                  acc.At(0),
		Authority:             acc.At(1),
		UserTransferAuthority: acc.At(2),
		PoolMint:              acc.At(7),
		PoolAccount:           acc.At(8),
		Timestamp:             ix.Timestamp,
	}
	return common.Emit(acc, pegFlowSchema, PegFlowsTable,
		base.leg(0, acc.At(3), acc.At(5), amountA, args.MaximumTokenAAmount),
		base.leg(1, acc.At(4), acc.At(6), amountB, args.MaximumTokenBAmount),
	)
}

// WithdrawAllTokenTypes 账户布局:
//
//	#0 - swap
//	#1 - swap authority
//	#2 - user transfer authority
//	#3 - pool mint
//	#4 - pool token source
//	#5 - swap token a
//	#6 - swap token b
//	#7 - token a destination
//	#8 - token b destination
//	#9 - pool fee account
func handleWithdrawAllTokenTypes(ix *core.Instruction, args *WithdrawAllTokenTypesArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	amountA, amountB := common.SplitPair(args.PoolTokenAmount)
	fee := acc.At(9)
	base := PegFlowRow{
		TxHash:                ix.TransactionHash,
		FlowType:              FlowWithdraw,
		Swap:                  acc.At(0),
		Authority:             acc.At(1),
		UserTransferAuthority: acc.At(2),
		PoolMint:              acc.At(3),
		PoolAccount:           acc.At(4),
		PoolFeeAccount:        &fee,
		Timestamp:             ix.Timestamp,
	}
	return common.Emit(acc, pegFlowSchema, PegFlowsTable,
		base.leg(0, acc.At(5), acc.At(7), amountA, args.MinimumTokenAAmount),
		base.leg(1, acc.At(6), acc.At(8), amountB, args.MinimumTokenBAmount),
	)
}

func (r PegFlowRow) leg(leg int16, source, target string, poolTokens, limit uint64) *PegFlowRow {
	r.Leg = leg
	r.Source = source
	r.Target = target
	r.PoolTokenAmount = int64(poolTokens)
	r.TokenAmountLimit = int64(limit)
	return &r
}
