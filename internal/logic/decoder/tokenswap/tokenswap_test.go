package tokenswap

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

func encode(t *testing.T, tag uint8, args any) []byte {
	body, err := borsh.Serialize(args)
	require.NoError(t, err)
	return append([]byte{tag}, body...)
}

func addresses(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Acc%02d", i)
	}
	return out
}

func swapInstruction(program string, data []byte, addrs []string) *core.Instruction {
	return &core.Instruction{
		Program:         program,
		Data:            data,
		Accounts:        core.AccountRefs(addrs...),
		TransactionHash: "TX",
		Timestamp:       1_700_000_000_000,
	}
}

func decode(t *testing.T, data []byte, addrs []string) *core.TableData {
	tables, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr, data, addrs))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	for _, row := range tables[0].Rows {
		_, err := avro.Marshal(tables[0].Schema, row)
		require.NoError(t, err, "行必须能按注册的 schema 编码")
	}
	return tables[0]
}

func TestDepositAllTokenTypes_SplitsPoolTokens(t *testing.T) {
	args := DepositAllTokenTypesArgs{PoolTokenAmount: 7, MaximumTokenAAmount: 100, MaximumTokenBAmount: 200}
	td := decode(t, encode(t, InstructionDepositAllTokenTypes, args), addresses(10))

	assert.Equal(t, PegFlowsTable, td.TableName)
	require.Len(t, td.Rows, 2)
	a := td.Rows[0].(*PegFlowRow)
	b := td.Rows[1].(*PegFlowRow)

	assert.Equal(t, int64(3), a.PoolTokenAmount)
	assert.Equal(t, int64(4), b.PoolTokenAmount)
	assert.Equal(t, int64(7), a.PoolTokenAmount+b.PoolTokenAmount, "拆分后总量不变")

	assert.Equal(t, "Acc03", a.Source)
	assert.Equal(t, "Acc05", a.Target)
	assert.Equal(t, "Acc04", b.Source)
	assert.Equal(t, "Acc06", b.Target)
	assert.Equal(t, int64(100), a.TokenAmountLimit)
	assert.Equal(t, int64(200), b.TokenAmountLimit)

	for _, r := range []*PegFlowRow{a, b} {
		assert.Nil(t, r.PoolFeeAccount, "deposit 没有 pool fee 账户")
		assert.Equal(t, FlowDeposit, r.FlowType)
		assert.Equal(t, "Acc07", r.PoolMint)
		assert.Equal(t, "Acc08", r.PoolAccount)
		assert.Equal(t, "TX", r.TxHash)
		assert.Equal(t, int64(1_700_000_000_000), r.Timestamp)
	}
	assert.Equal(t, int16(0), a.Leg)
	assert.Equal(t, int16(1), b.Leg)
}

func TestWithdrawAllTokenTypes(t *testing.T) {
	args := WithdrawAllTokenTypesArgs{PoolTokenAmount: 10, MinimumTokenAAmount: 1, MinimumTokenBAmount: 2}
	td := decode(t, encode(t, InstructionWithdrawAllTokenTypes, args), addresses(11))

	require.Len(t, td.Rows, 2)
	a := td.Rows[0].(*PegFlowRow)
	b := td.Rows[1].(*PegFlowRow)
	assert.Equal(t, FlowWithdraw, a.FlowType)
	assert.Equal(t, int64(5), a.PoolTokenAmount)
	assert.Equal(t, int64(5), b.PoolTokenAmount)
	assert.Equal(t, "Acc05", a.Source)
	assert.Equal(t, "Acc07", a.Target)
	assert.Equal(t, "Acc06", b.Source)
	assert.Equal(t, "Acc08", b.Target)
	assert.Equal(t, "Acc03", a.PoolMint)
	assert.Equal(t, "Acc04", a.PoolAccount)
	require.NotNil(t, a.PoolFeeAccount)
	assert.Equal(t, "Acc09", *a.PoolFeeAccount)
}

func TestPegFlow_MissingAccountDiscardsBothRows(t *testing.T) {
	args := WithdrawAllTokenTypesArgs{PoolTokenAmount: 3}
	tables, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr,
		encode(t, InstructionWithdrawAllTokenTypes, args), addresses(9)))
	assert.Nil(t, tables, "任何一行缺账户都不输出")
	var rangeErr *common.AccountOutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 9, rangeErr.Index)
}

func TestSwap_HostFee(t *testing.T) {
	data := encode(t, InstructionSwap, SwapArgs{AmountIn: 1000, MinimumAmountOut: 990})

	row := decode(t, data, addresses(SwapHostFeeIndex)).Rows[0].(*SwapRow)
	assert.Equal(t, SwapNormal, row.Kind)
	assert.Nil(t, row.HostFee)
	assert.Equal(t, "Acc03", row.Source)
	assert.Equal(t, "Acc06", row.Destination)
	assert.Equal(t, int64(1000), row.AmountIn)
	assert.Equal(t, int64(990), row.MinimumAmountOut)

	withFee := decode(t, data, addresses(SwapHostFeeIndex+1)).Rows[0].(*SwapRow)
	require.NotNil(t, withFee.HostFee)
	assert.Equal(t, "Acc10", *withFee.HostFee)
	withFee.HostFee = nil
	assert.Equal(t, row, withFee, "host fee 之外的字段一致")
}

func TestSwap_AmountAboveInt64(t *testing.T) {
	const amount = uint64(math.MaxUint64 - 1)
	td := decode(t, encode(t, InstructionSwap, SwapArgs{AmountIn: amount, MinimumAmountOut: 1}), addresses(SwapHostFeeIndex))
	row := td.Rows[0].(*SwapRow)
	assert.Equal(t, int64(-2), row.AmountIn, "u64 以补码写入 long")

	data, err := avro.Marshal(td.Schema, row)
	require.NoError(t, err)
	var got SwapRow
	require.NoError(t, avro.Unmarshal(td.Schema, data, &got))
	assert.Equal(t, amount, uint64(got.AmountIn), "按无符号解读可还原原值")

	docs := map[string]string{}
	for _, f := range td.Schema.(*avro.RecordSchema).Fields() {
		docs[f.Name()] = f.Doc()
	}
	assert.Contains(t, docs["amount_in"], "unsigned")
	assert.Contains(t, docs["minimum_amount_out"], "unsigned")
	assert.Empty(t, docs["timestamp"], "timestamp 本身是有符号毫秒")
}

func TestRoutedSwap_TwoLegs(t *testing.T) {
	data := encode(t, InstructionRoutedSwap, RoutedSwapArgs{AmountIn: 50, MinimumAmountOut: 45})
	td := decode(t, data, addresses(RoutedSwapHostFeeIndex+1))

	require.Len(t, td.Rows, 2)
	first := td.Rows[0].(*SwapRow)
	second := td.Rows[1].(*SwapRow)
	assert.Equal(t, SwapRouted, first.Kind)
	assert.Equal(t, SwapRouted, second.Kind)
	assert.Equal(t, int16(0), first.Leg)
	assert.Equal(t, int16(1), second.Leg)

	assert.Equal(t, "Acc00", first.Swap)
	assert.Equal(t, "Acc09", second.Swap)
	assert.Equal(t, "Acc02", second.UserTransferAuthority)
	assert.Equal(t, first.Destination, second.Source, "第二跳从中间账户转出")
	assert.Equal(t, "Acc13", second.Destination)
	assert.Equal(t, "Acc15", second.PoolFee)
	assert.Equal(t, "Acc17", *first.HostFee)
	assert.Equal(t, "Acc17", *second.HostFee)

	short := decode(t, data, addresses(RoutedSwapHostFeeIndex)).Rows[1].(*SwapRow)
	assert.Nil(t, short.HostFee)
}

func TestInitialize(t *testing.T) {
	args := InitializeArgs{
		Fees: Fees{
			TradeFeeNumerator:           25,
			TradeFeeDenominator:         10000,
			OwnerTradeFeeNumerator:      5,
			OwnerTradeFeeDenominator:    10000,
			OwnerWithdrawFeeNumerator:   0,
			OwnerWithdrawFeeDenominator: 0,
			HostFeeNumerator:            20,
			HostFeeDenominator:          100,
		},
		CurveType: CurveStable,
	}
	args.CurveParameters[0] = 100
	td := decode(t, encode(t, InstructionInitialize, args), addresses(8))

	assert.Equal(t, InitializationsTable, td.TableName)
	row := td.Rows[0].(*InitializationRow)
	assert.Equal(t, "Acc00", row.Swap)
	assert.Equal(t, "Acc06", row.Destination)
	assert.Equal(t, int64(25), row.TradeFeeNumerator)
	assert.Equal(t, int64(100), row.HostFeeDenominator)
	assert.Equal(t, int16(2), row.CurveType)
	assert.Equal(t, "ZAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", row.CurveParameters)

	bad := encode(t, InstructionInitialize, args)
	bad[1+8*8] = 4
	_, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr, bad, addresses(8)))
	assert.ErrorIs(t, err, common.ErrDecode, "curve_type 只能为 0..3")
}

func TestSingleTokenVariants_EmitNothing(t *testing.T) {
	deposit := encode(t, InstructionDepositSingleTokenTypeExactAmountIn,
		DepositSingleTokenTypeExactAmountInArgs{SourceTokenAmount: 10, MinimumPoolTokenAmount: 1})
	withdraw := encode(t, InstructionWithdrawSingleTokenTypeExactAmountOut,
		WithdrawSingleTokenTypeExactAmountOutArgs{DestinationTokenAmount: 10, MaximumPoolTokenAmount: 20})

	for _, data := range [][]byte{deposit, withdraw} {
		tables, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr, data, addresses(2)))
		require.NoError(t, err)
		assert.NotNil(t, tables)
		assert.Empty(t, tables, "单币种存取解析成功但不输出行")
	}

	_, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr, deposit[:9], nil))
	assert.ErrorIs(t, err, common.ErrDecode, "截断的单币种指令仍然是解析错误")
}

func TestRegisterHandlers_AllForks(t *testing.T) {
	m := make(map[string]common.InstructionHandler)
	RegisterHandlers(m)
	require.Len(t, m, 3)

	data := encode(t, InstructionSwap, SwapArgs{AmountIn: 1, MinimumAmountOut: 1})
	for _, program := range []string{consts.TokenSwapProgramStr, consts.OrcaSwapV1ProgramStr, consts.OrcaSwapV2ProgramStr} {
		tables, err := m[program](swapInstruction(program, data, addresses(10)))
		require.NoError(t, err, program)
		assert.Equal(t, SwapsTable, tables[0].TableName)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"空数据":     {},
		"未知标签":    {7},
		"swap 截断": {InstructionSwap, 1, 0, 0, 0, 0, 0, 0, 0},
		"多余字节":    append(encode(t, InstructionRoutedSwap, RoutedSwapArgs{}), 0),
		"初始化截断":   {InstructionInitialize, 0, 0, 0},
	}
	for name, data := range cases {
		tables, err := DecodeInstruction(swapInstruction(consts.TokenSwapProgramStr, data, addresses(20)))
		assert.Nil(t, tables, name)
		assert.Truef(t, errors.Is(err, common.ErrDecode), "%s 应返回 ErrDecode, got %v", name, err)
	}
}
