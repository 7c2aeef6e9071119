package market

import (
	"bytes"
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

type payload struct {
	t   *testing.T
	buf bytes.Buffer
	enc *bin.Encoder
}

func newPayload(t *testing.T, tag uint32) *payload {
	p := &payload{t: t}
	p.enc = bin.NewBinEncoder(&p.buf)
	p.u8(MarketInstructionVersion)
	p.u32(tag)
	return p
}

func (p *payload) u8(v uint8) *payload {
	require.NoError(p.t, p.enc.WriteUint8(v))
	return p
}

func (p *payload) u16(v uint16) *payload {
	require.NoError(p.t, p.enc.WriteUint16(v, bin.LE))
	return p
}

func (p *payload) u32(v uint32) *payload {
	require.NoError(p.t, p.enc.WriteUint32(v, bin.LE))
	return p
}

func (p *payload) u64(v uint64) *payload {
	require.NoError(p.t, p.enc.WriteUint64(v, bin.LE))
	return p
}

func (p *payload) i64(v int64) *payload {
	require.NoError(p.t, p.enc.WriteInt64(v, bin.LE))
	return p
}

func (p *payload) u128(lo uint64) *payload {
	require.NoError(p.t, p.enc.WriteUint128(bin.Uint128{Lo: lo}, bin.LE))
	return p
}

func (p *payload) raw(b []byte) *payload {
	require.NoError(p.t, p.enc.WriteBytes(b, false))
	return p
}

func (p *payload) bytes() []byte {
	return p.buf.Bytes()
}

func marketInstruction(data []byte) *core.Instruction {
	return &core.Instruction{
		Program:         consts.SerumDexV3ProgramStr,
		Data:            data,
		Accounts:        core.AccountRefs("Market", "OpenOrders", "RequestQueue"),
		TransactionHash: "TX",
		Timestamp:       99,
	}
}

func propertyMap(props []core.Property) map[string]string {
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.Key] = p.Value
	}
	return m
}

// 场景：CancelOrder { side=Ask, order_id=42, owner_slot=3 }
func TestDecode_CancelOrder(t *testing.T) {
	data := newPayload(t, InstructionCancelOrder).
		u32(SideAsk).u128(42).raw(make([]byte, 32)).u8(3).
		bytes()

	set, err := DecodeInstructionSet(marketInstruction(data))
	require.NoError(t, err)
	assert.Equal(t, "cancel-order", set.Function.Name)

	props := propertyMap(set.Properties)
	assert.Equal(t, "1", props["side"])
	assert.Equal(t, "42", props["order_id"])
	assert.Equal(t, "3", props["owner_slot"])
	assert.Equal(t, "11111111111111111111111111111111", props["owner"], "全零 owner 编码为系统地址")
	for _, p := range set.Properties {
		assert.Equal(t, int64(99), p.Timestamp)
	}
}

func TestDecode_NewOrderV3(t *testing.T) {
	build := func() *payload {
		return newPayload(t, InstructionNewOrderV3).
			u32(SideBid).u64(100).u64(5).u64(500).
			u32(SelfTradeCancelProvide).u32(OrderTypePostOnly).u64(77).u16(10)
	}

	set, err := DecodeInstructionSet(marketInstruction(build().bytes()))
	require.NoError(t, err)
	props := propertyMap(set.Properties)
	assert.Equal(t, "new-order-v3", set.Function.Name)
	assert.Equal(t, "2", props["order_type"])
	assert.Equal(t, "1", props["self_trade_behavior"])
	assert.Equal(t, "77", props["client_order_id"])
	_, hasTs := props["max_ts"]
	assert.False(t, hasTs, "旧格式不带 max_ts")

	set, err = DecodeInstructionSet(marketInstruction(build().i64(1_700_000_000).bytes()))
	require.NoError(t, err)
	assert.Equal(t, "1700000000", propertyMap(set.Properties)["max_ts"])

	_, err = DecodeInstructionSet(marketInstruction(build().u32(1).bytes()))
	assert.ErrorIs(t, err, common.ErrDecode, "max_ts 不完整")
}

func TestDecode_InitializeMarket(t *testing.T) {
	data := newPayload(t, InstructionInitializeMarket).
		u64(100).u64(10).u16(22).u64(3).u64(5).
		bytes()

	set, err := DecodeInstructionSet(marketInstruction(data))
	require.NoError(t, err)
	assert.Equal(t, "initialize-market", set.Function.Name)
	require.Len(t, set.Properties, 5)
	assert.Equal(t, core.Property{Key: "fee_rate_bps", Value: "22", ParentKey: "", Timestamp: 99}, set.Properties[2])
}

func TestDecode_CancelOrdersByClientIDs(t *testing.T) {
	p := newPayload(t, InstructionCancelOrdersByClientIDs).u64(5).u64(6)
	for i := 2; i < MaxClientIDs; i++ {
		p.u64(0)
	}

	set, err := DecodeInstructionSet(marketInstruction(p.bytes()))
	require.NoError(t, err)
	assert.Equal(t, []core.Property{
		{Key: "client_id", Value: "5", ParentKey: "client_ids", Timestamp: 99},
		{Key: "client_id", Value: "6", ParentKey: "client_ids", Timestamp: 99},
	}, set.Properties)
}

func TestDecode_LimitVariants(t *testing.T) {
	names := map[uint32]string{
		InstructionMatchOrders:               "match-orders",
		InstructionConsumeEvents:             "consume-events",
		InstructionPrune:                     "prune",
		InstructionConsumeEventsPermissioned: "consume-events-permissioned",
	}
	for tag, name := range names {
		set, err := DecodeInstructionSet(marketInstruction(newPayload(t, tag).u16(8).bytes()))
		require.NoError(t, err, name)
		assert.Equal(t, name, set.Function.Name)
		assert.Equal(t, "8", propertyMap(set.Properties)["limit"])
	}
}

func TestDecode_Malformed(t *testing.T) {
	badVersion := newPayload(t, InstructionSettleFunds).bytes()
	badVersion[0] = 1

	cases := map[string][]byte{
		"空数据":           {},
		"版本错误":          badVersion,
		"未知标签":          newPayload(t, 200).bytes(),
		"side 越界":       newPayload(t, InstructionCancelOrderV2).u32(2).u128(1).bytes(),
		"order_type 越界": newPayload(t, InstructionNewOrder).u32(0).u64(1).u64(1).u32(3).u64(0).bytes(),
		"self_trade 越界": newPayload(t, InstructionNewOrderV2).u32(0).u64(1).u64(1).u32(0).u64(0).u32(3).bytes(),
		"多余字节":          newPayload(t, InstructionSweepFees).u8(0).bytes(),
		"limit 截断":      newPayload(t, InstructionPrune).u8(1).bytes(),
	}
	for name, data := range cases {
		_, err := DecodeInstructionSet(marketInstruction(data))
		assert.Truef(t, errors.Is(err, common.ErrDecode), "%s 应返回 ErrDecode, got %v", name, err)
	}
}

func TestHandler_SharedByBothVersions(t *testing.T) {
	m := make(map[string]common.InstructionHandler)
	RegisterHandlers(m)
	require.Len(t, m, 2)

	data := newPayload(t, InstructionSettleFunds).bytes()
	for program, handler := range m {
		ix := marketInstruction(data)
		ix.Program = program

		tables, err := handler(ix)
		require.NoError(t, err)
		require.Len(t, tables, 1)
		assert.Equal(t, TableName, tables[0].TableName)
		set := tables[0].Rows[0].(*core.InstructionSet)
		assert.Equal(t, program, set.Function.Program)

		_, err = avro.Marshal(tables[0].Schema, tables[0].Rows[0])
		assert.NoError(t, err)
	}
}
