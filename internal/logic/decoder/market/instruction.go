package market

import (
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/types"
)

// 来源, https://github.com/project-serum/serum-dex/blob/master/dex/src/instruction.rs
// 布局：[version u8 = 0][tag u32 LE][按字段顺序紧密排列的小端字段]
const MarketInstructionVersion uint8 = 0

const (
	InstructionInitializeMarket uint32 = iota
	InstructionNewOrder
	InstructionMatchOrders
	InstructionConsumeEvents
	InstructionCancelOrder
	InstructionSettleFunds
	InstructionCancelOrderByClientID
	InstructionDisableMarket
	InstructionSweepFees
	InstructionNewOrderV2
	InstructionNewOrderV3
	InstructionCancelOrderV2
	InstructionCancelOrderByClientIDV2
	InstructionSendTake
	InstructionCloseOpenOrders
	InstructionInitOpenOrders
	InstructionPrune
	InstructionConsumeEventsPermissioned
	InstructionCancelOrdersByClientIDs
)

// 枚举按原始判别值输出
const (
	SideBid uint32 = 0
	SideAsk uint32 = 1

	OrderTypeLimit             uint32 = 0
	OrderTypeImmediateOrCancel uint32 = 1
	OrderTypePostOnly          uint32 = 2

	SelfTradeDecrementTake    uint32 = 0
	SelfTradeCancelProvide    uint32 = 1
	SelfTradeAbortTransaction uint32 = 2
)

// CancelOrdersByClientIDs 固定携带 8 个 client id，未使用的位置为 0
const MaxClientIDs = 8

type Instruction interface {
	isMarketInstruction()
}

type InitializeMarket struct {
	CoinLotSize      uint64
	PcLotSize        uint64
	FeeRateBps       uint16
	VaultSignerNonce uint64
	PcDustThreshold  uint64
}

type NewOrder struct {
	Side       uint32
	LimitPrice uint64
	MaxQty     uint64
	OrderType  uint32
	ClientID   uint64
}

type MatchOrders struct {
	Limit uint16
}

type ConsumeEvents struct {
	Limit uint16
}

type CancelOrder struct {
	Side      uint32
	OrderID   string // u128 十进制
	Owner     types.Pubkey
	OwnerSlot uint8
}

type SettleFunds struct{}

type CancelOrderByClientID struct {
	ClientID uint64
}

type DisableMarket struct{}

type SweepFees struct{}

type NewOrderV2 struct {
	NewOrder
	SelfTradeBehavior uint32
}

type NewOrderV3 struct {
	Side                        uint32
	LimitPrice                  uint64
	MaxCoinQty                  uint64
	MaxNativePcQtyIncludingFees uint64
	SelfTradeBehavior           uint32
	OrderType                   uint32
	ClientOrderID               uint64
	Limit                       uint16
	MaxTs                       *int64 // 旧版本客户端不带该字段
}

type CancelOrderV2 struct {
	Side    uint32
	OrderID string
}

type CancelOrderByClientIDV2 struct {
	ClientID uint64
}

type SendTake struct {
	Side                        uint32
	LimitPrice                  uint64
	MaxCoinQty                  uint64
	MaxNativePcQtyIncludingFees uint64
	MinCoinQty                  uint64
	MinNativePcQty              uint64
	Limit                       uint16
}

type CloseOpenOrders struct{}

type InitOpenOrders struct{}

type Prune struct {
	Limit uint16
}

type ConsumeEventsPermissioned struct {
	Limit uint16
}

type CancelOrdersByClientIDs struct {
	ClientIDs [MaxClientIDs]uint64
}

func (*InitializeMarket) isMarketInstruction()          {}
func (*NewOrder) isMarketInstruction()                  {}
func (*MatchOrders) isMarketInstruction()               {}
func (*ConsumeEvents) isMarketInstruction()             {}
func (*CancelOrder) isMarketInstruction()               {}
func (*SettleFunds) isMarketInstruction()               {}
func (*CancelOrderByClientID) isMarketInstruction()     {}
func (*DisableMarket) isMarketInstruction()             {}
func (*SweepFees) isMarketInstruction()                 {}
func (*NewOrderV2) isMarketInstruction()                {}
func (*NewOrderV3) isMarketInstruction()                {}
func (*CancelOrderV2) isMarketInstruction()             {}
func (*CancelOrderByClientIDV2) isMarketInstruction()   {}
func (*SendTake) isMarketInstruction()                  {}
func (*CloseOpenOrders) isMarketInstruction()           {}
func (*InitOpenOrders) isMarketInstruction()            {}
func (*Prune) isMarketInstruction()                     {}
func (*ConsumeEventsPermissioned) isMarketInstruction() {}
func (*CancelOrdersByClientIDs) isMarketInstruction()   {}

func readSide(r *common.PayloadReader) uint32 {
	return r.EnumU32("side", SideAsk)
}

func readOrderType(r *common.PayloadReader) uint32 {
	return r.EnumU32("order_type", OrderTypePostOnly)
}

func readSelfTradeBehavior(r *common.PayloadReader) uint32 {
	return r.EnumU32("self_trade_behavior", SelfTradeAbortTransaction)
}

func readNewOrder(r *common.PayloadReader) NewOrder {
	return NewOrder{
		Side:       readSide(r),
		LimitPrice: r.U64(),
		MaxQty:     r.U64(),
		OrderType:  readOrderType(r),
		ClientID:   r.U64(),
	}
}

// ParseInstruction 解析 serum market 指令，版本字节必须为 0
func ParseInstruction(data []byte) (Instruction, error) {
	r := common.NewPayloadReader(data)
	version := r.U8()
	tag := r.U32()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if version != MarketInstructionVersion {
		return nil, common.DecodeErrorf("unsupported market instruction version %d", version)
	}

	var inst Instruction
	switch tag {
	case InstructionInitializeMarket:
		inst = &InitializeMarket{
			CoinLotSize:      r.U64(),
			PcLotSize:        r.U64(),
			FeeRateBps:       r.U16(),
			VaultSignerNonce: r.U64(),
			PcDustThreshold:  r.U64(),
		}
	case InstructionNewOrder:
		v := readNewOrder(r)
		inst = &v
	case InstructionMatchOrders:
		inst = &MatchOrders{Limit: r.U16()}
	case InstructionConsumeEvents:
		inst = &ConsumeEvents{Limit: r.U16()}
	case InstructionCancelOrder:
		inst = &CancelOrder{
			Side:      readSide(r),
			OrderID:   r.U128(),
			Owner:     r.Pubkey(),
			OwnerSlot: r.U8(),
		}
	case InstructionSettleFunds:
		inst = &SettleFunds{}
	case InstructionCancelOrderByClientID:
		inst = &CancelOrderByClientID{ClientID: r.U64()}
	case InstructionDisableMarket:
		inst = &DisableMarket{}
	case InstructionSweepFees:
		inst = &SweepFees{}
	case InstructionNewOrderV2:
		inst = &NewOrderV2{NewOrder: readNewOrder(r), SelfTradeBehavior: readSelfTradeBehavior(r)}
	case InstructionNewOrderV3:
		v := &NewOrderV3{
			Side:                        readSide(r),
			LimitPrice:                  r.U64(),
			MaxCoinQty:                  r.U64(),
			MaxNativePcQtyIncludingFees: r.U64(),
			SelfTradeBehavior:           readSelfTradeBehavior(r),
			OrderType:                   readOrderType(r),
			ClientOrderID:               r.U64(),
			Limit:                       r.U16(),
		}
		if r.Err() == nil && r.Remaining() > 0 {
			ts := r.I64()
			v.MaxTs = &ts
		}
		inst = v
	case InstructionCancelOrderV2:
		inst = &CancelOrderV2{Side: readSide(r), OrderID: r.U128()}
	case InstructionCancelOrderByClientIDV2:
		inst = &CancelOrderByClientIDV2{ClientID: r.U64()}
	case InstructionSendTake:
		inst = &SendTake{
			Side:                        readSide(r),
			LimitPrice:                  r.U64(),
			MaxCoinQty:                  r.U64(),
			MaxNativePcQtyIncludingFees: r.U64(),
			MinCoinQty:                  r.U64(),
			MinNativePcQty:              r.U64(),
			Limit:                       r.U16(),
		}
	case InstructionCloseOpenOrders:
		inst = &CloseOpenOrders{}
	case InstructionInitOpenOrders:
		inst = &InitOpenOrders{}
	case InstructionPrune:
		inst = &Prune{Limit: r.U16()}
	case InstructionConsumeEventsPermissioned:
		inst = &ConsumeEventsPermissioned{Limit: r.U16()}
	case InstructionCancelOrdersByClientIDs:
		v := &CancelOrdersByClientIDs{}
		for i := range v.ClientIDs {
			v.ClientIDs[i] = r.U64()
		}
		inst = v
	default:
		return nil, common.UnknownVariant(uint64(tag))
	}

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return inst, nil
}
