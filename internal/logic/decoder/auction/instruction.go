package auction

import (
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/types"
)

// 来源, https://github.com/metaplex-foundation/metaplex-program-library/blob/master/auction/program/src/instruction.rs
// borsh 编码，1 字节标签
const (
	InstructionCancelBid uint8 = iota
	InstructionCreateAuction
	InstructionClaimBid
	InstructionEndAuction
	InstructionStartAuction
	InstructionSetAuthority
	InstructionPlaceBid
	InstructionCreateAuctionV2
)

const (
	WinnerLimitUnlimited uint8 = 0
	WinnerLimitCapped    uint8 = 1
)

const (
	PriceFloorNone         uint8 = 0
	PriceFloorMinimumPrice uint8 = 1
	PriceFloorBlindedPrice uint8 = 2
)

type Instruction interface {
	isAuctionInstruction()
}

// 定长参数直接交给 borsh 反序列化

type CancelBidArgs struct {
	Resource types.Pubkey
}

type ClaimBidArgs struct {
	Resource types.Pubkey
}

type StartAuctionArgs struct {
	Resource types.Pubkey
}

type PlaceBidArgs struct {
	Amount   uint64
	Resource types.Pubkey
}

type SetAuthorityArgs struct{}

type EndAuctionArgs struct {
	Resource types.Pubkey
	Reveal   *Reveal
}

// Reveal 盲拍揭示的 (price, salt)
type Reveal struct {
	Price uint64
	Salt  uint64
}

// WinnerLimit Unlimited / Capped 都只携带一个整数，行里不区分两者
type WinnerLimit struct {
	Kind  uint8
	Value uint64
}

// PriceFloor 三种变体的负载都是 32 字节；MinimumPrice 为 [u64;4]，第一个元素是价格
type PriceFloor struct {
	Kind uint8
	Data [32]byte
}

func (p PriceFloor) MinimumPrice() (uint64, bool) {
	if p.Kind != PriceFloorMinimumPrice {
		return 0, false
	}
	r := common.NewPayloadReader(p.Data[:8])
	return r.U64(), true
}

type CreateAuctionArgs struct {
	Version               int16
	Winners               WinnerLimit
	EndAuctionAt          *int64
	EndAuctionGap         *int64
	TokenMint             types.Pubkey
	Authority             types.Pubkey
	Resource              types.Pubkey
	PriceFloor            PriceFloor
	TickSize              *uint64
	GapTickSizePercentage *uint8
	// 以下仅 V2
	InstantSalePrice *uint64
	Name             *string
}

func (*CancelBidArgs) isAuctionInstruction()     {}
func (*ClaimBidArgs) isAuctionInstruction()      {}
func (*StartAuctionArgs) isAuctionInstruction()  {}
func (*PlaceBidArgs) isAuctionInstruction()      {}
func (*SetAuthorityArgs) isAuctionInstruction()  {}
func (*EndAuctionArgs) isAuctionInstruction()    {}
func (*CreateAuctionArgs) isAuctionInstruction() {}

func decodeFixed[T any](data []byte) (Instruction, error) {
	v, err := common.DecodeBorshFixed[T](data)
	if err != nil {
		return nil, err
	}
	inst, ok := any(&v).(Instruction)
	if !ok {
		return nil, common.DecodeErrorf("%T is not an auction instruction", v)
	}
	return inst, nil
}

// ParseInstruction 解析 auction 指令
func ParseInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, common.DecodeErrorf("empty auction instruction")
	}
	tag, args := data[0], data[1:]

	switch tag {
	case InstructionCancelBid:
		return decodeFixed[CancelBidArgs](args)
	case InstructionClaimBid:
		return decodeFixed[ClaimBidArgs](args)
	case InstructionStartAuction:
		return decodeFixed[StartAuctionArgs](args)
	case InstructionPlaceBid:
		return decodeFixed[PlaceBidArgs](args)
	case InstructionSetAuthority:
		return decodeFixed[SetAuthorityArgs](args)
	case InstructionEndAuction:
		return parseEndAuction(args)
	case InstructionCreateAuction:
		return parseCreateAuction(args, 1)
	case InstructionCreateAuctionV2:
		return parseCreateAuction(args, 2)
	default:
		return nil, common.UnknownVariant(uint64(tag))
	}
}

func parseEndAuction(data []byte) (Instruction, error) {
	r := common.NewPayloadReader(data)
	v := &EndAuctionArgs{Resource: r.Pubkey()}
	if r.Option() {
		v.Reveal = &Reveal{Price: r.U64(), Salt: r.U64()}
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

func parseCreateAuction(data []byte, version int16) (Instruction, error) {
	r := common.NewPayloadReader(data)
	v := &CreateAuctionArgs{Version: version}
	v.Winners.Kind = r.Enum("winner_limit", WinnerLimitCapped)
	v.Winners.Value = r.U64()
	v.EndAuctionAt = r.OptionI64()
	v.EndAuctionGap = r.OptionI64()
	v.TokenMint = r.Pubkey()
	v.Authority = r.Pubkey()
	v.Resource = r.Pubkey()
	v.PriceFloor.Kind = r.Enum("price_floor", PriceFloorBlindedPrice)
	copy(v.PriceFloor.Data[:], r.Bytes(32))
	v.TickSize = r.OptionU64()
	v.GapTickSizePercentage = r.OptionU8()
	if version >= 2 {
		v.InstantSalePrice = r.OptionU64()
		if r.Option() {
			name := r.FixedString(32)
			v.Name = &name
		}
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}
