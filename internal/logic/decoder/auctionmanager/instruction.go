package auctionmanager

import (
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/types"
)

// 来源, https://github.com/metaplex-foundation/metaplex/blob/master/rust/metaplex/program/src/instruction.rs
// borsh 编码，1 字节标签
const (
	InstructionDeprecatedInitAuctionManagerV1 uint8 = iota
	InstructionDeprecatedValidateSafetyDepositBoxV1
	InstructionRedeemBid
	InstructionRedeemFullRightsTransferBid
	InstructionDeprecatedRedeemParticipationBid
	InstructionStartAuction
	InstructionClaimBid
	InstructionEmptyPaymentAccount
	InstructionSetStore
	InstructionSetWhitelistedCreator
	InstructionDeprecatedValidateParticipation
	InstructionDeprecatedPopulateParticipationPrintingAccount
	InstructionRedeemUnusedWinningConfigItemsAsAuctioneer
	InstructionDecommissionAuctionManager
	InstructionRedeemPrintingV2Bid
	InstructionWithdrawMasterEdition
	InstructionDeprecatedRedeemParticipationBidV2
	InstructionInitAuctionManagerV2
	InstructionValidateSafetyDepositBoxV2
	InstructionRedeemParticipationBidV3
	InstructionEndAuction
	InstructionSetStoreIndex
	InstructionSetAuctionCache
	InstructionSetStoreV2
)

// WinningConfigType
const (
	WinningConfigTokenOnlyTransfer  uint8 = 0
	WinningConfigFullRightsTransfer uint8 = 1
	WinningConfigPrintingV1         uint8 = 2
	WinningConfigPrintingV2         uint8 = 3
	WinningConfigParticipation      uint8 = 4
)

// WinningConstraint
const (
	WinningConstraintNoParticipationPrize    uint8 = 0
	WinningConstraintParticipationPrizeGiven uint8 = 1
)

// NonWinningConstraint
const (
	NonWinningConstraintNoParticipationPrize uint8 = 0
	NonWinningConstraintGivenForFixedPrice   uint8 = 1
	NonWinningConstraintGivenForBidPrice     uint8 = 2
)

// ProxyCallAddress
const (
	ProxyCallRedeemBid                   uint8 = 0
	ProxyCallRedeemFullRightsTransferBid uint8 = 1
)

// TupleNumericType 线上为变体序号，输出为对应的字节宽度
type TupleNumericType uint8

const (
	TupleNumericU8 TupleNumericType = iota
	TupleNumericU16
	TupleNumericU32
	TupleNumericU64
)

func (t TupleNumericType) Width() int16 {
	return int16(1) << t
}

type Instruction interface {
	isAuctionManagerInstruction()
}

type WinningConfigItem struct {
	SafetyDepositBoxIndex uint8
	Amount                uint8
	WinningConfigType     uint8
}

type WinningConfig struct {
	Items []WinningConfigItem
}

type ParticipationConfigV1 struct {
	WinnerConstraint      uint8
	NonWinningConstraint  uint8
	SafetyDepositBoxIndex uint8
	FixedPrice            *uint64
}

// AuctionManagerSettingsV1 DeprecatedInitAuctionManagerV1 的参数
type AuctionManagerSettingsV1 struct {
	WinningConfigs      []WinningConfig
	ParticipationConfig *ParticipationConfigV1
}

type DeprecatedValidateSafetyDepositBoxV1 struct{}

type RedeemBid struct{}

type RedeemFullRightsTransferBid struct{}

type DeprecatedRedeemParticipationBid struct{}

type StartAuction struct{}

type ClaimBid struct{}

type EmptyPaymentAccountArgs struct {
	WinningConfigIndex     *uint8
	WinningConfigItemIndex *uint8
	CreatorIndex           *uint8
}

type SetStoreArgs struct {
	Public bool
}

type SetWhitelistedCreatorArgs struct {
	Activated bool
}

type DeprecatedValidateParticipation struct{}

type DeprecatedPopulateParticipationPrintingAccount struct{}

type RedeemUnusedWinningConfigItemsAsAuctioneerArgs struct {
	WinningConfigItemIndex uint8
	ProxyCall              uint8
}

type DecommissionAuctionManager struct{}

type RedeemPrintingV2BidArgs struct {
	EditionOffset uint64
	WinIndex      uint64
}

type WithdrawMasterEdition struct{}

type DeprecatedRedeemParticipationBidV2 struct{}

type InitAuctionManagerV2Args struct {
	AmountType TupleNumericType
	LengthType TupleNumericType
	MaxRanges  uint64
}

type AmountRange struct {
	Amount uint64
	Length uint64
}

type ParticipationConfigV2 struct {
	WinnerConstraint     uint8
	NonWinningConstraint uint8
	FixedPrice           *uint64
}

type ParticipationStateV2 struct {
	CollectedToAcceptPayment uint64
}

// SafetyDepositConfig ValidateSafetyDepositBoxV2 的参数
type SafetyDepositConfig struct {
	Key                 uint8
	AuctionManager      types.Pubkey
	Order               uint64
	WinningConfigType   uint8
	AmountType          TupleNumericType
	LengthType          TupleNumericType
	AmountRanges        []AmountRange
	ParticipationConfig *ParticipationConfigV2
	ParticipationState  *ParticipationStateV2
}

type RedeemParticipationBidV3Args struct {
	WinIndex *uint64
}

type Reveal struct {
	Price uint64
	Salt  uint64
}

type EndAuctionArgs struct {
	Reveal *Reveal
}

type SetStoreIndexArgs struct {
	Page   uint64
	Offset uint64
}

type SetAuctionCache struct{}

type SetStoreV2Args struct {
	Public      bool
	SettingsURI *string
}

func (*AuctionManagerSettingsV1) isAuctionManagerInstruction()                       {}
func (*DeprecatedValidateSafetyDepositBoxV1) isAuctionManagerInstruction()           {}
func (*RedeemBid) isAuctionManagerInstruction()                                      {}
func (*RedeemFullRightsTransferBid) isAuctionManagerInstruction()                    {}
func (*DeprecatedRedeemParticipationBid) isAuctionManagerInstruction()               {}
func (*StartAuction) isAuctionManagerInstruction()                                   {}
func (*ClaimBid) isAuctionManagerInstruction()                                       {}
func (*EmptyPaymentAccountArgs) isAuctionManagerInstruction()                        {}
func (*SetStoreArgs) isAuctionManagerInstruction()                                   {}
func (*SetWhitelistedCreatorArgs) isAuctionManagerInstruction()                      {}
func (*DeprecatedValidateParticipation) isAuctionManagerInstruction()                {}
func (*DeprecatedPopulateParticipationPrintingAccount) isAuctionManagerInstruction() {}
func (*RedeemUnusedWinningConfigItemsAsAuctioneerArgs) isAuctionManagerInstruction() {}
func (*DecommissionAuctionManager) isAuctionManagerInstruction()                     {}
func (*RedeemPrintingV2BidArgs) isAuctionManagerInstruction()                        {}
func (*WithdrawMasterEdition) isAuctionManagerInstruction()                          {}
func (*DeprecatedRedeemParticipationBidV2) isAuctionManagerInstruction()             {}
func (*InitAuctionManagerV2Args) isAuctionManagerInstruction()                       {}
func (*SafetyDepositConfig) isAuctionManagerInstruction()                            {}
func (*RedeemParticipationBidV3Args) isAuctionManagerInstruction()                   {}
func (*EndAuctionArgs) isAuctionManagerInstruction()                                 {}
func (*SetStoreIndexArgs) isAuctionManagerInstruction()                              {}
func (*SetAuctionCache) isAuctionManagerInstruction()                                {}
func (*SetStoreV2Args) isAuctionManagerInstruction()                                 {}

// ParseInstruction 解析 auction manager 指令。
// 无参数及定长参数走 borsh 反序列化，含 Option / Vec 的参数顺序读取。
func ParseInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, common.DecodeErrorf("empty auction manager instruction")
	}
	tag, args := data[0], data[1:]

	switch tag {
	case InstructionDeprecatedInitAuctionManagerV1:
		return parseSequential(args, parseAuctionManagerSettingsV1)
	case InstructionDeprecatedValidateSafetyDepositBoxV1:
		return decodeFixed[DeprecatedValidateSafetyDepositBoxV1](args)
	case InstructionRedeemBid:
		return decodeFixed[RedeemBid](args)
	case InstructionRedeemFullRightsTransferBid:
		return decodeFixed[RedeemFullRightsTransferBid](args)
	case InstructionDeprecatedRedeemParticipationBid:
		return decodeFixed[DeprecatedRedeemParticipationBid](args)
	case InstructionStartAuction:
		return decodeFixed[StartAuction](args)
	case InstructionClaimBid:
		return decodeFixed[ClaimBid](args)
	case InstructionEmptyPaymentAccount:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			return &EmptyPaymentAccountArgs{
				WinningConfigIndex:     r.OptionU8(),
				WinningConfigItemIndex: r.OptionU8(),
				CreatorIndex:           r.OptionU8(),
			}
		})
	case InstructionSetStore:
		return decodeFixed[SetStoreArgs](args)
	case InstructionSetWhitelistedCreator:
		return decodeFixed[SetWhitelistedCreatorArgs](args)
	case InstructionDeprecatedValidateParticipation:
		return decodeFixed[DeprecatedValidateParticipation](args)
	case InstructionDeprecatedPopulateParticipationPrintingAccount:
		return decodeFixed[DeprecatedPopulateParticipationPrintingAccount](args)
	case InstructionRedeemUnusedWinningConfigItemsAsAuctioneer:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			return &RedeemUnusedWinningConfigItemsAsAuctioneerArgs{
				WinningConfigItemIndex: r.U8(),
				ProxyCall:              r.Enum("proxy_call", ProxyCallRedeemFullRightsTransferBid),
			}
		})
	case InstructionDecommissionAuctionManager:
		return decodeFixed[DecommissionAuctionManager](args)
	case InstructionRedeemPrintingV2Bid:
		return decodeFixed[RedeemPrintingV2BidArgs](args)
	case InstructionWithdrawMasterEdition:
		return decodeFixed[WithdrawMasterEdition](args)
	case InstructionDeprecatedRedeemParticipationBidV2:
		return decodeFixed[DeprecatedRedeemParticipationBidV2](args)
	case InstructionInitAuctionManagerV2:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			return &InitAuctionManagerV2Args{
				AmountType: readTupleNumericType(r, "amount_type"),
				LengthType: readTupleNumericType(r, "length_type"),
				MaxRanges:  r.U64(),
			}
		})
	case InstructionValidateSafetyDepositBoxV2:
		return parseSequential(args, parseSafetyDepositConfig)
	case InstructionRedeemParticipationBidV3:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			return &RedeemParticipationBidV3Args{WinIndex: r.OptionU64()}
		})
	case InstructionEndAuction:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			v := &EndAuctionArgs{}
			if r.Option() {
				v.Reveal = &Reveal{Price: r.U64(), Salt: r.U64()}
			}
			return v
		})
	case InstructionSetStoreIndex:
		return decodeFixed[SetStoreIndexArgs](args)
	case InstructionSetAuctionCache:
		return decodeFixed[SetAuctionCache](args)
	case InstructionSetStoreV2:
		return parseSequential(args, func(r *common.PayloadReader) Instruction {
			return &SetStoreV2Args{
				Public:      r.Bool(),
				SettingsURI: r.OptionBorshString(),
			}
		})
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
		return nil, common.DecodeErrorf("%T is not an auction manager instruction", v)
	}
	return inst, nil
}

func parseSequential(data []byte, parse func(r *common.PayloadReader) Instruction) (Instruction, error) {
	r := common.NewPayloadReader(data)
	inst := parse(r)
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return inst, nil
}

func readTupleNumericType(r *common.PayloadReader, name string) TupleNumericType {
	return TupleNumericType(r.Enum(name, uint8(TupleNumericU64)))
}

func readWinningConfigType(r *common.PayloadReader) uint8 {
	return r.Enum("winning_config_type", WinningConfigParticipation)
}

func readWinningConstraint(r *common.PayloadReader) uint8 {
	return r.Enum("winner_constraint", WinningConstraintParticipationPrizeGiven)
}

func readNonWinningConstraint(r *common.PayloadReader) uint8 {
	return r.Enum("non_winning_constraint", NonWinningConstraintGivenForBidPrice)
}

const (
	winningConfigItemSize = 3
	amountRangeSize       = 16
)

func parseAuctionManagerSettingsV1(r *common.PayloadReader) Instruction {
	v := &AuctionManagerSettingsV1{}
	// 每个 WinningConfig 至少包含 4 字节的 items 长度
	n := r.SeqLen(4)
	for i := 0; i < n && r.Err() == nil; i++ {
		var cfg WinningConfig
		m := r.SeqLen(winningConfigItemSize)
		for j := 0; j < m && r.Err() == nil; j++ {
			cfg.Items = append(cfg.Items, WinningConfigItem{
				SafetyDepositBoxIndex: r.U8(),
				Amount:                r.U8(),
				WinningConfigType:     readWinningConfigType(r),
			})
		}
		v.WinningConfigs = append(v.WinningConfigs, cfg)
	}
	if r.Option() {
		v.ParticipationConfig = &ParticipationConfigV1{
			WinnerConstraint:      readWinningConstraint(r),
			NonWinningConstraint:  readNonWinningConstraint(r),
			SafetyDepositBoxIndex: r.U8(),
			FixedPrice:            r.OptionU64(),
		}
	}
	return v
}

func parseSafetyDepositConfig(r *common.PayloadReader) Instruction {
	v := &SafetyDepositConfig{
		Key:               r.U8(),
		AuctionManager:    r.Pubkey(),
		Order:             r.U64(),
		WinningConfigType: readWinningConfigType(r),
		AmountType:        readTupleNumericType(r, "amount_type"),
		LengthType:        readTupleNumericType(r, "length_type"),
	}
	n := r.SeqLen(amountRangeSize)
	for i := 0; i < n && r.Err() == nil; i++ {
		v.AmountRanges = append(v.AmountRanges, AmountRange{Amount: r.U64(), Length: r.U64()})
	}
	if r.Option() {
		v.ParticipationConfig = &ParticipationConfigV2{
			WinnerConstraint:     readWinningConstraint(r),
			NonWinningConstraint: readNonWinningConstraint(r),
			FixedPrice:           r.OptionU64(),
		}
	}
	if r.Option() {
		v.ParticipationState = &ParticipationStateV2{CollectedToAcceptPayment: r.U64()}
	}
	return v
}
