package stake

import (
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/types"
)

// 来源, https://github.com/solana-labs/solana/blob/master/sdk/program/src/stake/instruction.rs
// bincode 编码：u32 小端标签；Option 为 1 字节标签；String 为 u64 长度前缀
const (
	InstructionInitialize uint32 = iota
	InstructionAuthorize
	InstructionDelegateStake
	InstructionSplit
	InstructionWithdraw
	InstructionDeactivate
	InstructionSetLockup
	InstructionMerge
	InstructionAuthorizeWithSeed
	InstructionInitializeChecked
	InstructionAuthorizeChecked
	InstructionAuthorizeCheckedWithSeed
	InstructionSetLockupChecked
	InstructionGetMinimumDelegation
	InstructionDeactivateDelinquent
	InstructionRedelegate
	InstructionMoveStake
	InstructionMoveLamports
)

// StakeAuthorize 按原始判别值输出：Staker=0, Withdrawer=1
type StakeAuthorize uint32

const (
	StakeAuthorizeStaker     StakeAuthorize = 0
	StakeAuthorizeWithdrawer StakeAuthorize = 1
)

type Instruction interface {
	isStakeInstruction()
}

type Authorized struct {
	Staker     types.Pubkey
	Withdrawer types.Pubkey
}

type Lockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     types.Pubkey
}

type Initialize struct {
	Authorized Authorized
	Lockup     Lockup
}

type Authorize struct {
	NewAuthorized  types.Pubkey
	StakeAuthorize StakeAuthorize
}

type DelegateStake struct{}

type Split struct {
	Lamports uint64
}

type Withdraw struct {
	Lamports uint64
}

type Deactivate struct{}

type SetLockup struct {
	UnixTimestamp *int64
	Epoch         *uint64
	Custodian     *types.Pubkey
}

type Merge struct{}

type AuthorizeWithSeed struct {
	NewAuthorized  types.Pubkey
	StakeAuthorize StakeAuthorize
	AuthoritySeed  string
	AuthorityOwner types.Pubkey
}

type InitializeChecked struct{}

type AuthorizeChecked struct {
	StakeAuthorize StakeAuthorize
}

type AuthorizeCheckedWithSeed struct {
	StakeAuthorize StakeAuthorize
	AuthoritySeed  string
	AuthorityOwner types.Pubkey
}

type SetLockupChecked struct {
	UnixTimestamp *int64
	Epoch         *uint64
}

type GetMinimumDelegation struct{}

type DeactivateDelinquent struct{}

type Redelegate struct{}

type MoveStake struct {
	Lamports uint64
}

type MoveLamports struct {
	Lamports uint64
}

func (*Initialize) isStakeInstruction()               {}
func (*Authorize) isStakeInstruction()                {}
func (*DelegateStake) isStakeInstruction()            {}
func (*Split) isStakeInstruction()                    {}
func (*Withdraw) isStakeInstruction()                 {}
func (*Deactivate) isStakeInstruction()               {}
func (*SetLockup) isStakeInstruction()                {}
func (*Merge) isStakeInstruction()                    {}
func (*AuthorizeWithSeed) isStakeInstruction()        {}
func (*InitializeChecked) isStakeInstruction()        {}
func (*AuthorizeChecked) isStakeInstruction()         {}
func (*AuthorizeCheckedWithSeed) isStakeInstruction() {}
func (*SetLockupChecked) isStakeInstruction()         {}
func (*GetMinimumDelegation) isStakeInstruction()     {}
func (*DeactivateDelinquent) isStakeInstruction()     {}
func (*Redelegate) isStakeInstruction()               {}
func (*MoveStake) isStakeInstruction()                {}
func (*MoveLamports) isStakeInstruction()             {}

func readStakeAuthorize(r *common.PayloadReader) StakeAuthorize {
	return StakeAuthorize(r.EnumU32("stake_authorize", uint32(StakeAuthorizeWithdrawer)))
}

// ParseInstruction 解析 stake 指令数据，要求恰好读完
func ParseInstruction(data []byte) (Instruction, error) {
	r := common.NewPayloadReader(data)
	tag := r.U32()
	if err := r.Err(); err != nil {
		return nil, err
	}

	var inst Instruction
	switch tag {
	case InstructionInitialize:
		v := &Initialize{}
		v.Authorized.Staker = r.Pubkey()
		v.Authorized.Withdrawer = r.Pubkey()
		v.Lockup.UnixTimestamp = r.I64()
		v.Lockup.Epoch = r.U64()
		v.Lockup.Custodian = r.Pubkey()
		inst = v
	case InstructionAuthorize:
		inst = &Authorize{NewAuthorized: r.Pubkey(), StakeAuthorize: readStakeAuthorize(r)}
	case InstructionDelegateStake:
		inst = &DelegateStake{}
	case InstructionSplit:
		inst = &Split{Lamports: r.U64()}
	case InstructionWithdraw:
		inst = &Withdraw{Lamports: r.U64()}
	case InstructionDeactivate:
		inst = &Deactivate{}
	case InstructionSetLockup:
		inst = &SetLockup{
			UnixTimestamp: r.OptionI64(),
			Epoch:         r.OptionU64(),
			Custodian:     r.OptionPubkey(),
		}
	case InstructionMerge:
		inst = &Merge{}
	case InstructionAuthorizeWithSeed:
		inst = &AuthorizeWithSeed{
			NewAuthorized:  r.Pubkey(),
			StakeAuthorize: readStakeAuthorize(r),
			AuthoritySeed:  r.BincodeString(),
			AuthorityOwner: r.Pubkey(),
		}
	case InstructionInitializeChecked:
		inst = &InitializeChecked{}
	case InstructionAuthorizeChecked:
		inst = &AuthorizeChecked{StakeAuthorize: readStakeAuthorize(r)}
	case InstructionAuthorizeCheckedWithSeed:
		inst = &AuthorizeCheckedWithSeed{
			StakeAuthorize: readStakeAuthorize(r),
			AuthoritySeed:  r.BincodeString(),
			AuthorityOwner: r.Pubkey(),
		}
	case InstructionSetLockupChecked:
		inst = &SetLockupChecked{
			UnixTimestamp: r.OptionI64(),
			Epoch:         r.OptionU64(),
		}
	case InstructionGetMinimumDelegation:
		inst = &GetMinimumDelegation{}
	case InstructionDeactivateDelinquent:
		inst = &DeactivateDelinquent{}
	case InstructionRedelegate:
		inst = &Redelegate{}
	case InstructionMoveStake:
		inst = &MoveStake{Lamports: r.U64()}
	case InstructionMoveLamports:
		inst = &MoveLamports{Lamports: r.U64()}
	default:
		return nil, common.UnknownVariant(uint64(tag))
	}

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return inst, nil
}
