package stake

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/schema"
)

const TableName = "stake_instructions"

var instructionSetSchema = schema.MustRegisterParsed(TableName, schema.InstructionSet)

func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.StakeProgramStr] = handleInstruction
}

func handleInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	set, err := DecodeInstructionSet(ix)
	if err != nil {
		return nil, err
	}
	return common.WrapInstructionSet(instructionSetSchema, TableName, set), nil
}

// DecodeInstructionSet 将 stake 指令展开为属性包，
// authorized / lockup 子结构的字段通过 parent_key 归组
func DecodeInstructionSet(ix *core.Instruction) (*core.InstructionSet, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	bag := common.NewPropertyBag(ix.Timestamp)
	var name string
	switch v := inst.(type) {
	case *Initialize:
		name = "initialize"
		bag.Pubkey("staker", v.Authorized.Staker, "authorized").
			Pubkey("withdrawer", v.Authorized.Withdrawer, "authorized").
			Int("unix_timestamp", v.Lockup.UnixTimestamp, "lockup").
			Uint("epoch", v.Lockup.Epoch, "lockup").
			Pubkey("custodian", v.Lockup.Custodian, "lockup")
	case *Authorize:
		name = "authorize"
		bag.Pubkey("new_authorized", v.NewAuthorized, "").
			Uint("stake_authorize", uint64(v.StakeAuthorize), "")
	case *DelegateStake:
		name = "delegate-stake"
	case *Split:
		name = "split"
		bag.Uint("lamports", v.Lamports, "")
	case *Withdraw:
		name = "withdraw"
		bag.Uint("lamports", v.Lamports, "")
	case *Deactivate:
		name = "deactivate"
	case *SetLockup:
		name = "set-lockup"
		addLockupArgs(bag, v.UnixTimestamp, v.Epoch)
		if v.Custodian != nil {
			bag.Pubkey("custodian", *v.Custodian, "lockup")
		}
	case *Merge:
		name = "merge"
	case *AuthorizeWithSeed:
		name = "authorize-with-seed"
		bag.Pubkey("new_authorized", v.NewAuthorized, "").
			Uint("stake_authorize", uint64(v.StakeAuthorize), "").
			Add("authority_seed", v.AuthoritySeed, "").
			Pubkey("authority_owner", v.AuthorityOwner, "")
	case *InitializeChecked:
		name = "initialize-checked"
	case *AuthorizeChecked:
		name = "authorize-checked"
		bag.Uint("stake_authorize", uint64(v.StakeAuthorize), "")
	case *AuthorizeCheckedWithSeed:
		name = "authorize-checked-with-seed"
		bag.Uint("stake_authorize", uint64(v.StakeAuthorize), "").
			Add("authority_seed", v.AuthoritySeed, "").
			Pubkey("authority_owner", v.AuthorityOwner, "")
	case *SetLockupChecked:
		name = "set-lockup-checked"
		addLockupArgs(bag, v.UnixTimestamp, v.Epoch)
	case *GetMinimumDelegation:
		name = "get-minimum-delegation"
	case *DeactivateDelinquent:
		name = "deactivate-delinquent"
	case *Redelegate:
		name = "redelegate"
	case *MoveStake:
		name = "move-stake"
		bag.Uint("lamports", v.Lamports, "")
	case *MoveLamports:
		name = "move-lamports"
		bag.Uint("lamports", v.Lamports, "")
	default:
		return nil, common.DecodeErrorf("unhandled stake instruction %T", inst)
	}
	return common.BuildInstructionSet(ix, name, bag), nil
}

// 未设置的 Option 字段不输出
func addLockupArgs(bag *common.PropertyBag, unixTimestamp *int64, epoch *uint64) {
	if unixTimestamp != nil {
		bag.Int("unix_timestamp", *unixTimestamp, "lockup")
	}
	if epoch != nil {
		bag.Uint("epoch", *epoch, "lockup")
	}
}
