package stake

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
	"ix-decoder-sol/internal/types"
)

type payload struct {
	t   *testing.T
	buf bytes.Buffer
	enc *bin.Encoder
}

func newPayload(t *testing.T, tag uint32) *payload {
	p := &payload{t: t}
	p.enc = bin.NewBinEncoder(&p.buf)
	p.u32(tag)
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

func (p *payload) u8(v uint8) *payload {
	require.NoError(p.t, p.enc.WriteUint8(v))
	return p
}

func (p *payload) key(k types.Pubkey) *payload {
	require.NoError(p.t, p.enc.WriteBytes(k[:], false))
	return p
}

func (p *payload) str(s string) *payload {
	p.u64(uint64(len(s)))
	require.NoError(p.t, p.enc.WriteBytes([]byte(s), false))
	return p
}

func (p *payload) bytes() []byte {
	return p.buf.Bytes()
}

func stakeInstruction(data []byte) *core.Instruction {
	return &core.Instruction{
		Program:         consts.StakeProgramStr,
		Data:            data,
		Accounts:        core.AccountRefs("StakeAccount", "Authority"),
		TransactionHash: "TX",
		Timestamp:       1_700_000_000_000,
	}
}

func key(b byte) types.Pubkey {
	var k types.Pubkey
	for i := range k {
		k[i] = b
	}
	return k
}

// 场景：Split(1_000_000)
func TestDecode_Split(t *testing.T) {
	ix := stakeInstruction(newPayload(t, InstructionSplit).u64(1_000_000).bytes())
	set, err := DecodeInstructionSet(ix)
	require.NoError(t, err)

	assert.Equal(t, "split", set.Function.Name)
	assert.Equal(t, consts.StakeProgramStr, set.Function.Program)
	assert.Equal(t, "TX", set.Function.TxHash)
	assert.Equal(t, []core.Property{
		{Key: "lamports", Value: "1000000", ParentKey: "", Timestamp: ix.Timestamp},
	}, set.Properties)
}

func TestDecode_Initialize(t *testing.T) {
	staker, withdrawer, custodian := key(1), key(2), key(3)
	data := newPayload(t, InstructionInitialize).
		key(staker).key(withdrawer).
		i64(-5).u64(300).key(custodian).
		bytes()

	set, err := DecodeInstructionSet(stakeInstruction(data))
	require.NoError(t, err)
	require.Len(t, set.Properties, 5)

	assert.Equal(t, "initialize", set.Function.Name)
	assert.Equal(t, "staker", set.Properties[0].Key)
	assert.Equal(t, staker.String(), set.Properties[0].Value)
	assert.Equal(t, "authorized", set.Properties[1].ParentKey)
	assert.Equal(t, "-5", set.Properties[2].Value, "有符号时间戳按十进制输出")
	assert.Equal(t, "lockup", set.Properties[2].ParentKey)
	assert.Equal(t, "300", set.Properties[3].Value)
	assert.Equal(t, custodian.String(), set.Properties[4].Value)
}

func TestDecode_SetLockupSkipsAbsentFields(t *testing.T) {
	// unix_timestamp=None, epoch=Some(9), custodian=None
	data := newPayload(t, InstructionSetLockup).u8(0).u8(1).u64(9).u8(0).bytes()

	set, err := DecodeInstructionSet(stakeInstruction(data))
	require.NoError(t, err)
	assert.Equal(t, "set-lockup", set.Function.Name)
	assert.Equal(t, []core.Property{
		{Key: "epoch", Value: "9", ParentKey: "lockup", Timestamp: 1_700_000_000_000},
	}, set.Properties)
}

func TestDecode_AuthorizeWithSeed(t *testing.T) {
	data := newPayload(t, InstructionAuthorizeWithSeed).
		key(key(7)).u32(uint32(StakeAuthorizeWithdrawer)).str("seed-1").key(key(8)).
		bytes()

	set, err := DecodeInstructionSet(stakeInstruction(data))
	require.NoError(t, err)
	assert.Equal(t, "authorize-with-seed", set.Function.Name)
	require.Len(t, set.Properties, 4)
	assert.Equal(t, "1", set.Properties[1].Value)
	assert.Equal(t, "seed-1", set.Properties[2].Value)
	assert.Equal(t, key(8).String(), set.Properties[3].Value)
}

func TestDecode_UnitVariants(t *testing.T) {
	names := map[uint32]string{
		InstructionDelegateStake:        "delegate-stake",
		InstructionDeactivate:           "deactivate",
		InstructionMerge:                "merge",
		InstructionInitializeChecked:    "initialize-checked",
		InstructionGetMinimumDelegation: "get-minimum-delegation",
		InstructionDeactivateDelinquent: "deactivate-delinquent",
		InstructionRedelegate:           "redelegate",
	}
	for tag, name := range names {
		set, err := DecodeInstructionSet(stakeInstruction(newPayload(t, tag).bytes()))
		require.NoError(t, err, name)
		assert.Equal(t, name, set.Function.Name)
		assert.NotNil(t, set.Properties, "无属性时也应为空列表")
		assert.Empty(t, set.Properties)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"未知标签":               newPayload(t, 99).bytes(),
		"split 截断":           newPayload(t, InstructionSplit).u32(1).bytes(),
		"多余字节":               newPayload(t, InstructionMerge).u8(0).bytes(),
		"stake_authorize 越界": newPayload(t, InstructionAuthorizeChecked).u32(2).bytes(),
		"option 标签非法":        newPayload(t, InstructionSetLockupChecked).u8(2).bytes(),
	}
	for name, data := range cases {
		_, err := DecodeInstructionSet(stakeInstruction(data))
		assert.Truef(t, errors.Is(err, common.ErrDecode), "%s 应返回 ErrDecode, got %v", name, err)
	}
}

func TestHandler_EncodesRow(t *testing.T) {
	m := make(map[string]common.InstructionHandler)
	RegisterHandlers(m)
	handler, ok := m[consts.StakeProgramStr]
	require.True(t, ok)

	tables, err := handler(stakeInstruction(newPayload(t, InstructionWithdraw).u64(42).bytes()))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, TableName, tables[0].TableName)

	_, err = avro.Marshal(tables[0].Schema, tables[0].Rows[0])
	assert.NoError(t, err)

	tables, err = handler(stakeInstruction([]byte{1}))
	assert.Error(t, err)
	assert.Nil(t, tables)
}
