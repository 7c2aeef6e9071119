package txadapter

import (
	"errors"
	"fmt"

	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/types"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
)

// ProgramFilter 按程序公钥原始字节过滤，返回 false 的程序不会被展开为 Instruction，
// 也不会做 base58 编码
type ProgramFilter func(program types.Pubkey) bool

// ValidateGrpcTx 过滤无法或无需解码的交易：投票交易、执行失败、字段缺失
func ValidateGrpcTx(tx *pb.SubscribeUpdateTransactionInfo) error {
	if tx == nil {
		return errors.New("nil transaction info")
	}
	if tx.Transaction == nil {
		return errors.New("missing Transaction field")
	}
	if tx.Transaction.Message == nil {
		return errors.New("missing Message field in transaction")
	}
	if len(tx.Transaction.Signatures) == 0 {
		return errors.New("missing transaction signature")
	}
	if len(tx.Transaction.Signatures[0]) != 64 {
		return fmt.Errorf("invalid transaction signature length: %d", len(tx.Transaction.Signatures[0]))
	}
	if tx.IsVote {
		return errors.New("vote transaction skipped")
	}
	if tx.Meta == nil {
		return errors.New("missing transaction meta data")
	}
	if tx.Meta.Err != nil {
		return fmt.Errorf("transaction execution failed: %v", tx.Meta.Err)
	}
	return nil
}

// buildFullAccountKeys 拼接 message.accountKeys 与 Address Lookup Table 中的
// writable / readonly 地址，顺序与链上 accountIndex 一致
func buildFullAccountKeys(accountKeys, loadedWritable, loadedReadonly [][]byte) ([]types.Pubkey, error) {
	pubkeys := make([]types.Pubkey, 0, len(accountKeys)+len(loadedWritable)+len(loadedReadonly))
	for _, part := range [][][]byte{accountKeys, loadedWritable, loadedReadonly} {
		for _, b := range part {
			if len(b) != 32 {
				return nil, fmt.Errorf("invalid pubkey length %d at index %d", len(b), len(pubkeys))
			}
			var p types.Pubkey
			copy(p[:], b)
			pubkeys = append(pubkeys, p)
		}
	}
	return pubkeys, nil
}

// addressBook accountIndex → base58，按需编码并缓存
type addressBook struct {
	keys []types.Pubkey
	strs []string
}

func (b *addressBook) pubkey(idx uint32) (types.Pubkey, error) {
	if int(idx) >= len(b.keys) {
		return types.Pubkey{}, fmt.Errorf("account index %d out of range (%d keys)", idx, len(b.keys))
	}
	return b.keys[idx], nil
}

func (b *addressBook) address(idx uint32) (string, error) {
	if int(idx) >= len(b.keys) {
		return "", fmt.Errorf("account index %d out of range (%d keys)", idx, len(b.keys))
	}
	if b.strs[idx] == "" {
		b.strs[idx] = b.keys[idx].String()
	}
	return b.strs[idx], nil
}

func (b *addressBook) accounts(indexes []byte) ([]core.AccountRef, error) {
	refs := make([]core.AccountRef, len(indexes))
	for i, idx := range indexes {
		addr, err := b.address(uint32(idx))
		if err != nil {
			return nil, err
		}
		refs[i] = core.AccountRef{Index: i, AccountAddress: addr}
	}
	return refs, nil
}

// AdaptGrpcTx 将 gRPC 推送的交易展开为待解码的指令列表（主指令 + inner 指令）。
// 主指令 TxInstructionID 为其在交易中的序号；inner 指令 TxInstructionID 为其在所属
// inner 块中的序号，ParentIndex 指向主指令序号。keep 为 nil 时保留全部程序。
func AdaptGrpcTx(txCtx *core.TxContext, tx *pb.SubscribeUpdateTransactionInfo, keep ProgramFilter) (_ []*core.Instruction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("AdaptGrpcTx panic: %v", r)
		}
	}()

	if err := ValidateGrpcTx(tx); err != nil {
		return nil, err
	}

	keys, err := buildFullAccountKeys(
		tx.Transaction.Message.AccountKeys,
		tx.Meta.LoadedWritableAddresses,
		tx.Meta.LoadedReadonlyAddresses,
	)
	if err != nil {
		return nil, fmt.Errorf("buildFullAccountKeys error: %w", err)
	}
	if len(keys) == 0 {
		return nil, errors.New("invalid transaction: empty accountKeys")
	}

	book := &addressBook{keys: keys, strs: make([]string, len(keys))}
	sig, err := types.SignatureFromBytes(tx.Transaction.Signatures[0])
	if err != nil {
		return nil, err
	}
	txHash := sig.String()
	timestamp := txCtx.TimestampMs()

	build := func(programIdx uint32, data, accounts []byte, id int32, parent *int32) (*core.Instruction, error) {
		programKey, err := book.pubkey(programIdx)
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(programKey) {
			return nil, nil
		}
		program, _ := book.address(programIdx)
		refs, err := book.accounts(accounts)
		if err != nil {
			return nil, err
		}
		return &core.Instruction{
			Program:         program,
			Data:            data,
			Accounts:        refs,
			TxInstructionID: id,
			TransactionHash: txHash,
			ParentIndex:     parent,
			Timestamp:       timestamp,
		}, nil
	}

	rawInstructions := tx.Transaction.Message.Instructions
	rawInners := tx.Meta.InnerInstructions
	out := make([]*core.Instruction, 0, len(rawInstructions))
	innerIndex := 0

	for i, inst := range rawInstructions {
		ix, err := build(inst.ProgramIdIndex, inst.Data, inst.Accounts, int32(i), nil)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		if ix != nil {
			out = append(out, ix)
		}

		// inner 列表按主指令序号递增排列，顺序匹配即可
		if innerIndex < len(rawInners) && int(rawInners[innerIndex].Index) == i {
			parent := int32(i)
			for j, inner := range rawInners[innerIndex].Instructions {
				ix, err := build(inner.ProgramIdIndex, inner.Data, inner.Accounts, int32(j), &parent)
				if err != nil {
					return nil, fmt.Errorf("inner instruction %d/%d: %w", i, j, err)
				}
				if ix != nil {
					out = append(out, ix)
				}
			}
			innerIndex++
		}
	}
	return out, nil
}
