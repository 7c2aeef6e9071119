package auction

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.MetaplexAuctionProgramStr] = DecodeInstruction
}

// DecodeInstruction 解析并投影为对应表的一行
func DecodeInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	switch v := inst.(type) {
	case *CancelBidArgs:
		return handleCancelBid(ix, v)
	case *CreateAuctionArgs:
		return handleCreateAuction(ix, v)
	case *ClaimBidArgs:
		return handleClaimBid(ix, v)
	case *EndAuctionArgs:
		return handleEndAuction(ix, v)
	case *StartAuctionArgs:
		return handleStartAuction(ix, v)
	case *SetAuthorityArgs:
		return handleSetAuthority(ix)
	case *PlaceBidArgs:
		return handlePlaceBid(ix, v)
	default:
		return nil, common.DecodeErrorf("unhandled auction instruction %T", inst)
	}
}
