package auctionmanager

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.MetaplexManagerProgramStr] = DecodeInstruction
}

func DecodeInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	switch v := inst.(type) {
	case *AuctionManagerSettingsV1:
		return handleDeprecatedInitAuctionManagerV1(ix, v)
	case *DeprecatedValidateSafetyDepositBoxV1:
		return handleDeprecatedValidateSafetyDepositBoxV1(ix)
	case *RedeemBid:
		return handleRedeemBid(ix)
	case *RedeemFullRightsTransferBid:
		return handleRedeemFullRightsTransferBid(ix)
	case *DeprecatedRedeemParticipationBid:
		return handleRedeemParticipationBidV1(ix)
	case *StartAuction:
		return handleStartAuction(ix)
	case *ClaimBid:
		return handleClaimBid(ix)
	case *EmptyPaymentAccountArgs:
		return handleEmptyPaymentAccount(ix, v)
	case *SetStoreArgs:
		return handleSetStore(ix, v)
	case *SetWhitelistedCreatorArgs:
		return handleSetWhitelistedCreator(ix, v)
	case *DeprecatedValidateParticipation:
		return handleDeprecatedValidateParticipation(ix)
	case *DeprecatedPopulateParticipationPrintingAccount:
		return handleDeprecatedPopulateParticipationPrintingAccount(ix)
	case *RedeemUnusedWinningConfigItemsAsAuctioneerArgs:
		return handleRedeemUnusedWinningConfigItemsAsAuctioneer(ix, v)
	case *DecommissionAuctionManager:
		return handleDecommissionAuctionManager(ix)
	case *RedeemPrintingV2BidArgs:
		return handleRedeemPrintingV2Bid(ix, v)
	case *WithdrawMasterEdition:
		return handleWithdrawMasterEdition(ix)
	case *DeprecatedRedeemParticipationBidV2:
		return handleRedeemParticipationBidV2(ix)
	case *InitAuctionManagerV2Args:
		return handleInitAuctionManagerV2(ix, v)
	case *SafetyDepositConfig:
		return handleValidateSafetyDepositBoxV2(ix, v)
	case *RedeemParticipationBidV3Args:
		return handleRedeemParticipationBidV3(ix, v)
	case *EndAuctionArgs:
		return handleEndAuction(ix, v)
	case *SetStoreIndexArgs:
		return handleSetStoreIndex(ix, v)
	case *SetAuctionCache:
		return handleSetAuctionCache(ix)
	case *SetStoreV2Args:
		return handleSetStoreV2(ix, v)
	default:
		return nil, common.DecodeErrorf("unhandled auction manager instruction %T", inst)
	}
}
