package auctionmanager

import (
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

// RedeemBid 账户布局:
//
//	#0 - auction manager
//	#1 - safety deposit token storage
//	#2 - destination
//	#3 - bid redemption ticket
//	#4 - safety deposit box
//	#5 - vault
//	#6 - fraction mint
//	#7 - auction
//	#8 - bidder metadata
//	#9 - bidder
//	#10 - payer
//	#11 - token program
//	#12 - token vault program
//	#13 - token metadata program
//	#14 - store
//	#15 - system program
//	#16 - rent
//	#17 - transfer authority
//	#18 - safety deposit config (可选)
//	#19 - auction extended (可选)
func handleRedeemBid(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &BidRedemptionRow{
		TxHash:                    ix.TransactionHash,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		BidRedemption:             acc.At(3),
		SafetyDepositBox:          acc.At(4),
		Vault:                     acc.At(5),
		FractionMint:              acc.At(6),
		Auction:                   acc.At(7),
		BidderMetadata:            acc.At(8),
		Bidder:                    acc.At(9),
		Payer:                     acc.At(10),
		Store:                     acc.At(14),
		TransferAuthority:         acc.At(17),
		SafetyDepositConfig:       acc.Trailing(RedeemBidSafetyDepositConfigIndex),
		AuctionExtended:           acc.Trailing(RedeemBidAuctionExtendedIndex),
		Timestamp:                 ix.Timestamp,
	}
	return common.Emit(acc, bidRedemptionSchema, BidRedemptionsTable, row)
}

// RedeemFullRightsTransferBid 前 17 个账户与 RedeemBid 相同，随后:
//
//	#17 - master metadata
//	#18 - new metadata authority
//	#19 - transfer authority
//	#20 - safety deposit config (可选)
//	#21 - auction extended (可选)
func handleRedeemFullRightsTransferBid(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &FullRightsTransferRedemptionRow{
		TxHash:                    ix.TransactionHash,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		BidRedemption:             acc.At(3),
		SafetyDepositBox:          acc.At(4),
		Vault:                     acc.At(5),
		FractionMint:              acc.At(6),
		Auction:                   acc.At(7),
		BidderMetadata:            acc.At(8),
		Bidder:                    acc.At(9),
		Payer:                     acc.At(10),
		Store:                     acc.At(14),
		MasterMetadata:            acc.At(17),
		NewMetadataAuthority:      acc.At(18),
		TransferAuthority:         acc.At(19),
		SafetyDepositConfig:       acc.Trailing(FullRightsSafetyDepositConfigIndex),
		AuctionExtended:           acc.Trailing(FullRightsAuctionExtendedIndex),
		Timestamp:                 ix.Timestamp,
	}
	return common.Emit(acc, fullRightsTransferRedemptionSchema, FullRightsTransferRedemptionsTable, row)
}

// DeprecatedRedeemParticipationBid 账户布局（扩展布局在 #9 插入 bidder，之后整体后移）:
//
//	#0 - auction manager
//	#1 - safety deposit token storage
//	#2 - destination
//	#3 - bid redemption ticket
//	#4 - safety deposit box
//	#5 - vault
//	#6 - fraction mint
//	#7 - auction
//	#8 - bidder metadata
//	#9 - payer
//	#10 - token program
//	#11 - token vault program
//	#12 - token metadata program
//	#13 - store
//	#14 - system program
//	#15 - rent
//	#16 - transfer authority
//	#17 - accept payment
//	#18 - paying token account
//	#19 - printing authorization token account
func handleRedeemParticipationBidV1(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	s := acc.Shift(ParticipationBidV1ExtendedThreshold)
	printingAuthorization := acc.At(19 + s)
	row := &ParticipationRedemptionRow{
		TxHash:                            ix.TransactionHash,
		Version:                           1,
		AuctionManager:                    acc.At(0),
		SafetyDepositTokenStorage:         acc.At(1),
		Destination:                       acc.At(2),
		BidRedemption:                     acc.At(3),
		SafetyDepositBox:                  acc.At(4),
		Vault:                             acc.At(5),
		Auction:                           acc.At(7),
		BidderMetadata:                    acc.At(8),
		Bidder:                            acc.Optional(9, ParticipationBidV1ExtendedThreshold),
		Payer:                             acc.At(9 + s),
		Store:                             acc.At(13 + s),
		TransferAuthority:                 acc.At(16 + s),
		AcceptPayment:                     acc.At(17 + s),
		PayingTokenAccount:                acc.At(18 + s),
		PrintingAuthorizationTokenAccount: &printingAuthorization,
		Timestamp:                         ix.Timestamp,
	}
	return common.Emit(acc, participationRedemptionSchema, ParticipationRedemptionsTable, row)
}

// DeprecatedRedeemParticipationBidV2 账户布局:
//
//	#0 - auction manager
//	#1 - safety deposit token storage
//	#2 - destination
//	#3 - bid redemption ticket
//	#4 - safety deposit box
//	#5 - vault
//	#6 - safety deposit config
//	#7 - auction
//	#8 - bidder metadata
//	#9 - bidder
//	#10 - payer
//	#14 - store
//	#17 - transfer authority
//	#18 - accept payment
//	#19 - paying token account
//	#20 - printing authorization token account
func handleRedeemParticipationBidV2(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := participationRowV2V3(ix, acc, 2)
	printingAuthorization := acc.At(20)
	row.PrintingAuthorizationTokenAccount = &printingAuthorization
	return common.Emit(acc, participationRedemptionSchema, ParticipationRedemptionsTable, row)
}

// RedeemParticipationBidV3 与 v2 共用前 20 个账户，#20 起为新 edition 相关账户
func handleRedeemParticipationBidV3(ix *core.Instruction, args *RedeemParticipationBidV3Args) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := participationRowV2V3(ix, acc, 3)
	row.WinIndex = common.Int64Ptr(args.WinIndex)
	return common.Emit(acc, participationRedemptionSchema, ParticipationRedemptionsTable, row)
}

func participationRowV2V3(ix *core.Instruction, acc *common.AccountReader, version int16) *ParticipationRedemptionRow {
	config := acc.At(6)
	bidder := acc.At(9)
	return &ParticipationRedemptionRow{
		TxHash:                    ix.TransactionHash,
		Version:                   version,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		BidRedemption:             acc.At(3),
		SafetyDepositBox:          acc.At(4),
		Vault:                     acc.At(5),
		SafetyDepositConfig:       &config,
		Auction:                   acc.At(7),
		BidderMetadata:            acc.At(8),
		Bidder:                    &bidder,
		Payer:                     acc.At(10),
		Store:                     acc.At(14),
		TransferAuthority:         acc.At(17),
		AcceptPayment:             acc.At(18),
		PayingTokenAccount:        acc.At(19),
		Timestamp:                 ix.Timestamp,
	}
}

// RedeemPrintingV2Bid 账户布局:
//
//	#0 - auction manager
//	#1 - safety deposit token storage
//	#2 - one time printing destination
//	#3 - bid redemption ticket
//	#4 - safety deposit box
//	#5 - vault
//	#6 - safety deposit config
//	#7 - auction
//	#8 - bidder metadata
//	#9 - bidder
//	#10 - payer
//	#14 - store
//	#17 - prize tracking ticket
//	#18 - new metadata
//	#19 - new edition
//	#20 - master edition
//	#21 - new token mint
//	#22 - edition mark pda
//	#23 - mint authority
//	#24 - metadata
//	#25 - auction extended
func handleRedeemPrintingV2Bid(ix *core.Instruction, args *RedeemPrintingV2BidArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &PrintingV2RedemptionRow{
		TxHash:                    ix.TransactionHash,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		BidRedemption:             acc.At(3),
		SafetyDepositBox:          acc.At(4),
		Vault:                     acc.At(5),
		SafetyDepositConfig:       acc.At(6),
		Auction:                   acc.At(7),
		BidderMetadata:            acc.At(8),
		Bidder:                    acc.At(9),
		Payer:                     acc.At(10),
		Store:                     acc.At(14),
		PrizeTrackingTicket:       acc.At(17),
		NewMetadata:               acc.At(18),
		NewEdition:                acc.At(19),
		MasterEdition:             acc.At(20),
		NewMint:                   acc.At(21),
		EditionMark:               acc.At(22),
		MintAuthority:             acc.At(23),
		Metadata:                  acc.At(24),
		AuctionExtended:           acc.At(25),
		EditionOffset:             int64(args.EditionOffset),
		WinIndex:                  int64(args.WinIndex),
		Timestamp:                 ix.Timestamp,
	}
	return common.Emit(acc, printingV2RedemptionSchema, PrintingV2RedemptionsTable, row)
}

// RedeemUnusedWinningConfigItemsAsAuctioneer 账户布局与 proxy_call 指向的指令一致，
// winning_config_item 取参数中 winning_config_item_index 指向的账户，越界即失败
func handleRedeemUnusedWinningConfigItemsAsAuctioneer(ix *core.Instruction, args *RedeemUnusedWinningConfigItemsAsAuctioneerArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &UnusedWinningConfigItemRedemptionRow{
		TxHash:                    ix.TransactionHash,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		BidRedemption:             acc.At(3),
		SafetyDepositBox:          acc.At(4),
		Vault:                     acc.At(5),
		Auction:                   acc.At(7),
		Payer:                     acc.At(10),
		Store:                     acc.At(14),
		WinningConfigItemIndex:    int16(args.WinningConfigItemIndex),
		WinningConfigItem:         acc.At(int(args.WinningConfigItemIndex)),
		ProxyCall:                 int16(args.ProxyCall),
		Timestamp:                 ix.Timestamp,
	}
	return common.Emit(acc, unusedWinningConfigItemRedemptionSchema, UnusedWinningConfigItemRedemptionsTable, row)
}
