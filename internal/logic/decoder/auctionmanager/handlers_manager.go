package auctionmanager

import (
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

// DeprecatedInitAuctionManagerV1 账户布局:
//
//	#0 - auction manager
//	#1 - vault
//	#2 - auction
//	#3 - authority
//	#4 - payer
//	#5 - accept payment account
//	#6 - store
func handleDeprecatedInitAuctionManagerV1(ix *core.Instruction, args *AuctionManagerSettingsV1) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &DeprecatedInitAuctionManagerRow{
		TxHash:               ix.TransactionHash,
		AuctionManager:       acc.At(0),
		Vault:                acc.At(1),
		Auction:              acc.At(2),
		Authority:            acc.At(3),
		Payer:                acc.At(4),
		AcceptPaymentAccount: acc.At(5),
		Store:                acc.At(6),
		WinningConfigCount:   int16(len(args.WinningConfigs)),
		Timestamp:            ix.Timestamp,
	}
	if p := args.ParticipationConfig; p != nil {
		row.ParticipationWinnerConstraint = common.Int16(int16(p.WinnerConstraint))
		row.ParticipationNonWinningConstraint = common.Int16(int16(p.NonWinningConstraint))
		row.ParticipationSafetyDepositBoxIndex = common.Int16(int16(p.SafetyDepositBoxIndex))
		row.ParticipationFixedPrice = common.Int64Ptr(p.FixedPrice)
	}

	tables, err := common.Emit(acc, deprecatedInitAuctionManagerSchema, DeprecatedInitAuctionManagersTable, row)
	if err != nil {
		return nil, err
	}

	var items []any
	for i, cfg := range args.WinningConfigs {
		for j, item := range cfg.Items {
			items = append(items, &WinningConfigItemRow{
				TxHash:                ix.TransactionHash,
				AuctionManager:        row.AuctionManager,
				WinningConfigIndex:    int16(i),
				ItemIndex:             int16(j),
				SafetyDepositBoxIndex: int16(item.SafetyDepositBoxIndex),
				Amount:                int16(item.Amount),
				WinningConfigType:     int16(item.WinningConfigType),
				Timestamp:             ix.Timestamp,
			})
		}
	}
	if len(items) > 0 {
		tables = append(tables, core.NewTableData(winningConfigItemSchema, WinningConfigItemsTable, items...))
	}
	return tables, nil
}

// DeprecatedValidateSafetyDepositBoxV1 账户布局:
//
//	#0 - safety deposit validation ticket
//	#1 - auction manager
//	#2 - metadata
//	#3 - original authority lookup
//	#4 - whitelisted creator
//	#5 - store
//	#6 - safety deposit box
//	#7 - safety deposit token store
//	#8 - mint
//	#9 - edition
//	#10 - vault
//	#11 - authority
//	#12 - metadata authority
//	#13 - payer
func handleDeprecatedValidateSafetyDepositBoxV1(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &SafetyDepositValidationV1Row{
		TxHash:                  ix.TransactionHash,
		ValidationTicket:        acc.At(0),
		AuctionManager:          acc.At(1),
		Metadata:                acc.At(2),
		OriginalAuthorityLookup: acc.At(3),
		WhitelistedCreator:      acc.At(4),
		Store:                   acc.At(5),
		SafetyDepositBox:        acc.At(6),
		SafetyDepositTokenStore: acc.At(7),
		Mint:                    acc.At(8),
		Edition:                 acc.At(9),
		Vault:                   acc.At(10),
		Authority:               acc.At(11),
		MetadataAuthority:       acc.At(12),
		Payer:                   acc.At(13),
		Timestamp:               ix.Timestamp,
	}
	return common.Emit(acc, safetyDepositValidationV1Schema, SafetyDepositValidationsV1Table, row)
}

func handleStartAuction(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &AuctionStartRow{
		TxHash:         ix.TransactionHash,
		AuctionManager: acc.At(0),
		Auction:        acc.At(1),
		Authority:      acc.At(2),
		Store:          acc.At(3),
		Timestamp:      ix.Timestamp,
	}
	return common.Emit(acc, auctionStartSchema, AuctionStartsTable, row)
}

// ClaimBid 账户布局:
//
//	#0 - accept payment
//	#1 - bidder pot token
//	#2 - bidder pot
//	#3 - auction manager
//	#4 - auction
//	#5 - bidder metadata
//	#6 - token mint
//	#7 - vault
//	#8 - store
//	#9 - auction program
//	#10 - clock
//	#11 - token program
//	#12 - auction extended (可选)
func handleClaimBid(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &BidClaimRow{
		TxHash:          ix.TransactionHash,
		AcceptPayment:   acc.At(0),
		BidderPotToken:  acc.At(1),
		BidderPot:       acc.At(2),
		AuctionManager:  acc.At(3),
		Auction:         acc.At(4),
		BidderMetadata:  acc.At(5),
		TokenMint:       acc.At(6),
		Vault:           acc.At(7),
		Store:           acc.At(8),
		AuctionExtended: acc.Trailing(ClaimBidAuctionExtendedIndex),
		Timestamp:       ix.Timestamp,
	}
	return common.Emit(acc, bidClaimSchema, BidClaimsTable, row)
}

// EmptyPaymentAccount 账户布局（扩展布局在 #6 插入 master edition metadata）:
//
//	#0 - accept payment
//	#1 - destination
//	#2 - auction manager
//	#3 - payout ticket
//	#4 - payer
//	#5 - metadata
//	#6 - safety deposit box
//	#7 - store
//	#8 - vault
//	#9 - auction
//	#10 - token program
//	#11 - system program
//	#12 - rent
//	#13 - auction winner token type tracker
//	#14 - safety deposit config
func handleEmptyPaymentAccount(ix *core.Instruction, args *EmptyPaymentAccountArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	s := acc.Shift(EmptyPaymentExtendedThreshold)
	row := &EmptyPaymentAccountRow{
		TxHash:                 ix.TransactionHash,
		AcceptPayment:          acc.At(0),
		Destination:            acc.At(1),
		AuctionManager:         acc.At(2),
		PayoutTicket:           acc.At(3),
		Payer:                  acc.At(4),
		Metadata:               acc.At(5),
		MasterEditionMetadata:  acc.Optional(6, EmptyPaymentExtendedThreshold),
		SafetyDepositBox:       acc.At(6 + s),
		Store:                  acc.At(7 + s),
		Vault:                  acc.At(8 + s),
		Auction:                acc.At(9 + s),
		AuctionTokenTracker:    acc.At(13 + s),
		SafetyDepositConfig:    acc.At(14 + s),
		WinningConfigIndex:     common.Int16Ptr(args.WinningConfigIndex),
		WinningConfigItemIndex: common.Int16Ptr(args.WinningConfigItemIndex),
		CreatorIndex:           common.Int16Ptr(args.CreatorIndex),
		Timestamp:              ix.Timestamp,
	}
	return common.Emit(acc, emptyPaymentAccountSchema, EmptyPaymentAccountsTable, row)
}

func handleDeprecatedValidateParticipation(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &ParticipationValidationRow{
		TxHash:                            ix.TransactionHash,
		AuctionManager:                    acc.At(0),
		OpenMasterEditionMetadata:         acc.At(1),
		PrintingAuthorizationTokenAccount: acc.At(2),
		Authority:                         acc.At(3),
		Store:                             acc.At(4),
		SafetyDepositBox:                  acc.At(5),
		SafetyDepositTokenStore:           acc.At(6),
		Vault:                             acc.At(7),
		Timestamp:                         ix.Timestamp,
	}
	return common.Emit(acc, participationValidationSchema, ParticipationValidationsTable, row)
}

// DeprecatedPopulateParticipationPrintingAccount 账户布局:
//
//	#0 - safety deposit token store
//	#1 - transient printing token account
//	#2 - one time printing authorization mint
//	#3 - printing mint
//	#4 - participation token account
//	#5 - edition
//	#6 - vault
//	#7 - auction
//	#8 - auction manager
//	#9 - safety deposit box
//	#10 - authority
//	#11 - store
func handleDeprecatedPopulateParticipationPrintingAccount(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &ParticipationPrintingPopulationRow{
		TxHash:                           ix.TransactionHash,
		SafetyDepositTokenStore:          acc.At(0),
		TransientPrintingTokenAccount:    acc.At(1),
		OneTimePrintingAuthorizationMint: acc.At(2),
		PrintingMint:                     acc.At(3),
		ParticipationTokenAccount:        acc.At(4),
		Edition:                          acc.At(5),
		Vault:                            acc.At(6),
		Auction:                          acc.At(7),
		AuctionManager:                   acc.At(8),
		SafetyDepositBox:                 acc.At(9),
		Authority:                        acc.At(10),
		Store:                            acc.At(11),
		Timestamp:                        ix.Timestamp,
	}
	return common.Emit(acc, participationPrintingPopulationSchema, ParticipationPrintingPopulationsTable, row)
}

// DecommissionAuctionManager 账户布局:
//
//	#0 - auction manager
//	#1 - auction
//	#2 - authority
//	#3 - vault
//	#4 - store
//	#5 - auction program
//	#6 - clock
//	#7 - vault program (可选)
func handleDecommissionAuctionManager(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &DecommissionRow{
		TxHash:         ix.TransactionHash,
		AuctionManager: acc.At(0),
		Auction:        acc.At(1),
		Authority:      acc.At(2),
		Vault:          acc.At(3),
		Store:          acc.At(4),
		AuctionProgram: acc.At(5),
		VaultProgram:   acc.Optional(7, DecommissionVaultProgramThreshold),
		Timestamp:      ix.Timestamp,
	}
	return common.Emit(acc, decommissionSchema, DecommissionsTable, row)
}

// WithdrawMasterEdition 账户布局:
//
//	#0 - auction manager
//	#1 - safety deposit token storage
//	#2 - destination
//	#3 - safety deposit box
//	#4 - vault
//	#5 - fraction mint
//	#6 - prize tracking ticket
//	#7 - vault authority
//	#8 - auction
//	#9 - token program
//	#10 - token vault program
//	#11 - store
//	#12 - rent
//	#13 - safety deposit config
//	#14 - auction extended
func handleWithdrawMasterEdition(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &MasterEditionWithdrawalRow{
		TxHash:                    ix.TransactionHash,
		AuctionManager:            acc.At(0),
		SafetyDepositTokenStorage: acc.At(1),
		Destination:               acc.At(2),
		SafetyDepositBox:          acc.At(3),
		Vault:                     acc.At(4),
		FractionMint:              acc.At(5),
		PrizeTrackingTicket:       acc.At(6),
		VaultAuthority:            acc.At(7),
		Auction:                   acc.At(8),
		Store:                     acc.At(11),
		SafetyDepositConfig:       acc.At(13),
		AuctionExtended:           acc.At(14),
		Timestamp:                 ix.Timestamp,
	}
	return common.Emit(acc, masterEditionWithdrawalSchema, MasterEditionWithdrawalsTable, row)
}

// InitAuctionManagerV2 账户布局:
//
//	#0 - auction manager
//	#1 - auction winner token type tracker
//	#2 - vault
//	#3 - auction
//	#4 - authority
//	#5 - payer
//	#6 - accept payment account
//	#7 - store
func handleInitAuctionManagerV2(ix *core.Instruction, args *InitAuctionManagerV2Args) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &InitAuctionManagerV2Row{
		TxHash:               ix.TransactionHash,
		AuctionManager:       acc.At(0),
		AuctionTokenTracker:  acc.At(1),
		Vault:                acc.At(2),
		Auction:              acc.At(3),
		Authority:            acc.At(4),
		Payer:                acc.At(5),
		AcceptPaymentAccount: acc.At(6),
		Store:                acc.At(7),
		AmountType:           args.AmountType.Width(),
		LengthType:           args.LengthType.Width(),
		MaxRanges:            int64(args.MaxRanges),
		Timestamp:            ix.Timestamp,
	}
	return common.Emit(acc, initAuctionManagerV2Schema, InitAuctionManagersV2Table, row)
}

// ValidateSafetyDepositBoxV2 账户布局（扩展布局在 #13 插入 metadata authority）:
//
//	#0 - safety deposit config
//	#1 - auction winner token type tracker
//	#2 - auction manager
//	#3 - metadata
//	#4 - original authority lookup
//	#5 - whitelisted creator
//	#6 - store
//	#7 - safety deposit box
//	#8 - safety deposit token store
//	#9 - mint
//	#10 - edition
//	#11 - vault
//	#12 - authority
//	#13 - payer
func handleValidateSafetyDepositBoxV2(ix *core.Instruction, args *SafetyDepositConfig) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	s := acc.Shift(ValidateSafetyDepositV2ExtendedThreshold)
	row := &SafetyDepositValidationV2Row{
		TxHash:                  ix.TransactionHash,
		SafetyDepositConfig:     acc.At(0),
		AuctionTokenTracker:     acc.At(1),
		AuctionManager:          acc.At(2),
		Metadata:                acc.At(3),
		OriginalAuthorityLookup: acc.At(4),
		WhitelistedCreator:      acc.At(5),
		Store:                   acc.At(6),
		SafetyDepositBox:        acc.At(7),
		SafetyDepositTokenStore: acc.At(8),
		Mint:                    acc.At(9),
		Edition:                 acc.At(10),
		Vault:                   acc.At(11),
		Authority:               acc.At(12),
		MetadataAuthority:       acc.Optional(13, ValidateSafetyDepositV2ExtendedThreshold),
		Payer:                   acc.At(13 + s),
		Order:                   int64(args.Order),
		WinningConfigType:       int16(args.WinningConfigType),
		AmountType:              args.AmountType.Width(),
		LengthType:              args.LengthType.Width(),
		AmountRangeAmounts:      make([]int64, 0, len(args.AmountRanges)),
		AmountRangeLengths:      make([]int64, 0, len(args.AmountRanges)),
		Timestamp:               ix.Timestamp,
	}
	for _, r := range args.AmountRanges {
		row.AmountRangeAmounts = append(row.AmountRangeAmounts, int64(r.Amount))
		row.AmountRangeLengths = append(row.AmountRangeLengths, int64(r.Length))
	}
	if p := args.ParticipationConfig; p != nil {
		row.ParticipationWinnerConstraint = common.Int16(int16(p.WinnerConstraint))
		row.ParticipationNonWinningConstraint = common.Int16(int16(p.NonWinningConstraint))
		row.ParticipationFixedPrice = common.Int64Ptr(p.FixedPrice)
	}
	if st := args.ParticipationState; st != nil {
		row.CollectedToAcceptPayment = common.Int64(int64(st.CollectedToAcceptPayment))
	}
	return common.Emit(acc, safetyDepositValidationV2Schema, SafetyDepositValidationsV2Table, row)
}

// EndAuction 账户布局:
//
//	#0 - auction manager
//	#1 - auction
//	#2 - auction extended
//	#3 - auction manager authority
//	#4 - store
func handleEndAuction(ix *core.Instruction, args *EndAuctionArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &AuctionEndRow{
		TxHash:          ix.TransactionHash,
		AuctionManager:  acc.At(0),
		Auction:         acc.At(1),
		AuctionExtended: acc.At(2),
		Authority:       acc.At(3),
		Store:           acc.At(4),
		Timestamp:       ix.Timestamp,
	}
	if args.Reveal != nil {
		row.RevealPrice = common.Int64(int64(args.Reveal.Price))
		row.RevealSalt = common.Int64(int64(args.Reveal.Salt))
	}
	return common.Emit(acc, auctionEndSchema, AuctionEndsTable, row)
}
