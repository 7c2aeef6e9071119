package auction

import (
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

// CancelBid 账户布局:
//
//	#0 - bidder
//	#1 - bidder token account
//	#2 - pot
//	#3 - pot token account
//	#4 - metadata
//	#5 - auction
//	#6 - token mint
func handleCancelBid(ix *core.Instruction, args *CancelBidArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &CancelledBidRow{
		TxHash:             ix.TransactionHash,
		Bidder:             acc.At(0),
		BidderTokenAccount: acc.At(1),
		Pot:                acc.At(2),
		PotAccount:         acc.At(3),
		Metadata:           acc.At(4),
		AuctionAccount:     acc.At(5),
		Mint:               acc.At(6),
		Resource:           args.Resource.String(),
		Timestamp:          ix.Timestamp,
	}
	return common.Emit(acc, cancelledBidSchema, CancelledBidsTable, row)
}

// CreateAuction / CreateAuctionV2 账户布局:
//
//	#0 - creator
//	#1 - auction
//	#2 - auction extended
func handleCreateAuction(ix *core.Instruction, args *CreateAuctionArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &CreatedAuctionRow{
		TxHash:                ix.TransactionHash,
		Version:               args.Version,
		Creator:               acc.At(0),
		AuctionAccount:        acc.At(1),
		AuctionExtended:       acc.At(2),
		WinnerLimit:           int64(args.Winners.Value),
		EndAuctionAt:          args.EndAuctionAt,
		EndAuctionGap:         args.EndAuctionGap,
		TokenMint:             args.TokenMint.String(),
		Authority:             args.Authority.String(),
		Resource:              args.Resource.String(),
		PriceFloorType:        int16(args.PriceFloor.Kind),
		TickSize:              common.Int64Ptr(args.TickSize),
		GapTickSizePercentage: common.Int16Ptr(args.GapTickSizePercentage),
		InstantSalePrice:      common.Int64Ptr(args.InstantSalePrice),
		Name:                  args.Name,
		Timestamp:             ix.Timestamp,
	}
	if price, ok := args.PriceFloor.MinimumPrice(); ok {
		row.MinimumPrice = common.Int64(int64(price))
	}
	return common.Emit(acc, createdAuctionSchema, CreatedAuctionsTable, row)
}

// ClaimBid 账户布局:
//
//	#0 - destination
//	#1 - pot token account
//	#2 - pot
//	#3 - authority
//	#4 - auction
//	#5 - bidder
//	#6 - token mint
func handleClaimBid(ix *core.Instruction, args *ClaimBidArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &ClaimedBidRow{
		TxHash:         ix.TransactionHash,
		Destination:    acc.At(0),
		PotAccount:     acc.At(1),
		Pot:            acc.At(2),
		Authority:      acc.At(3),
		AuctionAccount: acc.At(4),
		Bidder:         acc.At(5),
		Mint:           acc.At(6),
		Resource:       args.Resource.String(),
		Timestamp:      ix.Timestamp,
	}
	return common.Emit(acc, claimedBidSchema, ClaimedBidsTable, row)
}

func handleEndAuction(ix *core.Instruction, args *EndAuctionArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &EndedAuctionRow{
		TxHash:         ix.TransactionHash,
		Authority:      acc.At(0),
		AuctionAccount: acc.At(1),
		Resource:       args.Resource.String(),
		Timestamp:      ix.Timestamp,
	}
	if args.Reveal != nil {
		row.RevealPrice = common.Int64(int64(args.Reveal.Price))
		row.RevealSalt = common.Int64(int64(args.Reveal.Salt))
	}
	return common.Emit(acc, endedAuctionSchema, EndedAuctionsTable, row)
}

func handleStartAuction(ix *core.Instruction, args *StartAuctionArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &StartedAuctionRow{
		TxHash:         ix.TransactionHash,
		Authority:      acc.At(0),
		AuctionAccount: acc.At(1),
		Resource:       args.Resource.String(),
		Timestamp:      ix.Timestamp,
	}
	return common.Emit(acc, startedAuctionSchema, StartedAuctionsTable, row)
}

func handleSetAuthority(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &AuthorityChangeRow{
		TxHash:         ix.TransactionHash,
		AuctionAccount: acc.At(0),
		Authority:      acc.At(1),
		NewAuthority:   acc.At(2),
		Timestamp:      ix.Timestamp,
	}
	return common.Emit(acc, authorityChangeSchema, AuthorityChangesTable, row)
}

// PlaceBid 账户布局:
//
//	#0 - bidder
//	#1 - bidder token account
//	#2 - pot
//	#3 - pot token account
//	#4 - metadata
//	#5 - auction
//	#6 - auction extended
//	#7 - token mint
//	#8 - transfer authority
//	#9 - payer
func handlePlaceBid(ix *core.Instruction, args *PlaceBidArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &PlacedBidRow{
		TxHash:             ix.TransactionHash,
		Bidder:             acc.At(0),
		BidderTokenAccount: acc.At(1),
		Pot:                acc.At(2),
		PotAccount:         acc.At(3),
		Metadata:           acc.At(4),
		AuctionAccount:     acc.At(5),
		AuctionExtended:    acc.At(6),
		Mint:               acc.At(7),
		TransferAuthority:  acc.At(8),
		Payer:              acc.At(9),
		Amount:             int64(args.Amount),
		Resource:           args.Resource.String(),
		Timestamp:          ix.Timestamp,
	}
	return common.Emit(acc, placedBidSchema, PlacedBidsTable, row)
}
