package auctionmanager

import (
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
)

// SetStore 账户布局: #0 store, #1 admin, #2 payer
func handleSetStore(ix *core.Instruction, args *SetStoreArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &StoreUpdateRow{
		TxHash:    ix.TransactionHash,
		Version:   1,
		Store:     acc.At(0),
		Admin:     acc.At(1),
		Payer:     acc.At(2),
		Public:    args.Public,
		Timestamp: ix.Timestamp,
	}
	return common.Emit(acc, storeUpdateSchema, StoreUpdatesTable, row)
}

// SetStoreV2 账户布局: #0 store, #1 store config, #2 admin, #3 payer
func handleSetStoreV2(ix *core.Instruction, args *SetStoreV2Args) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	config := acc.At(1)
	row := &StoreUpdateRow{
		TxHash:      ix.TransactionHash,
		Version:     2,
		Store:       acc.At(0),
		StoreConfig: &config,
		Admin:       acc.At(2),
		Payer:       acc.At(3),
		Public:      args.Public,
		SettingsURI: args.SettingsURI,
		Timestamp:   ix.Timestamp,
	}
	return common.Emit(acc, storeUpdateSchema, StoreUpdatesTable, row)
}

// SetWhitelistedCreator 账户布局:
//
//	#0 - whitelisted creator pda
//	#1 - admin
//	#2 - payer
//	#3 - creator
//	#4 - store
func handleSetWhitelistedCreator(ix *core.Instruction, args *SetWhitelistedCreatorArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &WhitelistedCreatorRow{
		TxHash:             ix.TransactionHash,
		WhitelistedCreator: acc.At(0),
		Admin:              acc.At(1),
		Payer:              acc.At(2),
		Creator:            acc.At(3),
		Store:              acc.At(4),
		Activated:          args.Activated,
		Timestamp:          ix.Timestamp,
	}
	return common.Emit(acc, whitelistedCreatorSchema, WhitelistedCreatorsTable, row)
}

// SetStoreIndex 账户布局:
//
//	#0 - store index
//	#1 - payer
//	#2 - auction cache
//	#3 - store
//	#4 - system program
//	#5 - rent
//	#6 - above cache (可选)
//	#7 - below cache (可选)
func handleSetStoreIndex(ix *core.Instruction, args *SetStoreIndexArgs) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &StoreIndexRow{
		TxHash:       ix.TransactionHash,
		StoreIndex:   acc.At(0),
		Payer:        acc.At(1),
		AuctionCache: acc.At(2),
		Store:        acc.At(3),
		Page:         int64(args.Page),
		Offset:       int64(args.Offset),
		AboveCache:   acc.Optional(6, SetStoreIndexAboveCacheThreshold),
		BelowCache:   acc.Optional(7, SetStoreIndexBelowCacheThreshold),
		Timestamp:    ix.Timestamp,
	}
	return common.Emit(acc, storeIndexSchema, StoreIndexesTable, row)
}

// SetAuctionCache 账户布局:
//
//	#0 - auction cache
//	#1 - payer
//	#2 - auction
//	#3 - safety deposit box
//	#4 - auction manager
//	#5 - store
func handleSetAuctionCache(ix *core.Instruction) ([]*core.TableData, error) {
	acc := common.NewAccountReader(ix)
	row := &AuctionCacheRow{
		TxHash:           ix.TransactionHash,
		AuctionCache:     acc.At(0),
		Payer:            acc.At(1),
		Auction:          acc.At(2),
		SafetyDepositBox: acc.At(3),
		AuctionManager:   acc.At(4),
		Store:            acc.At(5),
		Timestamp:        ix.Timestamp,
	}
	return common.Emit(acc, auctionCacheSchema, AuctionCachesTable, row)
}
