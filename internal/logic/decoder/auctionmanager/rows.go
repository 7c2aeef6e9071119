package auctionmanager

import (
	"ix-decoder-sol/internal/schema"
)

const (
	DeprecatedInitAuctionManagersTable      = "metaplex_deprecated_init_auction_managers"
	WinningConfigItemsTable                 = "metaplex_winning_config_items"
	SafetyDepositValidationsV1Table         = "metaplex_deprecated_safety_deposit_validations"
	BidRedemptionsTable                     = "metaplex_bid_redemptions"
	FullRightsTransferRedemptionsTable      = "metaplex_full_rights_transfer_bid_redemptions"
	ParticipationRedemptionsTable           = "metaplex_participation_bid_redemptions"
	AuctionStartsTable                      = "metaplex_auction_starts"
	BidClaimsTable                          = "metaplex_bid_claims"
	EmptyPaymentAccountsTable               = "metaplex_empty_payment_accounts"
	StoreUpdatesTable                       = "metaplex_store_updates"
	WhitelistedCreatorsTable                = "metaplex_whitelisted_creators"
	ParticipationValidationsTable           = "metaplex_deprecated_participation_validations"
	ParticipationPrintingPopulationsTable   = "metaplex_deprecated_participation_printing_populations"
	UnusedWinningConfigItemRedemptionsTable = "metaplex_unused_winning_config_item_redemptions"
	DecommissionsTable                      = "metaplex_auction_manager_decommissions"
	PrintingV2RedemptionsTable              = "metaplex_printing_v2_bid_redemptions"
	MasterEditionWithdrawalsTable           = "metaplex_master_edition_withdrawals"
	InitAuctionManagersV2Table              = "metaplex_init_auction_managers_v2"
	SafetyDepositValidationsV2Table         = "metaplex_safety_deposit_box_v2_validations"
	AuctionEndsTable                        = "metaplex_auction_ends"
	StoreIndexesTable                       = "metaplex_store_indexes"
	AuctionCachesTable                      = "metaplex_auction_caches"
)

// DeprecatedInitAuctionManagerRow 每个 winning config item 另外输出到 metaplex_winning_config_items
type DeprecatedInitAuctionManagerRow struct {
	TxHash                             string `avro:"tx_hash"`
	AuctionManager                     string `avro:"auction_manager"`
	Vault                              string `avro:"vault"`
	Auction                            string `avro:"auction"`
	Authority                          string `avro:"authority"`
	Payer                              string `avro:"payer"`
	AcceptPaymentAccount               string `avro:"accept_payment_account"`
	Store                              string `avro:"store"`
	WinningConfigCount                 int16  `avro:"winning_config_count"`
	ParticipationWinnerConstraint      *int16 `avro:"participation_winner_constraint"`
	ParticipationNonWinningConstraint  *int16 `avro:"participation_non_winning_constraint"`
	ParticipationSafetyDepositBoxIndex *int16 `avro:"participation_safety_deposit_box_index"`
	ParticipationFixedPrice            *int64 `avro:"participation_fixed_price"`
	Timestamp                          int64  `avro:"timestamp"`
}

var deprecatedInitAuctionManagerSchema = schema.MustRegister(DeprecatedInitAuctionManagersTable, `{
  "type": "record",
  "name": "DeprecatedInitAuctionManager",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "accept_payment_account", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "winning_config_count", "type": "int"},
    {"name": "participation_winner_constraint", "type": ["null", "int"], "default": null},
    {"name": "participation_non_winning_constraint", "type": ["null", "int"], "default": null},
    {"name": "participation_safety_deposit_box_index", "type": ["null", "int"], "default": null},
    {"name": "participation_fixed_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type WinningConfigItemRow struct {
	TxHash                string `avro:"tx_hash"`
	AuctionManager        string `avro:"auction_manager"`
	WinningConfigIndex    int16  `avro:"winning_config_index"`
	ItemIndex             int16  `avro:"item_index"`
	SafetyDepositBoxIndex int16  `avro:"safety_deposit_box_index"`
	Amount                int16  `avro:"amount"`
	WinningConfigType     int16  `avro:"winning_config_type"`
	Timestamp             int64  `avro:"timestamp"`
}

var winningConfigItemSchema = schema.MustRegister(WinningConfigItemsTable, `{
  "type": "record",
  "name": "WinningConfigItem",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "winning_config_index", "type": "int"},
    {"name": "item_index", "type": "int"},
    {"name": "safety_deposit_box_index", "type": "int"},
    {"name": "amount", "type": "int"},
    {"name": "winning_config_type", "type": "int"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type SafetyDepositValidationV1Row struct {
	TxHash                  string `avro:"tx_hash"`
	ValidationTicket        string `avro:"validation_ticket"`
	AuctionManager          string `avro:"auction_manager"`
	Metadata                string `avro:"metadata"`
	OriginalAuthorityLookup string `avro:"original_authority_lookup"`
	WhitelistedCreator      string `avro:"whitelisted_creator"`
	Store                   string `avro:"store"`
	SafetyDepositBox        string `avro:"safety_deposit_box"`
	SafetyDepositTokenStore string `avro:"safety_deposit_token_store"`
	Mint                    string `avro:"mint"`
	Edition                 string `avro:"edition"`
	Vault                   string `avro:"vault"`
	Authority               string `avro:"authority"`
	MetadataAuthority       string `avro:"metadata_authority"`
	Payer                   string `avro:"payer"`
	Timestamp               int64  `avro:"timestamp"`
}

var safetyDepositValidationV1Schema = schema.MustRegister(SafetyDepositValidationsV1Table, `{
  "type": "record",
  "name": "SafetyDepositValidationV1",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "validation_ticket", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "original_authority_lookup", "type": "string"},
    {"name": "whitelisted_creator", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "safety_deposit_token_store", "type": "string"},
    {"name": "mint", "type": "string"},
    {"name": "edition", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "metadata_authority", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type BidRedemptionRow struct {
	TxHash                    string  `avro:"tx_hash"`
	AuctionManager            string  `avro:"auction_manager"`
	SafetyDepositTokenStorage string  `avro:"safety_deposit_token_storage"`
	Destination               string  `avro:"destination"`
	BidRedemption             string  `avro:"bid_redemption"`
	SafetyDepositBox          string  `avro:"safety_deposit_box"`
	Vault                     string  `avro:"vault"`
	FractionMint              string  `avro:"fraction_mint"`
	Auction                   string  `avro:"auction"`
	BidderMetadata            string  `avro:"bidder_metadata"`
	Bidder                    string  `avro:"bidder"`
	Payer                     string  `avro:"payer"`
	Store                     string  `avro:"store"`
	TransferAuthority         string  `avro:"transfer_authority"`
	SafetyDepositConfig       *string `avro:"safety_deposit_config"`
	AuctionExtended           *string `avro:"auction_extended"`
	Timestamp                 int64   `avro:"timestamp"`
}

var bidRedemptionSchema = schema.MustRegister(BidRedemptionsTable, `{
  "type": "record",
  "name": "BidRedemption",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "bid_redemption", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "fraction_mint", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "bidder_metadata", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "transfer_authority", "type": "string"},
    {"name": "safety_deposit_config", "type": ["null", "string"], "default": null},
    {"name": "auction_extended", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type FullRightsTransferRedemptionRow struct {
	TxHash                    string  `avro:"tx_hash"`
	AuctionManager            string  `avro:"auction_manager"`
	SafetyDepositTokenStorage string  `avro:"safety_deposit_token_storage"`
	Destination               string  `avro:"destination"`
	BidRedemption             string  `avro:"bid_redemption"`
	SafetyDepositBox          string  `avro:"safety_deposit_box"`
	Vault                     string  `avro:"vault"`
	FractionMint              string  `avro:"fraction_mint"`
	Auction                   string  `avro:"auction"`
	BidderMetadata            string  `avro:"bidder_metadata"`
	Bidder                    string  `avro:"bidder"`
	Payer                     string  `avro:"payer"`
	Store                     string  `avro:"store"`
	MasterMetadata            string  `avro:"master_metadata"`
	NewMetadataAuthority      string  `avro:"new_metadata_authority"`
	TransferAuthority         string  `avro:"transfer_authority"`
	SafetyDepositConfig       *string `avro:"safety_deposit_config"`
	AuctionExtended           *string `avro:"auction_extended"`
	Timestamp                 int64   `avro:"timestamp"`
}

var fullRightsTransferRedemptionSchema = schema.MustRegister(FullRightsTransferRedemptionsTable, `{
  "type": "record",
  "name": "FullRightsTransferRedemption",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "bid_redemption", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "fraction_mint", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "bidder_metadata", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "master_metadata", "type": "string"},
    {"name": "new_metadata_authority", "type": "string"},
    {"name": "transfer_authority", "type": "string"},
    {"name": "safety_deposit_config", "type": ["null", "string"], "default": null},
    {"name": "auction_extended", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// ParticipationRedemptionRow v1 / v2 / v3 共用，version 区分来源指令
type ParticipationRedemptionRow struct {
	TxHash                            string  `avro:"tx_hash"`
	Version                           int16   `avro:"version"`
	AuctionManager                    string  `avro:"auction_manager"`
	SafetyDepositTokenStorage         string  `avro:"safety_deposit_token_storage"`
	Destination                       string  `avro:"destination"`
	BidRedemption                     string  `avro:"bid_redemption"`
	SafetyDepositBox                  string  `avro:"safety_deposit_box"`
	Vault                             string  `avro:"vault"`
	SafetyDepositConfig               *string `avro:"safety_deposit_config"`
	Auction                           string  `avro:"auction"`
	BidderMetadata                    string  `avro:"bidder_metadata"`
	Bidder                            *string `avro:"bidder"`
	Payer                             string  `avro:"payer"`
	Store                             string  `avro:"store"`
	TransferAuthority                 string  `avro:"transfer_authority"`
	AcceptPayment                     string  `avro:"accept_payment"`
	PayingTokenAccount                string  `avro:"paying_token_account"`
	PrintingAuthorizationTokenAccount *string `avro:"printing_authorization_token_account"`
	WinIndex                          *int64  `avro:"win_index"`
	Timestamp                         int64   `avro:"timestamp"`
}

var participationRedemptionSchema = schema.MustRegister(ParticipationRedemptionsTable, `{
  "type": "record",
  "name": "ParticipationRedemption",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "version", "type": "int"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "bid_redemption", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "safety_deposit_config", "type": ["null", "string"], "default": null},
    {"name": "auction", "type": "string"},
    {"name": "bidder_metadata", "type": "string"},
    {"name": "bidder", "type": ["null", "string"], "default": null},
    {"name": "payer", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "transfer_authority", "type": "string"},
    {"name": "accept_payment", "type": "string"},
    {"name": "paying_token_account", "type": "string"},
    {"name": "printing_authorization_token_account", "type": ["null", "string"], "default": null},
    {"name": "win_index", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type AuctionStartRow struct {
	TxHash         string `avro:"tx_hash"`
	AuctionManager string `avro:"auction_manager"`
	Auction        string `avro:"auction"`
	Authority      string `avro:"authority"`
	Store          string `avro:"store"`
	Timestamp      int64  `avro:"timestamp"`
}

var auctionStartSchema = schema.MustRegister(AuctionStartsTable, `{
  "type": "record",
  "name": "AuctionStart",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type BidClaimRow struct {
	TxHash          string  `avro:"tx_hash"`
	AcceptPayment   string  `avro:"accept_payment"`
	BidderPotToken  string  `avro:"bidder_pot_token"`
	BidderPot       string  `avro:"bidder_pot"`
	AuctionManager  string  `avro:"auction_manager"`
	Auction         string  `avro:"auction"`
	BidderMetadata  string  `avro:"bidder_metadata"`
	TokenMint       string  `avro:"token_mint"`
	Vault           string  `avro:"vault"`
	Store           string  `avro:"store"`
	AuctionExtended *string `avro:"auction_extended"`
	Timestamp       int64   `avro:"timestamp"`
}

var bidClaimSchema = schema.MustRegister(BidClaimsTable, `{
  "type": "record",
  "name": "BidClaim",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "accept_payment", "type": "string"},
    {"name": "bidder_pot_token", "type": "string"},
    {"name": "bidder_pot", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "bidder_metadata", "type": "string"},
    {"name": "token_mint", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "auction_extended", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type EmptyPaymentAccountRow struct {
	TxHash                 string  `avro:"tx_hash"`
	AcceptPayment          string  `avro:"accept_payment"`
	Destination            string  `avro:"destination"`
	AuctionManager         string  `avro:"auction_manager"`
	PayoutTicket           string  `avro:"payout_ticket"`
	Payer                  string  `avro:"payer"`
	Metadata               string  `avro:"metadata"`
	MasterEditionMetadata  *string `avro:"master_edition_metadata"`
	SafetyDepositBox       string  `avro:"safety_deposit_box"`
	Store                  string  `avro:"store"`
	Vault                  string  `avro:"vault"`
	Auction                string  `avro:"auction"`
	AuctionTokenTracker    string  `avro:"auction_token_tracker"`
	SafetyDepositConfig    string  `avro:"safety_deposit_config"`
	WinningConfigIndex     *int16  `avro:"winning_config_index"`
	WinningConfigItemIndex *int16  `avro:"winning_config_item_index"`
	CreatorIndex           *int16  `avro:"creator_index"`
	Timestamp              int64   `avro:"timestamp"`
}

var emptyPaymentAccountSchema = schema.MustRegister(EmptyPaymentAccountsTable, `{
  "type": "record",
  "name": "EmptyPaymentAccount",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "accept_payment", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "payout_ticket", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "master_edition_metadata", "type": ["null", "string"], "default": null},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "auction_token_tracker", "type": "string"},
    {"name": "safety_deposit_config", "type": "string"},
    {"name": "winning_config_index", "type": ["null", "int"], "default": null},
    {"name": "winning_config_item_index", "type": ["null", "int"], "default": null},
    {"name": "creator_index", "type": ["null", "int"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// StoreUpdateRow SetStore 与 SetStoreV2 共用，store_config / settings_uri 仅 v2 有值
type StoreUpdateRow struct {
	TxHash      string  `avro:"tx_hash"`
	Version     int16   `avro:"version"`
	Store       string  `avro:"store"`
	StoreConfig *string `avro:"store_config"`
	Admin       string  `avro:"admin"`
	Payer       string  `avro:"payer"`
	Public      bool    `avro:"public"`
	SettingsURI *string `avro:"settings_uri"`
	Timestamp   int64   `avro:"timestamp"`
}

var storeUpdateSchema = schema.MustRegister(StoreUpdatesTable, `{
  "type": "record",
  "name": "StoreUpdate",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "version", "type": "int"},
    {"name": "store", "type": "string"},
    {"name": "store_config", "type": ["null", "string"], "default": null},
    {"name": "admin", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "public", "type": "boolean"},
    {"name": "settings_uri", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type WhitelistedCreatorRow struct {
	TxHash             string `avro:"tx_hash"`
	WhitelistedCreator string `avro:"whitelisted_creator"`
	Admin              string `avro:"admin"`
	Payer              string `avro:"payer"`
	Creator            string `avro:"creator"`
	Store              string `avro:"store"`
	Activated          bool   `avro:"activated"`
	Timestamp          int64  `avro:"timestamp"`
}

var whitelistedCreatorSchema = schema.MustRegister(WhitelistedCreatorsTable, `{
  "type": "record",
  "name": "WhitelistedCreator",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "whitelisted_creator", "type": "string"},
    {"name": "admin", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "creator", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "activated", "type": "boolean"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type ParticipationValidationRow struct {
	TxHash                            string `avro:"tx_hash"`
	AuctionManager                    string `avro:"auction_manager"`
	OpenMasterEditionMetadata         string `avro:"open_master_edition_metadata"`
	PrintingAuthorizationTokenAccount string `avro:"printing_authorization_token_account"`
	Authority                         string `avro:"authority"`
	Store                             string `avro:"store"`
	SafetyDepositBox                  string `avro:"safety_deposit_box"`
	SafetyDepositTokenStore           string `avro:"safety_deposit_token_store"`
	Vault                             string `avro:"vault"`
	Timestamp                         int64  `avro:"timestamp"`
}

var participationValidationSchema = schema.MustRegister(ParticipationValidationsTable, `{
  "type": "record",
  "name": "ParticipationValidation",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "open_master_edition_metadata", "type": "string"},
    {"name": "printing_authorization_token_account", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "safety_deposit_token_store", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type ParticipationPrintingPopulationRow struct {
	TxHash                           string `avro:"tx_hash"`
	SafetyDepositTokenStore          string `avro:"safety_deposit_token_store"`
	TransientPrintingTokenAccount    string `avro:"transient_printing_token_account"`
	OneTimePrintingAuthorizationMint string `avro:"one_time_printing_authorization_mint"`
	PrintingMint                     string `avro:"printing_mint"`
	ParticipationTokenAccount        string `avro:"participation_token_account"`
	Edition                          string `avro:"edition"`
	Vault                            string `avro:"vault"`
	Auction                          string `avro:"auction"`
	AuctionManager                   string `avro:"auction_manager"`
	SafetyDepositBox                 string `avro:"safety_deposit_box"`
	Authority                        string `avro:"authority"`
	Store                            string `avro:"store"`
	Timestamp                        int64  `avro:"timestamp"`
}

var participationPrintingPopulationSchema = schema.MustRegister(ParticipationPrintingPopulationsTable, `{
  "type": "record",
  "name": "ParticipationPrintingPopulation",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "safety_deposit_token_store", "type": "string"},
    {"name": "transient_printing_token_account", "type": "string"},
    {"name": "one_time_printing_authorization_mint", "type": "string"},
    {"name": "printing_mint", "type": "string"},
    {"name": "participation_token_account", "type": "string"},
    {"name": "edition", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type UnusedWinningConfigItemRedemptionRow struct {
	TxHash                    string `avro:"tx_hash"`
	AuctionManager            string `avro:"auction_manager"`
	SafetyDepositTokenStorage string `avro:"safety_deposit_token_storage"`
	Destination               string `avro:"destination"`
	BidRedemption             string `avro:"bid_redemption"`
	SafetyDepositBox          string `avro:"safety_deposit_box"`
	Vault                     string `avro:"vault"`
	Auction                   string `avro:"auction"`
	Payer                     string `avro:"payer"`
	Store                     string `avro:"store"`
	WinningConfigItemIndex    int16  `avro:"winning_config_item_index"`
	WinningConfigItem         string `avro:"winning_config_item"`
	ProxyCall                 int16  `avro:"proxy_call"`
	Timestamp                 int64  `avro:"timestamp"`
}

var unusedWinningConfigItemRedemptionSchema = schema.MustRegister(UnusedWinningConfigItemRedemptionsTable, `{
  "type": "record",
  "name": "UnusedWinningConfigItemRedemption",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "bid_redemption", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "winning_config_item_index", "type": "int"},
    {"name": "winning_config_item", "type": "string"},
    {"name": "proxy_call", "type": "int"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type DecommissionRow struct {
	TxHash         string  `avro:"tx_hash"`
	AuctionManager string  `avro:"auction_manager"`
	Auction        string  `avro:"auction"`
	Authority      string  `avro:"authority"`
	Vault          string  `avro:"vault"`
	Store          string  `avro:"store"`
	AuctionProgram string  `avro:"auction_program"`
	VaultProgram   *string `avro:"vault_program"`
	Timestamp      int64   `avro:"timestamp"`
}

var decommissionSchema = schema.MustRegister(DecommissionsTable, `{
  "type": "record",
  "name": "Decommission",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "auction_program", "type": "string"},
    {"name": "vault_program", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type PrintingV2RedemptionRow struct {
	TxHash                    string `avro:"tx_hash"`
	AuctionManager            string `avro:"auction_manager"`
	SafetyDepositTokenStorage string `avro:"safety_deposit_token_storage"`
	Destination               string `avro:"destination"`
	BidRedemption             string `avro:"bid_redemption"`
	SafetyDepositBox          string `avro:"safety_deposit_box"`
	Vault                     string `avro:"vault"`
	SafetyDepositConfig       string `avro:"safety_deposit_config"`
	Auction                   string `avro:"auction"`
	BidderMetadata            string `avro:"bidder_metadata"`
	Bidder                    string `avro:"bidder"`
	Payer                     string `avro:"payer"`
	Store                     string `avro:"store"`
	PrizeTrackingTicket       string `avro:"prize_tracking_ticket"`
	NewMetadata               string `avro:"new_metadata"`
	NewEdition                string `avro:"new_edition"`
	MasterEdition             string `avro:"master_edition"`
	NewMint                   string `avro:"new_mint"`
	EditionMark               string `avro:"edition_mark"`
	MintAuthority             string `avro:"mint_authority"`
	Metadata                  string `avro:"metadata"`
	AuctionExtended           string `avro:"auction_extended"`
	EditionOffset             int64  `avro:"edition_offset"`
	WinIndex                  int64  `avro:"win_index"`
	Timestamp                 int64  `avro:"timestamp"`
}

var printingV2RedemptionSchema = schema.MustRegister(PrintingV2RedemptionsTable, `{
  "type": "record",
  "name": "PrintingV2Redemption",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "bid_redemption", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "safety_deposit_config", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "bidder_metadata", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "prize_tracking_ticket", "type": "string"},
    {"name": "new_metadata", "type": "string"},
    {"name": "new_edition", "type": "string"},
    {"name": "master_edition", "type": "string"},
    {"name": "new_mint", "type": "string"},
    {"name": "edition_mark", "type": "string"},
    {"name": "mint_authority", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "auction_extended", "type": "string"},
    {"name": "edition_offset", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "win_index", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type MasterEditionWithdrawalRow struct {
	TxHash                    string `avro:"tx_hash"`
	AuctionManager            string `avro:"auction_manager"`
	SafetyDepositTokenStorage string `avro:"safety_deposit_token_storage"`
	Destination               string `avro:"destination"`
	SafetyDepositBox          string `avro:"safety_deposit_box"`
	Vault                     string `avro:"vault"`
	FractionMint              string `avro:"fraction_mint"`
	PrizeTrackingTicket       string `avro:"prize_tracking_ticket"`
	VaultAuthority            string `avro:"vault_authority"`
	Auction                   string `avro:"auction"`
	Store                     string `avro:"store"`
	SafetyDepositConfig       string `avro:"safety_deposit_config"`
	AuctionExtended           string `avro:"auction_extended"`
	Timestamp                 int64  `avro:"timestamp"`
}

var masterEditionWithdrawalSchema = schema.MustRegister(MasterEditionWithdrawalsTable, `{
  "type": "record",
  "name": "MasterEditionWithdrawal",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "safety_deposit_token_storage", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "fraction_mint", "type": "string"},
    {"name": "prize_tracking_ticket", "type": "string"},
    {"name": "vault_authority", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "safety_deposit_config", "type": "string"},
    {"name": "auction_extended", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// InitAuctionManagerV2Row amount_type / length_type 为字节宽度 1 / 2 / 4 / 8
type InitAuctionManagerV2Row struct {
	TxHash               string `avro:"tx_hash"`
	AuctionManager       string `avro:"auction_manager"`
	AuctionTokenTracker  string `avro:"auction_token_tracker"`
	Vault                string `avro:"vault"`
	Auction              string `avro:"auction"`
	Authority            string `avro:"authority"`
	Payer                string `avro:"payer"`
	AcceptPaymentAccount string `avro:"accept_payment_account"`
	Store                string `avro:"store"`
	AmountType           int16  `avro:"amount_type"`
	LengthType           int16  `avro:"length_type"`
	MaxRanges            int64  `avro:"max_ranges"`
	Timestamp            int64  `avro:"timestamp"`
}

var initAuctionManagerV2Schema = schema.MustRegister(InitAuctionManagersV2Table, `{
  "type": "record",
  "name": "InitAuctionManagerV2",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "auction_token_tracker", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "accept_payment_account", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "amount_type", "type": "int"},
    {"name": "length_type", "type": "int"},
    {"name": "max_ranges", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type SafetyDepositValidationV2Row struct {
	TxHash                            string  `avro:"tx_hash"`
	SafetyDepositConfig               string  `avro:"safety_deposit_config"`
	AuctionTokenTracker               string  `avro:"auction_token_tracker"`
	AuctionManager                    string  `avro:"auction_manager"`
	Metadata                          string  `avro:"metadata"`
	OriginalAuthorityLookup           string  `avro:"original_authority_lookup"`
	WhitelistedCreator                string  `avro:"whitelisted_creator"`
	Store                             string  `avro:"store"`
	SafetyDepositBox                  string  `avro:"safety_deposit_box"`
	SafetyDepositTokenStore           string  `avro:"safety_deposit_token_store"`
	Mint                              string  `avro:"mint"`
	Edition                           string  `avro:"edition"`
	Vault                             string  `avro:"vault"`
	Authority                         string  `avro:"authority"`
	MetadataAuthority                 *string `avro:"metadata_authority"`
	Payer                             string  `avro:"payer"`
	Order                             int64   `avro:"order"`
	WinningConfigType                 int16   `avro:"winning_config_type"`
	AmountType                        int16   `avro:"amount_type"`
	LengthType                        int16   `avro:"length_type"`
	AmountRangeAmounts                []int64 `avro:"amount_range_amounts"`
	AmountRangeLengths                []int64 `avro:"amount_range_lengths"`
	ParticipationWinnerConstraint     *int16  `avro:"participation_winner_constraint"`
	ParticipationNonWinningConstraint *int16  `avro:"participation_non_winning_constraint"`
	ParticipationFixedPrice           *int64  `avro:"participation_fixed_price"`
	CollectedToAcceptPayment          *int64  `avro:"collected_to_accept_payment"`
	Timestamp                         int64   `avro:"timestamp"`
}

var safetyDepositValidationV2Schema = schema.MustRegister(SafetyDepositValidationsV2Table, `{
  "type": "record",
  "name": "SafetyDepositValidationV2",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "safety_deposit_config", "type": "string"},
    {"name": "auction_token_tracker", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "original_authority_lookup", "type": "string"},
    {"name": "whitelisted_creator", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "safety_deposit_token_store", "type": "string"},
    {"name": "mint", "type": "string"},
    {"name": "edition", "type": "string"},
    {"name": "vault", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "metadata_authority", "type": ["null", "string"], "default": null},
    {"name": "payer", "type": "string"},
    {"name": "order", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "winning_config_type", "type": "int"},
    {"name": "amount_type", "type": "int"},
    {"name": "length_type", "type": "int"},
    {"name": "amount_range_amounts", "type": {"type": "array", "items": "long"}},
    {"name": "amount_range_lengths", "type": {"type": "array", "items": "long"}},
    {"name": "participation_winner_constraint", "type": ["null", "int"], "default": null},
    {"name": "participation_non_winning_constraint", "type": ["null", "int"], "default": null},
    {"name": "participation_fixed_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "collected_to_accept_payment", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type AuctionEndRow struct {
	TxHash          string `avro:"tx_hash"`
	AuctionManager  string `avro:"auction_manager"`
	Auction         string `avro:"auction"`
	AuctionExtended string `avro:"auction_extended"`
	Authority       string `avro:"authority"`
	Store           string `avro:"store"`
	RevealPrice     *int64 `avro:"reveal_price"`
	RevealSalt      *int64 `avro:"reveal_salt"`
	Timestamp       int64  `avro:"timestamp"`
}

var auctionEndSchema = schema.MustRegister(AuctionEndsTable, `{
  "type": "record",
  "name": "AuctionEnd",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "auction_extended", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "reveal_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "reveal_salt", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type StoreIndexRow struct {
	TxHash       string  `avro:"tx_hash"`
	StoreIndex   string  `avro:"store_index"`
	Payer        string  `avro:"payer"`
	AuctionCache string  `avro:"auction_cache"`
	Store        string  `avro:"store"`
	Page         int64   `avro:"page"`
	Offset       int64   `avro:"offset"`
	AboveCache   *string `avro:"above_cache"`
	BelowCache   *string `avro:"below_cache"`
	Timestamp    int64   `avro:"timestamp"`
}

var storeIndexSchema = schema.MustRegister(StoreIndexesTable, `{
  "type": "record",
  "name": "StoreIndex",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "store_index", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "auction_cache", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "page", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "offset", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "above_cache", "type": ["null", "string"], "default": null},
    {"name": "below_cache", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type AuctionCacheRow struct {
	TxHash           string `avro:"tx_hash"`
	AuctionCache     string `avro:"auction_cache"`
	Payer            string `avro:"payer"`
	Auction          string `avro:"auction"`
	SafetyDepositBox string `avro:"safety_deposit_box"`
	AuctionManager   string `avro:"auction_manager"`
	Store            string `avro:"store"`
	Timestamp        int64  `avro:"timestamp"`
}

var auctionCacheSchema = schema.MustRegister(AuctionCachesTable, `{
  "type": "record",
  "name": "AuctionCache",
  "namespace": "io.solana.decoder.auctionmanager",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_cache", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "auction", "type": "string"},
    {"name": "safety_deposit_box", "type": "string"},
    {"name": "auction_manager", "type": "string"},
    {"name": "store", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)
