package auction

import (
	"ix-decoder-sol/internal/schema"
)

const (
	CancelledBidsTable    = "metaplex_auction_cancelled_bids"
	CreatedAuctionsTable  = "metaplex_auction_created_auctions"
	ClaimedBidsTable      = "metaplex_auction_claimed_bids"
	EndedAuctionsTable    = "metaplex_auction_ended_auctions"
	StartedAuctionsTable  = "metaplex_auction_started_auctions"
	AuthorityChangesTable = "metaplex_auction_authority_changes"
	PlacedBidsTable       = "metaplex_auction_placed_bids"
)

type CancelledBidRow struct {
	TxHash             string `avro:"tx_hash"`
	Bidder             string `avro:"bidder"`
	BidderTokenAccount string `avro:"bidder_token_account"`
	Pot                string `avro:"pot"`
	PotAccount         string `avro:"pot_account"`
	Metadata           string `avro:"metadata"`
	AuctionAccount     string `avro:"auction_account"`
	Mint               string `avro:"mint"`
	Resource           string `avro:"resource"`
	Timestamp          int64  `avro:"timestamp"`
}

var cancelledBidSchema = schema.MustRegister(CancelledBidsTable, `{
  "type": "record",
  "name": "CancelledBid",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "bidder_token_account", "type": "string"},
    {"name": "pot", "type": "string"},
    {"name": "pot_account", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "mint", "type": "string"},
    {"name": "resource", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// CreatedAuctionRow v1 与 v2 共用，v1 的 instant_sale_price / name 恒为 null
type CreatedAuctionRow struct {
	TxHash                string  `avro:"tx_hash"`
	Version               int16   `avro:"version"`
	Creator               string  `avro:"creator"`
	AuctionAccount        string  `avro:"auction_account"`
	AuctionExtended       string  `avro:"auction_extended"`
	WinnerLimit           int64   `avro:"winner_limit"`
	EndAuctionAt          *int64  `avro:"end_auction_at"`
	EndAuctionGap         *int64  `avro:"end_auction_gap"`
	TokenMint             string  `avro:"token_mint"`
	Authority             string  `avro:"authority"`
	Resource              string  `avro:"resource"`
	PriceFloorType        int16   `avro:"price_floor_type"`
	MinimumPrice          *int64  `avro:"minimum_price"`
	TickSize              *int64  `avro:"tick_size"`
	GapTickSizePercentage *int16  `avro:"gap_tick_size_percentage"`
	InstantSalePrice      *int64  `avro:"instant_sale_price"`
	Name                  *string `avro:"name"`
	Timestamp             int64   `avro:"timestamp"`
}

var createdAuctionSchema = schema.MustRegister(CreatedAuctionsTable, `{
  "type": "record",
  "name": "CreatedAuction",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "version", "type": "int"},
    {"name": "creator", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "auction_extended", "type": "string"},
    {"name": "winner_limit", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "end_auction_at", "type": ["null", "long"], "default": null},
    {"name": "end_auction_gap", "type": ["null", "long"], "default": null},
    {"name": "token_mint", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "resource", "type": "string"},
    {"name": "price_floor_type", "type": "int"},
    {"name": "minimum_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "tick_size", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "gap_tick_size_percentage", "type": ["null", "int"], "default": null},
    {"name": "instant_sale_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "name", "type": ["null", "string"], "default": null},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type ClaimedBidRow struct {
	TxHash         string `avro:"tx_hash"`
	Destination    string `avro:"destination"`
	PotAccount     string `avro:"pot_account"`
	Pot            string `avro:"pot"`
	Authority      string `avro:"authority"`
	AuctionAccount string `avro:"auction_account"`
	Bidder         string `avro:"bidder"`
	Mint           string `avro:"mint"`
	Resource       string `avro:"resource"`
	Timestamp      int64  `avro:"timestamp"`
}

var claimedBidSchema = schema.MustRegister(ClaimedBidsTable, `{
  "type": "record",
  "name": "ClaimedBid",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "pot_account", "type": "string"},
    {"name": "pot", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "mint", "type": "string"},
    {"name": "resource", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type EndedAuctionRow struct {
	TxHash         string `avro:"tx_hash"`
	Authority      string `avro:"authority"`
	AuctionAccount string `avro:"auction_account"`
	Resource       string `avro:"resource"`
	RevealPrice    *int64 `avro:"reveal_price"`
	RevealSalt     *int64 `avro:"reveal_salt"`
	Timestamp      int64  `avro:"timestamp"`
}

var endedAuctionSchema = schema.MustRegister(EndedAuctionsTable, `{
  "type": "record",
  "name": "EndedAuction",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "resource", "type": "string"},
    {"name": "reveal_price", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "reveal_salt", "type": ["null", "long"], "default": null, "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type StartedAuctionRow struct {
	TxHash         string `avro:"tx_hash"`
	Authority      string `avro:"authority"`
	AuctionAccount string `avro:"auction_account"`
	Resource       string `avro:"resource"`
	Timestamp      int64  `avro:"timestamp"`
}

var startedAuctionSchema = schema.MustRegister(StartedAuctionsTable, `{
  "type": "record",
  "name": "StartedAuction",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "resource", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type AuthorityChangeRow struct {
	TxHash         string `avro:"tx_hash"`
	AuctionAccount string `avro:"auction_account"`
	Authority      string `avro:"authority"`
	NewAuthority   string `avro:"new_authority"`
	Timestamp      int64  `avro:"timestamp"`
}

var authorityChangeSchema = schema.MustRegister(AuthorityChangesTable, `{
  "type": "record",
  "name": "AuthorityChange",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "new_authority", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

type PlacedBidRow struct {
	TxHash             string `avro:"tx_hash"`
	Bidder             string `avro:"bidder"`
	BidderTokenAccount string `avro:"bidder_token_account"`
	Pot                string `avro:"pot"`
	PotAccount         string `avro:"pot_account"`
	Metadata           string `avro:"metadata"`
	AuctionAccount     string `avro:"auction_account"`
	AuctionExtended    string `avro:"auction_extended"`
	Mint               string `avro:"mint"`
	TransferAuthority  string `avro:"transfer_authority"`
	Payer              string `avro:"payer"`
	Amount             int64  `avro:"amount"`
	Resource           string `avro:"resource"`
	Timestamp          int64  `avro:"timestamp"`
}

var placedBidSchema = schema.MustRegister(PlacedBidsTable, `{
  "type": "record",
  "name": "PlacedBid",
  "namespace": "io.solana.decoder.auction",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "bidder", "type": "string"},
    {"name": "bidder_token_account", "type": "string"},
    {"name": "pot", "type": "string"},
    {"name": "pot_account", "type": "string"},
    {"name": "metadata", "type": "string"},
    {"name": "auction_account", "type": "string"},
    {"name": "auction_extended", "type": "string"},
    {"name": "mint", "type": "string"},
    {"name": "transfer_authority", "type": "string"},
    {"name": "payer", "type": "string"},
    {"name": "amount", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "resource", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)
