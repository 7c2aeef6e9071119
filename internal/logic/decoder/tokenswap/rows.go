package tokenswap

import (
	"ix-decoder-sol/internal/schema"
)

const (
	InitializationsTable = "token_swap_initializations"
	SwapsTable           = "token_swap_swaps"
	PegFlowsTable        = "token_swap_peg_flows"
)

type InitializationRow struct {
	TxHash                      string `avro:"tx_hash"`
	Swap                        string `avro:"swap"`
	Authority                   string `avro:"authority"`
	TokenA                      string `avro:"token_a"`
	TokenB                      string `avro:"token_b"`
	PoolMint                    string `avro:"pool_mint"`
	FeeAccount                  string `avro:"fee_account"`
	Destination                 string `avro:"destination"`
	TradeFeeNumerator           int64  `avro:"trade_fee_numerator"`
	TradeFeeDenominator         int64  `avro:"trade_fee_denominator"`
	OwnerTradeFeeNumerator      int64  `avro:"owner_trade_fee_numerator"`
	OwnerTradeFeeDenominator    int64  `avro:"owner_trade_fee_denominator"`
	OwnerWithdrawFeeNumerator   int64  `avro:"owner_withdraw_fee_numerator"`
	OwnerWithdrawFeeDenominator int64  `avro:"owner_withdraw_fee_denominator"`
	HostFeeNumerator            int64  `avro:"host_fee_numerator"`
	HostFeeDenominator          int64  `avro:"host_fee_denominator"`
	CurveType                   int16  `avro:"curve_type"`
	CurveParameters             string `avro:"curve_parameters"`
	Timestamp                   int64  `avro:"timestamp"`
}

var initializationSchema = schema.MustRegister(InitializationsTable, `{
  "type": "record",
  "name": "Initialization",
  "namespace": "io.solana.decoder.tokenswap",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "swap", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "token_a", "type": "string"},
    {"name": "token_b", "type": "string"},
    {"name": "pool_mint", "type": "string"},
    {"name": "fee_account", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "trade_fee_numerator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "trade_fee_denominator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "owner_trade_fee_numerator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "owner_trade_fee_denominator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "owner_withdraw_fee_numerator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "owner_withdraw_fee_denominator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "host_fee_numerator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "host_fee_denominator", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "curve_type", "type": "int"},
    {"name": "curve_parameters", "type": "string"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// SwapRow 普通 swap 一行；routed swap 按 leg 拆成两行
type SwapRow struct {
	TxHash                string  `avro:"tx_hash"`
	Kind                  int16   `avro:"kind"`
	Leg                   int16   `avro:"leg"`
	Swap                  string  `avro:"swap"`
	Authority             string  `avro:"authority"`
	UserTransferAuthority string  `avro:"user_transfer_authority"`
	Source                string  `avro:"source"`
	SwapSource            string  `avro:"swap_source"`
	SwapDestination       string  `avro:"swap_destination"`
	Destination           string  `avro:"destination"`
	PoolMint              string  `avro:"pool_mint"`
	PoolFee               string  `avro:"pool_fee"`
	HostFee               *string `avro:"host_fee"`
	AmountIn              int64   `avro:"amount_in"`
	MinimumAmountOut      int64   `avro:"minimum_amount_out"`
	Timestamp             int64   `avro:"timestamp"`
}

var swapSchema = schema.MustRegister(SwapsTable, `{
  "type": "record",
  "name": "Swap",
  "namespace": "io.solana.decoder.tokenswap",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "kind", "type": "int"},
    {"name": "leg", "type": "int"},
    {"name": "swap", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "user_transfer_authority", "type": "string"},
    {"name": "source", "type": "string"},
    {"name": "swap_source", "type": "string"},
    {"name": "swap_destination", "type": "string"},
    {"name": "destination", "type": "string"},
    {"name": "pool_mint", "type": "string"},
    {"name": "pool_fee", "type": "string"},
    {"name": "host_fee", "type": ["null", "string"], "default": null},
    {"name": "amount_in", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "minimum_amount_out", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)

// PegFlowRow 双币种存取按 token a / token b 拆成两行，pool token 数量对半拆分
type PegFlowRow struct {
	TxHash                string  `avro:"tx_hash"`
	FlowType              int16   `avro:"flow_type"`
	Leg                   int16   `avro:"leg"`
	Swap                  string  `avro:"swap"`
	Authority             string  `avro:"authority"`
	UserTransferAuthority string  `avro:"user_transfer_authority"`
	Source                string  `avro:"source"`
	Target                string  `avro:"target"`
	PoolMint              string  `avro:"pool_mint"`
	PoolAccount           string  `avro:"pool_account"`
	PoolFeeAccount        *string `avro:"pool_fee_account"`
	PoolTokenAmount       int64   `avro:"pool_token_amount"`
	TokenAmountLimit      int64   `avro:"token_amount_limit"`
	Timestamp             int64   `avro:"timestamp"`
}

var pegFlowSchema = schema.MustRegister(PegFlowsTable, `{
  "type": "record",
  "name": "PegFlow",
  "namespace": "io.solana.decoder.tokenswap",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "flow_type", "type": "int"},
    {"name": "leg", "type": "int"},
    {"name": "swap", "type": "string"},
    {"name": "authority", "type": "string"},
    {"name": "user_transfer_authority", "type": "string"},
    {"name": "source", "type": "string"},
    {"name": "target", "type": "string"},
    {"name": "pool_mint", "type": "string"},
    {"name": "pool_account", "type": "string"},
    {"name": "pool_fee_account", "type": ["null", "string"], "default": null},
    {"name": "pool_token_amount", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "token_amount_limit", "type": "long", "doc": "u64 stored as two's complement long; read as unsigned"},
    {"name": "timestamp", "type": "long"}
  ]
}`)
