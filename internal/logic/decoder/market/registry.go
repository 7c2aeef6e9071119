package market

import (
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/schema"
)

const TableName = "market_instructions"

var instructionSetSchema = schema.MustRegisterParsed(TableName, schema.InstructionSet)

// RegisterHandlers 注册 serum dex v2 / v3
func RegisterHandlers(m map[string]common.InstructionHandler) {
	m[consts.SerumDexV2ProgramStr] = handleInstruction
	m[consts.SerumDexV3ProgramStr] = handleInstruction
}

func handleInstruction(ix *core.Instruction) ([]*core.TableData, error) {
	set, err := DecodeInstructionSet(ix)
	if err != nil {
		return nil, err
	}
	return common.WrapInstructionSet(instructionSetSchema, TableName, set), nil
}

func DecodeInstructionSet(ix *core.Instruction) (*core.InstructionSet, error) {
	inst, err := ParseInstruction(ix.Data)
	if err != nil {
		return nil, err
	}

	bag := common.NewPropertyBag(ix.Timestamp)
	var name string
	switch v := inst.(type) {
	case *InitializeMarket:
		name = "initialize-market"
		bag.Uint("coin_lot_size", v.CoinLotSize, "").
			Uint("pc_lot_size", v.PcLotSize, "").
			Uint("fee_rate_bps", uint64(v.FeeRateBps), "").
			Uint("vault_signer_nonce", v.VaultSignerNonce, "").
			Uint("pc_dust_threshold", v.PcDustThreshold, "")
	case *NewOrder:
		name = "new-order"
		addNewOrder(bag, v)
	case *MatchOrders:
		name = "match-orders"
		bag.Uint("limit", uint64(v.Limit), "")
	case *ConsumeEvents:
		name = "consume-events"
		bag.Uint("limit", uint64(v.Limit), "")
	case *CancelOrder:
		name = "cancel-order"
		bag.Uint("side", uint64(v.Side), "").
			Add("order_id", v.OrderID, "").
			Pubkey("owner", v.Owner, "").
			Uint("owner_slot", uint64(v.OwnerSlot), "")
	case *SettleFunds:
		name = "settle-funds"
	case *CancelOrderByClientID:
		name = "cancel-order-by-client-id"
		bag.Uint("client_id", v.ClientID, "")
	case *DisableMarket:
		name = "disable-market"
	case *SweepFees:
		name = "sweep-fees"
	case *NewOrderV2:
		name = "new-order-v2"
		addNewOrder(bag, &v.NewOrder)
		bag.Uint("self_trade_behavior", uint64(v.SelfTradeBehavior), "")
	case *NewOrderV3:
		name = "new-order-v3"
		bag.Uint("side", uint64(v.Side), "").
			Uint("limit_price", v.LimitPrice, "").
			Uint("max_coin_qty", v.MaxCoinQty, "").
			Uint("max_native_pc_qty_including_fees", v.MaxNativePcQtyIncludingFees, "").
			Uint("self_trade_behavior", uint64(v.SelfTradeBehavior), "").
			Uint("order_type", uint64(v.OrderType), "").
			Uint("client_order_id", v.ClientOrderID, "").
			Uint("limit", uint64(v.Limit), "")
		if v.MaxTs != nil {
			bag.Int("max_ts", *v.MaxTs, "")
		}
	case *CancelOrderV2:
		name = "cancel-order-v2"
		bag.Uint("side", uint64(v.Side), "").
			Add("order_id", v.OrderID, "")
	case *CancelOrderByClientIDV2:
		name = "cancel-order-by-client-id-v2"
		bag.Uint("client_id", v.ClientID, "")
	case *SendTake:
		name = "send-take"
		bag.Uint("side", uint64(v.Side), "").
			Uint("limit_price", v.LimitPrice, "").
			Uint("max_coin_qty", v.MaxCoinQty, "").
			Uint("max_native_pc_qty_including_fees", v.MaxNativePcQtyIncludingFees, "").
			Uint("min_coin_qty", v.MinCoinQty, "").
			Uint("min_native_pc_qty", v.MinNativePcQty, "").
			Uint("limit", uint64(v.Limit), "")
	case *CloseOpenOrders:
		name = "close-open-orders"
	case *InitOpenOrders:
		name = "init-open-orders"
	case *Prune:
		name = "prune"
		bag.Uint("limit", uint64(v.Limit), "")
	case *ConsumeEventsPermissioned:
		name = "consume-events-permissioned"
		bag.Uint("limit", uint64(v.Limit), "")
	case *CancelOrdersByClientIDs:
		name = "cancel-orders-by-client-ids"
		for _, id := range v.ClientIDs {
			if id == 0 {
				continue
			}
			bag.Uint("client_id", id, "client_ids")
		}
	default:
		return nil, common.DecodeErrorf("unhandled market instruction %T", inst)
	}
	return common.BuildInstructionSet(ix, name, bag), nil
}

func addNewOrder(bag *common.PropertyBag, v *NewOrder) {
	bag.Uint("side", uint64(v.Side), "").
		Uint("limit_price", v.LimitPrice, "").
		Uint("max_qty", v.MaxQty, "").
		Uint("order_type", uint64(v.OrderType), "").
		Uint("client_id", v.ClientID, "")
}
