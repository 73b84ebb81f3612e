package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BridgeInitiated is the decoded bridge-initiated event payload.
type BridgeInitiated struct {
	TransferID  common.Hash
	Sender      common.Address
	Recipient   common.Address
	Amount      *big.Int
	DestChainID *big.Int
	Fee         *big.Int
}

// IsBridgeInitiated reports whether the log's topic0 is the BridgeInitiated event id.
func IsBridgeInitiated(log *types.Log) bool {
	if log == nil || len(log.Topics) == 0 {
		return false
	}
	bridgeABI, err := BridgeABI()
	if err != nil {
		return false
	}
	return log.Topics[0] == bridgeABI.Events["BridgeInitiated"].ID
}

// DecodeBridgeInitiated decodes a BridgeInitiated log.
func DecodeBridgeInitiated(log *types.Log) (BridgeInitiated, error) {
	bridgeABI, err := BridgeABI()
	if err != nil {
		return BridgeInitiated{}, fmt.Errorf("parse bridge abi: %w", err)
	}
	if !IsBridgeInitiated(log) {
		return BridgeInitiated{}, fmt.Errorf("not a BridgeInitiated log")
	}

	event := bridgeABI.Events["BridgeInitiated"]
	indexed := indexedArguments(event.Inputs)
	if len(log.Topics) != len(indexed)+1 {
		return BridgeInitiated{}, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(log.Topics))
	}

	var topics struct {
		TransferId [32]byte
		Sender     common.Address
	}
	if err := abi.ParseTopics(&topics, indexed, log.Topics[1:]); err != nil {
		return BridgeInitiated{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return BridgeInitiated{}, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	if len(values) != 4 {
		return BridgeInitiated{}, fmt.Errorf("unexpected BridgeInitiated values: %d", len(values))
	}

	recipient, err := AsAddress(values[0])
	if err != nil {
		return BridgeInitiated{}, err
	}
	amount, err := AsBigInt(values[1])
	if err != nil {
		return BridgeInitiated{}, err
	}
	destChainID, err := AsBigInt(values[2])
	if err != nil {
		return BridgeInitiated{}, err
	}
	fee, err := AsBigInt(values[3])
	if err != nil {
		return BridgeInitiated{}, err
	}

	return BridgeInitiated{
		TransferID:  common.Hash(topics.TransferId),
		Sender:      topics.Sender,
		Recipient:   recipient,
		Amount:      amount,
		DestChainID: destChainID,
		Fee:         fee,
	}, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}
