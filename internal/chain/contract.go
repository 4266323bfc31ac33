package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// 托管工厂合约ABI定义（简化版），部署工具未提供ABI文件时使用
const factoryABI = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "projectId", "type": "uint256"},
			{"indexed": true, "name": "projectAddress", "type": "address"},
			{"indexed": false, "name": "owner", "type": "address"}
		],
		"name": "ProjectCreated",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "donor", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		],
		"name": "DonationReceived",
		"type": "event"
	}
]`

// Contract 合约事件解码工具类
type Contract struct {
	abi          abi.ABI // 合约ABI
	createdEvent string  // 项目创建事件名称
}

// NewContract 创建合约实例
// ABI由部署工具提供，支持完整编译输出和纯ABI数组两种格式
func NewContract(cfg config.ChainConfig) (*Contract, error) {
	abiData := []byte(factoryABI)

	if cfg.FactoryABI != "" {
		data, err := os.ReadFile(cfg.FactoryABI)
		if err != nil {
			return nil, fmt.Errorf("failed to load ABI from %s: %w", cfg.FactoryABI, err)
		}
		abiData = data
	}

	parsedABI, err := parseABI(abiData)
	if err != nil {
		return nil, err
	}

	createdEvent := cfg.CreatedEvent
	if createdEvent == "" {
		createdEvent = "ProjectCreated"
	}
	if _, ok := parsedABI.Events[createdEvent]; !ok {
		return nil, fmt.Errorf("event %s not found in ABI", createdEvent)
	}

	return &Contract{
		abi:          parsedABI,
		createdEvent: createdEvent,
	}, nil
}

// NewContractFromABI 从ABI字符串创建合约实例
func NewContractFromABI(abiJSON, createdEvent string) (*Contract, error) {
	parsedABI, err := parseABI([]byte(abiJSON))
	if err != nil {
		return nil, err
	}
	if _, ok := parsedABI.Events[createdEvent]; !ok {
		return nil, fmt.Errorf("event %s not found in ABI", createdEvent)
	}

	return &Contract{
		abi:          parsedABI,
		createdEvent: createdEvent,
	}, nil
}

// parseABI 解析ABI数据
func parseABI(abiData []byte) (abi.ABI, error) {
	// 尝试解析为完整的编译输出文件
	var compiledOutput struct {
		ABI json.RawMessage `json:"abi"`
	}

	if err := json.Unmarshal(abiData, &compiledOutput); err == nil && compiledOutput.ABI != nil {
		// 从编译输出中提取ABI
		parsedABI, err := abi.JSON(bytes.NewReader(compiledOutput.ABI))
		if err != nil {
			return abi.ABI{}, fmt.Errorf("failed to parse ABI from compiled output: %w", err)
		}
		return parsedABI, nil
	}

	// 如果不是完整编译输出，尝试直接解析为ABI数组
	parsedABI, err := abi.JSON(bytes.NewReader(abiData))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsedABI, nil
}

// GetABI 获取合约ABI
func (c *Contract) GetABI() abi.ABI {
	return c.abi
}

// CreatedEventName 获取项目创建事件名称
func (c *Contract) CreatedEventName() string {
	return c.createdEvent
}

// ParseEvent 解析事件日志
func (c *Contract) ParseEvent(log types.Log) (map[string]interface{}, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("log has no topics")
	}

	eventSignature := log.Topics[0].Hex()

	// 遍历ABI中的事件
	for eventName, event := range c.abi.Events {
		if event.ID.Hex() == eventSignature {
			return c.parseEvent(eventName, log, event)
		}
	}

	return nil, fmt.Errorf("unknown event signature: %s", eventSignature)
}

// parseEvent 解析事件
func (c *Contract) parseEvent(eventName string, log types.Log, event abi.Event) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	result["eventName"] = eventName
	result["txHash"] = log.TxHash.Hex()
	result["blockNumber"] = log.BlockNumber
	result["logIndex"] = log.Index

	// 解析索引参数
	topicIndex := 1
	for _, input := range event.Inputs {
		if !input.Indexed {
			continue
		}
		if topicIndex >= len(log.Topics) {
			break
		}
		value, err := c.parseTopicValue(log.Topics[topicIndex], input.Type)
		if err != nil {
			logger.Warn("Failed to parse indexed parameter %s: %v", input.Name, err)
			topicIndex++
			continue
		}
		result[input.Name] = value
		topicIndex++
	}

	// 解析非索引参数
	if len(log.Data) > 0 {
		nonIndexedInputs := make([]abi.Argument, 0)
		for _, input := range event.Inputs {
			if !input.Indexed {
				nonIndexedInputs = append(nonIndexedInputs, input)
			}
		}

		if len(nonIndexedInputs) > 0 {
			values, err := c.abi.Unpack(eventName, log.Data)
			if err != nil {
				logger.Warn("Failed to unpack non-indexed parameters: %v", err)
			} else {
				for i, input := range nonIndexedInputs {
					if i < len(values) {
						result[input.Name] = values[i]
					}
				}
			}
		}
	}

	return result, nil
}

// parseTopicValue 解析主题值
func (c *Contract) parseTopicValue(topic common.Hash, t abi.Type) (interface{}, error) {
	switch t.T {
	case abi.UintTy:
		return new(big.Int).SetBytes(topic.Bytes()), nil
	case abi.IntTy:
		return new(big.Int).SetBytes(topic.Bytes()), nil
	case abi.AddressTy:
		return common.BytesToAddress(topic.Bytes()), nil
	case abi.BoolTy:
		return new(big.Int).SetBytes(topic.Bytes()).Cmp(big.NewInt(0)) > 0, nil
	case abi.BytesTy:
		return topic.Bytes(), nil
	default:
		return topic.Hex(), nil
	}
}
