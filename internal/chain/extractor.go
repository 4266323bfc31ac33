package chain

import (
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ExtractCreatedAddress 从交易回执中提取新部署的项目合约地址
// 按日志顺序扫描，取第一条项目创建事件的地址参数；解码失败的日志跳过不中断。
// 同一回执出现多条创建事件时取第一条（按日志顺序）。
// 纯解码操作，不发起任何网络请求。
func (c *Contract) ExtractCreatedAddress(receipt *types.Receipt) (common.Address, bool) {
	if receipt == nil {
		return common.Address{}, false
	}

	event := c.abi.Events[c.createdEvent]

	for _, l := range receipt.Logs {
		if l == nil || len(l.Topics) == 0 {
			continue
		}
		if l.Topics[0] != event.ID {
			continue
		}

		addr, ok := c.extractAddressArg(event, l)
		if !ok {
			// 匹配到事件但参数解不出来，跳过继续扫
			logger.Warn("Creation event in tx %s log %d has no decodable address argument",
				l.TxHash.Hex(), l.Index)
			continue
		}

		return addr, true
	}

	return common.Address{}, false
}

// extractAddressArg 取事件的第一个address类型参数
func (c *Contract) extractAddressArg(event abi.Event, l *types.Log) (common.Address, bool) {
	// 索引参数从topic取
	topicIndex := 1
	for _, input := range event.Inputs {
		if !input.Indexed {
			continue
		}
		if topicIndex >= len(l.Topics) {
			return common.Address{}, false
		}
		if input.Type.T == abi.AddressTy {
			return common.BytesToAddress(l.Topics[topicIndex].Bytes()), true
		}
		topicIndex++
	}

	// 非索引参数从data解包
	if len(l.Data) > 0 {
		values, err := c.abi.Unpack(event.Name, l.Data)
		if err != nil {
			return common.Address{}, false
		}

		dataIndex := 0
		for _, input := range event.Inputs {
			if input.Indexed {
				continue
			}
			if dataIndex >= len(values) {
				break
			}
			if input.Type.T == abi.AddressTy {
				if addr, ok := values[dataIndex].(common.Address); ok {
					return addr, true
				}
				return common.Address{}, false
			}
			dataIndex++
		}
	}

	return common.Address{}, false
}
