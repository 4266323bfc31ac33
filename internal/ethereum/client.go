package ethereum

import (
	"context"
	"fmt"

	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 以太坊客户端封装
// 本服务不发交易，只读回执和区块高度
type Client struct {
	client  *ethclient.Client
	chainId int64
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	return &Client{
		client:  client,
		chainId: cfg.ChainId,
	}, nil
}

// GetTransactionReceipt 获取交易回执
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	return c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// GetChainId 获取链ID
func (c *Client) GetChainId() int64 {
	return c.chainId
}

// Close 关闭连接
func (c *Client) Close() {
	c.client.Close()
}
