package chainclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// Client 进程级别的 EVM 节点连接, 启动时创建一次, 退出时 Close
// 请求期间的调用失败直接返回给调用方, 不做重试
type Client struct {
	*ethclient.Client
	chainID *big.Int
}

// New 连接节点并校验 chain id, expectChainID 为 0 时不校验
func New(ctx context.Context, endpoint string, expectChainID int64) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed on dial json rpc")
	}

	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, errors.Wrap(err, "failed on get chain id")
	}
	if expectChainID != 0 && chainID.Int64() != expectChainID {
		ec.Close()
		return nil, errors.Errorf("chain id mismatch: node %s, config %d", chainID.String(), expectChainID)
	}

	return &Client{Client: ec, chainID: chainID}, nil
}

// ConnectedChainID 连接时节点返回的 chain id
func (c *Client) ConnectedChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}
