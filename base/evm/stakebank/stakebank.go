package stakebank

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// 质押合约中本服务用到的只读方法
const bankAbi = `[
{"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"","type":"address"}],"name":"_baseRates","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"signerAddress","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"contractAddress","type":"address"},{"internalType":"uint256[]","name":"tokenIds","type":"uint256[]"},{"internalType":"uint256[]","name":"tokenTraits","type":"uint256[]"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"deposit","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const (
	MethodOwner         = "owner"
	MethodBaseRates     = "_baseRates"
	MethodSignerAddress = "signerAddress"
)

// ErrUpstreamUnavailable 节点调用失败
var ErrUpstreamUnavailable = errors.New("chain upstream unavailable")

// Reader 质押合约只读查询
// 每次调用都实时访问节点, 不缓存: owner 与 base rate 可能随时变更
type Reader interface {
	// Owner 合约当前 owner, 管理写操作的唯一授权地址
	Owner(ctx context.Context) (common.Address, error)
	// BaseRate 指定 NFT 合约的默认倍率, 18 位小数定点数
	BaseRate(ctx context.Context, collection common.Address) (*big.Int, error)
	// SignerAddress 合约登记的 deposit 签名地址
	SignerAddress(ctx context.Context) (common.Address, error)
}

// ParsedABI 解析后的合约 ABI
func ParsedABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(bankAbi))
}

// Bank 通过 bind.BoundContract 调用质押合约
type Bank struct {
	address  common.Address
	contract *bind.BoundContract
}

// New caller 一般为 *chainclient.Client, 测试时可替换
func New(address common.Address, caller bind.ContractCaller) (*Bank, error) {
	parsed, err := ParsedABI()
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse bank abi")
	}
	return &Bank{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, caller, nil, nil),
	}, nil
}

func (b *Bank) Address() common.Address {
	return b.address
}

func (b *Bank) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, errors.Wrapf(ErrUpstreamUnavailable, "call %s: %v", method, err)
	}
	if len(out) == 0 {
		return nil, errors.Wrapf(ErrUpstreamUnavailable, "call %s: empty result", method)
	}
	return out, nil
}

func (b *Bank) Owner(ctx context.Context) (common.Address, error) {
	out, err := b.call(ctx, MethodOwner)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (b *Bank) BaseRate(ctx context.Context, collection common.Address) (*big.Int, error) {
	out, err := b.call(ctx, MethodBaseRates, collection)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (b *Bank) SignerAddress(ctx context.Context) (common.Address, error) {
	out, err := b.call(ctx, MethodSignerAddress)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
