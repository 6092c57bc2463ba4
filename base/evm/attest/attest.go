// Package attest 构造质押合约可验证的 deposit 签名.
//
// 合约侧校验流程:
//
//	message = abi.encodePacked(collection, tokenIds, tokenTraits)
//	hash    = keccak256(message)
//	signer  = ecrecover(toEthSignedMessageHash(hash), signature)
//
// 因此打包格式 (地址 20 字节, 之后每个 uint256 固定 32 字节, 数组无长度前缀) 不能修改.
package attest

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/ProjectsTask/TraitSigner/base/evm/eip"
)

const wordSize = 32

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// EncodePacked 等价于 solidityPack(["address","uint256[]","uint256[]"], [subject, ids, values])
func EncodePacked(subject common.Address, ids []*big.Int, values []*big.Int) ([]byte, error) {
	if len(ids) != len(values) {
		return nil, errors.Errorf("ids and values length mismatch: %d != %d", len(ids), len(values))
	}

	out := make([]byte, 0, common.AddressLength+wordSize*(len(ids)+len(values)))
	out = append(out, subject.Bytes()...)
	for _, arr := range [][]*big.Int{ids, values} {
		for i, v := range arr {
			word, err := uint256Word(v)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			out = append(out, word...)
		}
	}
	return out, nil
}

func uint256Word(v *big.Int) ([]byte, error) {
	if v == nil {
		return nil, errors.New("nil uint256")
	}
	if v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
		return nil, errors.Errorf("value %s out of uint256 range", v.String())
	}
	return common.LeftPadBytes(v.Bytes(), wordSize), nil
}

// Digest 返回打包数据的 keccak256, 即合约侧的 hash
func Digest(subject common.Address, ids []*big.Int, values []*big.Int) ([]byte, error) {
	packed, err := EncodePacked(subject, ids, values)
	if err != nil {
		return nil, err
	}
	return crypto.Keccak256(packed), nil
}

// Signer 持有 authority 私钥, 启动时创建一次后在所有请求间共享
// 签名是纯计算, 无内部可变状态, 可并发调用
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner 从十六进制私钥创建 Signer, 0x 前缀可选
func NewSigner(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid authority private key")
	}
	return NewSignerFromKey(key)
}

func NewSignerFromKey(key *ecdsa.PrivateKey) (*Signer, error) {
	if key == nil {
		return nil, errors.New("private key cannot be nil")
	}
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Address authority 地址, 合约中登记的 signer 应与之一致
func (s *Signer) Address() common.Address {
	return s.address
}

// Sign 生成 65 字节签名 [R || S || V]
// 对 32 字节 digest 做 personal message 签名 (signMessage(arrayify(hash))), 相同输入得到相同签名
func (s *Signer) Sign(subject common.Address, ids []*big.Int, values []*big.Int) ([]byte, error) {
	digest, err := Digest(subject, ids, values)
	if err != nil {
		return nil, errors.Wrap(err, "failed on encode attestation")
	}
	return eip.SignPersonal(s.key, digest)
}

// Recover 从 deposit 签名中恢复签名者地址, 与合约侧校验逻辑一致
func Recover(subject common.Address, ids []*big.Int, values []*big.Int, sig []byte) (common.Address, error) {
	digest, err := Digest(subject, ids, values)
	if err != nil {
		return common.Address{}, err
	}
	return eip.RecoverPersonalSigner(digest, sig)
}
