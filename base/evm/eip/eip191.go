package eip

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const SignatureLength = crypto.SignatureLength

// ErrInvalidSignature 签名格式错误或无法恢复出公钥
var ErrInvalidSignature = errors.New("invalid signature")

// PersonalMessageHash EIP-191 personal message 哈希:
// keccak256("\x19Ethereum Signed Message:\n" + len(data) + data)
func PersonalMessageHash(data []byte) []byte {
	return accounts.TextHash(data)
}

// SignPersonal 对 data 做 personal message 签名, 返回 65 字节 [R || S || V], V 为 27/28
// crypto.Sign 使用 RFC 6979 确定性 k, 相同输入得到相同签名
func SignPersonal(key *ecdsa.PrivateKey, data []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.New("private key is nil")
	}
	sig, err := crypto.Sign(PersonalMessageHash(data), key)
	if err != nil {
		return nil, errors.Wrap(err, "failed on sign personal message")
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// DecodeSignature 解析 0x 开头的十六进制签名
func DecodeSignature(s string) ([]byte, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if len(sig) != SignatureLength {
		return nil, errors.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	return sig, nil
}

// RecoverPersonalSigner 从 personal message 签名中恢复签名者地址
// 只负责恢复, 地址是否有权限由调用方比较决定
func RecoverPersonalSigner(message []byte, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}

	// 钱包返回的 V 为 27/28, crypto.SigToPub 需要 0/1
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	v := normalized[crypto.RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "invalid recovery id %d", sig[crypto.RecoveryIDOffset])
	}
	normalized[crypto.RecoveryIDOffset] = v

	pub, err := crypto.SigToPub(PersonalMessageHash(message), normalized)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return crypto.PubkeyToAddress(*pub), nil
}
