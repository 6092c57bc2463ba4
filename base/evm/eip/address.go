package eip

import (
	"fmt"
	"strings"

	anycommon "github.com/anyswap/CrossChain-Bridge/common"
	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress 转为小写 0x 形式, 非法地址返回 false
func NormalizeAddress(address string) (string, bool) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", false
	}
	lower := strings.ToLower(address)
	if !strings.HasPrefix(lower, "0x") {
		lower = "0x" + lower
	}
	return lower, true
}

// SameAddress 大小写无关地比较两个地址, 任一非法时返回 false
func SameAddress(a, b string) bool {
	na, ok := NormalizeAddress(a)
	if !ok {
		return false
	}
	nb, ok := NormalizeAddress(b)
	if !ok {
		return false
	}
	return na == nb
}

// ToCheckSumAddress 将地址转换为 EIP-55 校验和格式
// 对小写地址 (不含 0x) 做 Keccak-256, 哈希中对应半字节的最高位为 1 时该字母大写
func ToCheckSumAddress(address string) string {
	addrLowerStr := strings.ToLower(address)
	if strings.HasPrefix(addrLowerStr, "0x") {
		addrLowerStr = addrLowerStr[2:]
	}
	addrBytes := []byte(addrLowerStr)

	hash256 := anycommon.Keccak256Hash([]byte(addrLowerStr))

	for i, e := range addrLowerStr {
		// 数字不区分大小写
		if e >= '0' && e <= '9' {
			continue
		}
		// 一个字节对应地址中的两个十六进制字符, 偶数位看高 4 位, 奇数位看低 4 位
		binaryStr := fmt.Sprintf("%08b", hash256[i/2])
		if binaryStr[4*(i%2)] == '1' {
			addrBytes[i] -= 32
		}
	}

	return "0x" + string(addrBytes)
}
