package utils

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TraitDecimals trait 倍率在合约中的精度
const TraitDecimals = 18

var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParseFixed18 将十进制字符串转换为 18 位小数定点整数 (value * 10^18)
// 只接受非负数, 小数位超过 18 位或结果超出 uint256 时报错, 不做舍入
func ParseFixed18(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if !decimalPattern.MatchString(value) {
		return nil, errors.Errorf("invalid decimal %q", value)
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid decimal %q", value)
	}

	shifted := d.Shift(TraitDecimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, errors.Errorf("decimal %q exceeds %d fractional digits", value, TraitDecimals)
	}
	v := shifted.BigInt()
	if v.Cmp(math.MaxBig256) > 0 {
		return nil, errors.Errorf("decimal %q exceeds uint256", value)
	}
	return v, nil
}

// FormatFixed18 将 18 位小数定点整数格式化为十进制字符串, 整数保留 ".0" (如 "1.0", "2.5")
func FormatFixed18(v *big.Int) string {
	if v == nil {
		return "0.0"
	}
	s := decimal.NewFromBigInt(v, -TraitDecimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Hexlify 以最短的偶数位十六进制表示非负整数, 0 为 "0x00"
func Hexlify(v *big.Int) string {
	if v == nil || v.Sign() == 0 {
		return "0x00"
	}
	return hexutil.Encode(v.Bytes())
}
