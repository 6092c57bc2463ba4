package eip

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalMessageHash(t *testing.T) {
	msg := []byte("hello")
	expected := crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n5hello"))
	assert.Equal(t, expected, PersonalMessageHash(msg))
}

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	msg := []byte(`{"id":1,"value":"2.5"}`)
	sig, err := SignPersonal(key, msg)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[64])

	t.Run("recover with 27/28", func(t *testing.T) {
		got, err := RecoverPersonalSigner(msg, sig)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})

	t.Run("recover with 0/1", func(t *testing.T) {
		raw := append([]byte(nil), sig...)
		raw[64] -= 27
		got, err := RecoverPersonalSigner(msg, raw)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})

	t.Run("different message recovers different address", func(t *testing.T) {
		got, err := RecoverPersonalSigner([]byte(`{"id":1,"value":"9"}`), sig)
		require.NoError(t, err)
		assert.NotEqual(t, addr, got)
	})

	t.Run("input signature untouched", func(t *testing.T) {
		before := append([]byte(nil), sig...)
		_, err := RecoverPersonalSigner(msg, sig)
		require.NoError(t, err)
		assert.Equal(t, before, sig)
	})
}

func TestSignPersonalDeterministic(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig1, err := SignPersonal(key, []byte("same"))
	require.NoError(t, err)
	sig2, err := SignPersonal(key, []byte("same"))
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
}

func TestRecoverInvalidSignature(t *testing.T) {
	cases := map[string][]byte{
		"empty":        nil,
		"short":        make([]byte, 64),
		"bad recovery": append(make([]byte, 64), 30),
		"zero r s":     append(make([]byte, 64), 27),
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RecoverPersonalSigner([]byte("msg"), sig)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSignature))
		})
	}
}

func TestDecodeSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sig, err := SignPersonal(key, []byte("m"))
	require.NoError(t, err)

	got, err := DecodeSignature(hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	for _, s := range []string{"", "0x", "nothex", hexutil.Encode(sig[:10])} {
		_, err := DecodeSignature(s)
		assert.True(t, errors.Is(err, ErrInvalidSignature), s)
	}
}

func TestSameAddress(t *testing.T) {
	lower := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	checksum := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	assert.True(t, SameAddress(lower, checksum))
	assert.True(t, SameAddress(strings.ToUpper(lower[2:]), checksum))
	assert.False(t, SameAddress(lower, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"))
	assert.False(t, SameAddress("", ""))
	assert.False(t, SameAddress("0x1234", "0x1234"))
}

func TestToCheckSumAddress(t *testing.T) {
	// EIP-55 测试向量
	for _, addr := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	} {
		assert.Equal(t, addr, ToCheckSumAddress(strings.ToLower(addr)))
	}
}
