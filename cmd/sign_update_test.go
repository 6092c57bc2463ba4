package cmd

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/TraitSigner/base/evm/eip"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

const testOwnerKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestBuildSignedUpdate(t *testing.T) {
	body, err := buildSignedUpdate("0x"+testOwnerKey, 7, "2.5")
	require.NoError(t, err)

	var req types.TraitUpsertReq
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.JSONEq(t, `{"id":7,"value":"2.5"}`, req.UnsignedMsg)

	msg, err := types.ParseTraitUpdateMsg(req.UnsignedMsg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *msg.Id)

	key, err := crypto.HexToECDSA(testOwnerKey)
	require.NoError(t, err)
	signer, err := eip.RecoverPersonalSigner([]byte(req.UnsignedMsg), hexutil.MustDecode(req.FullyExpandedSig))
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer)
}

func TestBuildSignedUpdateRejects(t *testing.T) {
	_, err := buildSignedUpdate("nope", 1, "1")
	assert.Error(t, err)

	_, err = buildSignedUpdate(testOwnerKey, -1, "1")
	assert.Error(t, err)

	_, err = buildSignedUpdate(testOwnerKey, 1, "abc")
	assert.Error(t, err)
}

func TestBuildSignedUpdateFromEnv(t *testing.T) {
	t.Setenv(ownerKeyEnv, testOwnerKey)

	_, err := buildSignedUpdate("", 1, "1.0")
	assert.NoError(t, err)
}
