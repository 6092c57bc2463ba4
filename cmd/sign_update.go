package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ProjectsTask/TraitSigner/base/evm/eip"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

const ownerKeyEnv = "TRAITS_OWNER_KEY"

var (
	signKey   string
	signID    int64
	signValue string
)

// SignUpdateCmd 用 owner 私钥生成 POST /api/traits 的请求体
var SignUpdateCmd = &cobra.Command{
	Use:   "sign-update",
	Short: "sign a trait update with the contract owner key and print the request body.",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := buildSignedUpdate(signKey, signID, signValue)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), body)
		return nil
	},
}

// buildSignedUpdate 构造并签名写入请求, 私钥为空时读取 TRAITS_OWNER_KEY
func buildSignedUpdate(keyHex string, id int64, value string) (string, error) {
	if keyHex == "" {
		keyHex = os.Getenv(ownerKeyEnv)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
	if err != nil {
		return "", errors.Wrap(err, "invalid owner key")
	}
	if id < 0 {
		return "", errors.New("id must be non-negative")
	}
	if _, err := utils.ParseFixed18(value); err != nil {
		return "", err
	}

	msg, err := json.Marshal(types.TraitUpdateMsg{Id: &id, Value: value})
	if err != nil {
		return "", err
	}
	sig, err := eip.SignPersonal(key, msg)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(types.TraitUpsertReq{
		UnsignedMsg:      string(msg),
		SignedMessage:    hexutil.Encode(sig),
		FullyExpandedSig: hexutil.Encode(sig),
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func init() {
	SignUpdateCmd.Flags().StringVar(&signKey, "key", "", "owner private key in hex (default $"+ownerKeyEnv+")")
	SignUpdateCmd.Flags().Int64Var(&signID, "id", 0, "token no")
	SignUpdateCmd.Flags().StringVar(&signValue, "value", "", "trait value, e.g. 2.5")
	_ = SignUpdateCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(SignUpdateCmd)
}
