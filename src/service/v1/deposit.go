package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

// BuildDepositAttestation 为一组 token 生成 deposit 签名
// 签名内容: 系列合约地址(20 字节) + 每个 token 编号(32 字节) + 每个倍率(32 字节)
// 合约会按同样的布局重新计算哈希并校验签名者
// rawIds 不是合法数组时不签名, 返回空列表
func BuildDepositAttestation(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection, rawIds string) (*types.DepositAttestationResp, error) {
	resp := &types.DepositAttestationResp{
		HexIds:    []string{},
		HexValues: []string{},
	}

	ids, ok := ParseRequestedIds(rawIds)
	if !ok {
		xzap.WithContext(ctx).Info("skip attestation for malformed ids", zap.String("ids", rawIds))
		return resp, nil
	}

	values, err := resolveValues(ctx, svcCtx, kind, ids)
	if err != nil {
		return nil, err
	}

	bigIds := make([]*big.Int, len(ids))
	for i, id := range ids {
		bigIds[i] = big.NewInt(id)
		resp.HexIds = append(resp.HexIds, utils.Hexlify(bigIds[i]))
		resp.HexValues = append(resp.HexValues, utils.Hexlify(values[i]))
	}

	sig, err := svcCtx.Signer.Sign(collectionAddress(svcCtx, kind), bigIds, values)
	if err != nil {
		return nil, errors.Wrap(err, "failed on sign deposit attestation")
	}
	resp.Signature = hexutil.Encode(sig)

	return resp, nil
}
