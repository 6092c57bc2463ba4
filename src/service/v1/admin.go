package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/evm/eip"
	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

// WriteAuthorization 管理写请求的鉴权结果
type WriteAuthorization struct {
	Allowed bool
	Signer  common.Address
	Owner   common.Address
	Msg     *types.TraitUpdateMsg // 仅 Allowed 时解析
}

// AuthorizeWrite 校验写请求是否由合约当前 owner 签名
// 1. 从 fullyExpandedSig 解码签名并恢复签名者, 签名格式错误返回 ErrInvalidSignature
// 2. 实时查询 owner, 不缓存
// 3. 签名者与 owner 不一致时 Allowed=false, 不视为错误
// 4. 一致时才解析签名原文, 格式错误返回 ErrMalformedPayload
func AuthorizeWrite(ctx context.Context, svcCtx *svc.ServerCtx, req *types.TraitUpsertReq) (*WriteAuthorization, error) {
	sig, err := eip.DecodeSignature(req.FullyExpandedSig)
	if err != nil {
		return nil, errcode.ErrInvalidSignature
	}
	signer, err := eip.RecoverPersonalSigner([]byte(req.UnsignedMsg), sig)
	if err != nil {
		return nil, errcode.ErrInvalidSignature
	}

	owner, err := svcCtx.Bank.Owner(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query contract owner")
	}

	auth := &WriteAuthorization{Signer: signer, Owner: owner}
	if !eip.SameAddress(signer.Hex(), owner.Hex()) {
		xzap.WithContext(ctx).Warn("reject trait write from non-owner",
			zap.String("signer", signer.Hex()), zap.String("owner", owner.Hex()))
		return auth, nil
	}

	msg, err := types.ParseTraitUpdateMsg(req.UnsignedMsg)
	if err != nil {
		return nil, err
	}
	auth.Allowed = true
	auth.Msg = msg
	return auth, nil
}

// UpsertTrait 鉴权通过后写入记录, 同一 no 后写覆盖先写
func UpsertTrait(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection, req *types.TraitUpsertReq) (*types.TraitUpsertResp, error) {
	auth, err := AuthorizeWrite(ctx, svcCtx, req)
	if err != nil {
		return nil, err
	}
	if !auth.Allowed {
		return &types.TraitUpsertResp{Success: false}, nil
	}

	// 统一存储为规范格式, 如 ".5" 存为 "0.5"
	value, err := utils.ParseFixed18(auth.Msg.Value)
	if err != nil {
		return nil, errcode.ErrMalformedPayload
	}
	record, err := svcCtx.Dao.UpsertTrait(ctx, kind, *auth.Msg.Id, utils.FormatFixed18(value))
	if err != nil {
		return nil, errors.Wrap(err, "failed on upsert trait")
	}

	xzap.WithContext(ctx).Info("trait updated",
		zap.String("collection", string(kind)), zap.Int64("no", record.No), zap.String("trait", record.Trait))

	return &types.TraitUpsertResp{
		Trait:   record,
		Success: true,
		Signer:  eip.ToCheckSumAddress(auth.Signer.Hex()),
	}, nil
}
