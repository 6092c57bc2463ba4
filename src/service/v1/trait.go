package service

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

// resolveValues 按请求顺序解析每个 token 的倍率 (18 位定点数)
// 有记录的使用记录值, 否则使用合约中该系列的默认倍率
func resolveValues(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection, ids []int64) ([]*big.Int, error) {
	var (
		baseRate *big.Int
		records  []traitmodel.Trait
	)

	// 默认倍率与已有记录互不依赖, 并发查询
	g, gctx := errgroup.WithContext(ctx)
	// 1. 实时查询默认倍率
	g.Go(func() error {
		rate, err := svcCtx.Bank.BaseRate(gctx, collectionAddress(svcCtx, kind))
		if err != nil {
			return errors.Wrap(err, "failed on query base rate")
		}
		baseRate = rate
		return nil
	})
	// 2. 批量查询已有记录, 重复 id 只查一次
	g.Go(func() error {
		rs, err := svcCtx.Dao.QueryTraitsByNos(gctx, kind, lo.Uniq(ids))
		if err != nil {
			return errors.Wrap(err, "failed on query traits")
		}
		records = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recordM := make(map[int64]*big.Int, len(records))
	for _, r := range records {
		v, err := utils.ParseFixed18(r.Trait)
		if err != nil {
			return nil, errors.Wrapf(err, "stored trait of no %d is corrupted", r.No)
		}
		recordM[r.No] = v
	}

	// 3. 按请求顺序组装, 重复 id 原样保留
	values := make([]*big.Int, len(ids))
	for i, id := range ids {
		if v, ok := recordM[id]; ok {
			values[i] = v
			continue
		}
		values[i] = new(big.Int).Set(baseRate)
	}
	return values, nil
}

// ResolveTraits 查询一组 token 的倍率, 顺序与请求一致
// rawIds 不是合法数组时返回空列表
func ResolveTraits(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection, rawIds string) ([]types.TraitValue, error) {
	ids, ok := ParseRequestedIds(rawIds)
	if !ok {
		return []types.TraitValue{}, nil
	}

	values, err := resolveValues(ctx, svcCtx, kind, ids)
	if err != nil {
		return nil, err
	}

	result := make([]types.TraitValue, 0, len(ids))
	for i, id := range ids {
		result = append(result, types.TraitValue{
			No:    id,
			Trait: utils.FormatFixed18(values[i]),
		})
	}
	return result, nil
}

// GetTraits 按创建时间倒序返回全部记录
func GetTraits(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection) ([]traitmodel.Trait, error) {
	traits, err := svcCtx.Dao.QueryAllTraits(ctx, kind)
	if err != nil {
		return nil, errors.Wrap(err, "failed on get traits")
	}
	return traits, nil
}

// DeleteTrait 删除单条记录, 不存在时返回 ErrTraitNotFound
func DeleteTrait(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection, id int64) (*types.MsgResp, error) {
	found, err := svcCtx.Dao.DeleteTrait(ctx, kind, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed on delete trait")
	}
	if !found {
		return nil, errcode.ErrTraitNotFound
	}
	return &types.MsgResp{Msg: "Trait removed"}, nil
}

// ResetTraits 清空一个系列的全部记录
func ResetTraits(ctx context.Context, svcCtx *svc.ServerCtx, kind traitmodel.Collection) (*types.MsgResp, error) {
	if err := svcCtx.Dao.DeleteAllTraits(ctx, kind); err != nil {
		return nil, errors.Wrap(err, "failed on reset traits")
	}
	if kind == traitmodel.CollectionUtility {
		return &types.MsgResp{Msg: "TraitUtility Reset"}, nil
	}
	return &types.MsgResp{Msg: "Trait Reset"}, nil
}
