package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

// collectionAddress 系列对应的 NFT 合约地址
// 既是 base rate 的查询参数, 也是签名内容中的 subject
func collectionAddress(svcCtx *svc.ServerCtx, kind traitmodel.Collection) common.Address {
	if kind == traitmodel.CollectionUtility {
		return common.HexToAddress(svcCtx.C.Contract.UtilityAddress)
	}
	return common.HexToAddress(svcCtx.C.Contract.PrimaryAddress)
}

// ParseRequestedIds 解析路径中的 token 编号列表, 如 "[1,2,2]"
// 必须是 JSON 数组且元素均为非负整数, 否则返回 false
// 保留原始顺序与重复项
func ParseRequestedIds(raw string) ([]int64, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var nums []json.Number
	if err := dec.Decode(&nums); err != nil || dec.More() {
		return nil, false
	}

	ids := make([]int64, 0, len(nums))
	for _, n := range nums {
		id, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil || id < 0 {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// ParseRecordID 解析记录主键, 必须为正整数
func ParseRecordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errcode.ErrInvalidID
	}
	return id, nil
}
