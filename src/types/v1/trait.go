package types

import (
	"bytes"
	"encoding/json"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
)

// TraitUpsertReq 管理员写入请求
// UnsignedMsg 为 owner 签名的原文, 内容为 TraitUpdateMsg 的 JSON
type TraitUpsertReq struct {
	UnsignedMsg      string `json:"unsignedMsg" validate:"required"`
	SignedMessage    string `json:"signedMessage" validate:"required"`    // 仅作存在性校验
	FullyExpandedSig string `json:"fullyExpandedSig" validate:"required"` // 0x 开头的 65 字节签名, 用于恢复签名者
}

// TraitUpdateMsg 签名原文中携带的写入内容
type TraitUpdateMsg struct {
	Id    *int64 `json:"id"`    // token 编号
	Value string `json:"value"` // 十进制倍率, 如 "2.5"
}

// ParseTraitUpdateMsg 解析签名原文, 字段缺失、多余或取值非法时返回 ErrMalformedPayload
func ParseTraitUpdateMsg(raw string) (*TraitUpdateMsg, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var msg TraitUpdateMsg
	if err := dec.Decode(&msg); err != nil {
		return nil, errcode.ErrMalformedPayload
	}
	if dec.More() {
		return nil, errcode.ErrMalformedPayload
	}
	if msg.Id == nil || *msg.Id < 0 {
		return nil, errcode.ErrMalformedPayload
	}
	if _, err := utils.ParseFixed18(msg.Value); err != nil {
		return nil, errcode.ErrMalformedPayload
	}
	return &msg, nil
}

// TraitUpsertResp 写入结果
// 签名者不是合约 owner 时仅返回 success=false
type TraitUpsertResp struct {
	Trait   *traitmodel.Trait `json:"trait,omitempty"`
	Success bool              `json:"success"`
	Signer  string            `json:"signer,omitempty"`
}

// TraitValue 单个 token 的解析结果
type TraitValue struct {
	No    int64  `json:"no"`
	Trait string `json:"trait"`
}

// DepositAttestationResp 质押签名结果
// 输入非法时 HexIds/HexValues 为空数组且不返回 Signature
type DepositAttestationResp struct {
	HexIds    []string `json:"hexIds"`
	HexValues []string `json:"hexValues"`
	Signature string   `json:"signature,omitempty"`
}

type MsgResp struct {
	Msg string `json:"msg"`
}
