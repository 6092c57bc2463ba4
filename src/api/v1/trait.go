package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/kit/validator"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/base/xhttp"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
	"github.com/ProjectsTask/TraitSigner/src/service/v1"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

// TraitUpsertHandler 管理员写入 trait
// 签名者不是合约 owner 时返回 200 与 success=false
func TraitUpsertHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 解析请求体
		var req types.TraitUpsertReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		// 2. 必填字段校验, 在任何签名处理之前
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, err)
			return
		}

		// 3. 鉴权并写入
		res, err := service.UpsertTrait(c.Request.Context(), svcCtx, kind, &req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// TraitListHandler 返回全部记录, 新记录在前
func TraitListHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetTraits(c.Request.Context(), svcCtx, kind)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// TraitResolveHandler 查询一组 token 的倍率
// ids 为 JSON 数组, 如 /traits/[1,2,3]
func TraitResolveHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.ResolveTraits(c.Request.Context(), svcCtx, kind, c.Param("ids"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// DepositAttestationHandler 为一组 token 生成 deposit 签名
func DepositAttestationHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.BuildDepositAttestation(c.Request.Context(), svcCtx, kind, c.Param("ids"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// TraitDeleteHandler 按记录 id 删除
func TraitDeleteHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := service.ParseRecordID(c.Param("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		res, err := service.DeleteTrait(c.Request.Context(), svcCtx, kind, id)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// TraitResetHandler 清空一个系列的记录
func TraitResetHandler(svcCtx *svc.ServerCtx, kind traitmodel.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.ResetTraits(c.Request.Context(), svcCtx, kind)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
