package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/api/middleware"
	v1 "github.com/ProjectsTask/TraitSigner/src/api/v1"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api")

	traits := apiV1.Group("/traits")
	{
		admin := middleware.AdminAuth(svcCtx)
		primary, utility := traitmodel.CollectionPrimary, traitmodel.CollectionUtility

		// 管理员写入, 需要 JWT 及 owner 签名
		traits.POST("", admin, v1.TraitUpsertHandler(svcCtx, primary))
		traits.POST("/utility", admin, v1.TraitUpsertHandler(svcCtx, utility))

		// 全量列表
		traits.GET("", v1.TraitListHandler(svcCtx, primary))
		traits.GET("/utility", v1.TraitListHandler(svcCtx, utility))

		// deposit 签名
		traits.GET("/deposit/:ids", v1.DepositAttestationHandler(svcCtx, primary))
		traits.GET("/depositutility/:ids", v1.DepositAttestationHandler(svcCtx, utility))

		// 批量查询倍率
		traits.GET("/utility/:ids", v1.TraitResolveHandler(svcCtx, utility))
		traits.GET("/:ids", v1.TraitResolveHandler(svcCtx, primary))

		// 删除
		traits.DELETE("/all", admin, v1.TraitResetHandler(svcCtx, primary))
		traits.DELETE("/allutility", admin, v1.TraitResetHandler(svcCtx, utility))
		traits.DELETE("/utility/:id", admin, v1.TraitDeleteHandler(svcCtx, utility))
		traits.DELETE("/:id", admin, v1.TraitDeleteHandler(svcCtx, primary))
	}
}
