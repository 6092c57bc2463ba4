package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
)

// TraitStore trait 记录的持久化接口, service 层只依赖该接口
type TraitStore interface {
	// UpsertTrait 按 no 写入或覆盖, 返回写入后的记录
	UpsertTrait(ctx context.Context, c traitmodel.Collection, no int64, value string) (*traitmodel.Trait, error)
	// QueryTraitsByNos 批量查询, 不存在的 no 不返回
	QueryTraitsByNos(ctx context.Context, c traitmodel.Collection, nos []int64) ([]traitmodel.Trait, error)
	// QueryAllTraits 按创建时间倒序返回全部记录
	QueryAllTraits(ctx context.Context, c traitmodel.Collection) ([]traitmodel.Trait, error)
	// DeleteTrait 按主键删除, 记录不存在时返回 false
	DeleteTrait(ctx context.Context, c traitmodel.Collection, id int64) (bool, error)
	// DeleteAllTraits 清空对应系列的全部记录
	DeleteAllTraits(ctx context.Context, c traitmodel.Collection) error
}

// Dao 数据访问对象
// 所有的数据库交互逻辑应在此层实现, 避免在 Service 层直接操作 DB
type Dao struct {
	ctx context.Context

	DB *gorm.DB
}

var _ TraitStore = (*Dao)(nil)

// New 创建一个新的 Dao 实例
func New(ctx context.Context, db *gorm.DB) *Dao {
	return &Dao{
		ctx: ctx,
		DB:  db,
	}
}
