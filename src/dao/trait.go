package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
)

// checkCollection 未知系列没有对应的表, 直接报错
func checkCollection(c traitmodel.Collection) error {
	if !c.Valid() {
		return errors.Errorf("unknown trait collection %q", string(c))
	}
	return nil
}

func (d *Dao) traitTable(ctx context.Context, c traitmodel.Collection) *gorm.DB {
	return d.DB.WithContext(ctx).Table(traitmodel.TraitTableName(c))
}

// AutoMigrate 创建 trait 与 trait_utility 两张表
func (d *Dao) AutoMigrate(ctx context.Context) error {
	for _, c := range []traitmodel.Collection{traitmodel.CollectionPrimary, traitmodel.CollectionUtility} {
		if err := d.traitTable(ctx, c).AutoMigrate(&traitmodel.Trait{}); err != nil {
			return errors.Wrapf(err, "failed on migrate table %s", traitmodel.TraitTableName(c))
		}
	}
	return nil
}

// UpsertTrait 写入 token 的 trait 值, no 已存在时覆盖 trait 与 update_time
func (d *Dao) UpsertTrait(ctx context.Context, c traitmodel.Collection, no int64, value string) (*traitmodel.Trait, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	record := traitmodel.Trait{
		No:         no,
		Trait:      value,
		CreateTime: now,
		UpdateTime: now,
	}

	// SQL 逻辑:
	// INSERT INTO trait (no, trait, create_time, update_time) VALUES (...)
	// ON DUPLICATE KEY UPDATE trait = VALUES(trait), update_time = VALUES(update_time)
	if err := d.traitTable(ctx, c).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "no"}},
			DoUpdates: clause.AssignmentColumns([]string{"trait", "update_time"}),
		}).
		Create(&record).Error; err != nil {
		return nil, errors.Wrap(err, "failed on upsert trait")
	}

	// 冲突更新时 MySQL 不回填主键与 create_time, 重新读取一次
	var saved traitmodel.Trait
	if err := d.traitTable(ctx, c).
		Where("no = ?", no).
		Take(&saved).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query upserted trait")
	}

	return &saved, nil
}

// QueryTraitsByNos 批量查询指定 token 的 trait
func (d *Dao) QueryTraitsByNos(ctx context.Context, c traitmodel.Collection, nos []int64) ([]traitmodel.Trait, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if len(nos) == 0 {
		return []traitmodel.Trait{}, nil
	}

	var traits []traitmodel.Trait
	// SQL 逻辑:
	// SELECT id, no, trait, create_time, update_time FROM trait WHERE no IN (?)
	if err := d.traitTable(ctx, c).
		Select("id, no, trait, create_time, update_time").
		Where("no in (?)", nos).
		Find(&traits).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query traits by no")
	}

	return traits, nil
}

// QueryAllTraits 查询全部 trait, 新记录在前
func (d *Dao) QueryAllTraits(ctx context.Context, c traitmodel.Collection) ([]traitmodel.Trait, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}

	traits := []traitmodel.Trait{}
	if err := d.traitTable(ctx, c).
		Select("id, no, trait, create_time, update_time").
		Order("create_time desc").
		Find(&traits).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query all traits")
	}

	return traits, nil
}

// DeleteTrait 按记录 id 删除
func (d *Dao) DeleteTrait(ctx context.Context, c traitmodel.Collection, id int64) (bool, error) {
	if err := checkCollection(c); err != nil {
		return false, err
	}

	db := d.traitTable(ctx, c).
		Where("id = ?", id).
		Delete(&traitmodel.Trait{})
	if db.Error != nil {
		return false, errors.Wrap(db.Error, "failed on delete trait")
	}

	return db.RowsAffected > 0, nil
}

// DeleteAllTraits 清空表内全部记录
func (d *Dao) DeleteAllTraits(ctx context.Context, c traitmodel.Collection) error {
	if err := checkCollection(c); err != nil {
		return err
	}

	if err := d.DB.Session(&gorm.Session{Context: ctx, AllowGlobalUpdate: true}).
		Table(traitmodel.TraitTableName(c)).
		Delete(&traitmodel.Trait{}).Error; err != nil {
		return errors.Wrap(err, "failed on reset traits")
	}

	return nil
}
