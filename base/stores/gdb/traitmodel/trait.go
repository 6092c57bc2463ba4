package traitmodel

// Collection 区分两套 trait 记录: 主系列与 utility 系列
type Collection string

const (
	CollectionPrimary Collection = "primary"
	CollectionUtility Collection = "utility"
)

// Valid 只有主系列与 utility 系列对应实际的表
func (c Collection) Valid() bool {
	return c == CollectionPrimary || c == CollectionUtility
}

// Trait 单个 token 的 trait 倍率记录, no 唯一
type Trait struct {
	Id         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	No         int64  `gorm:"column:no;uniqueIndex:uk_no;not null" json:"no"`              // token 编号
	Trait      string `gorm:"column:trait;type:varchar(78);not null" json:"trait"`          // 十进制字符串, 如 "2.5"
	CreateTime int64  `gorm:"column:create_time;index:idx_create_time" json:"create_time"` // 毫秒时间戳
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
}

// TraitTableName 返回对应系列的表名
func TraitTableName(c Collection) string {
	if c == CollectionUtility {
		return "trait_utility"
	}
	return "trait"
}
