package model

import (
	"time"
)

// DonationModel 捐款记录
// 记录一经写入不再修改，金额以字符串保存（代币最小单位），避免浮点精度丢失
type DonationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId    int64  `json:"project_id" gorm:"not null;index"`
	DonorAddress string `json:"donor_address" gorm:"not null;index"`
	Amount       string `json:"amount" gorm:"not null"`
	TxHash       string `json:"tx_hash" gorm:"not null;uniqueIndex"` // 幂等键
	BlockNum     int64  `json:"block_num"`
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}
