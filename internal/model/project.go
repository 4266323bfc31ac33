package model

import (
	"time"
)

// ProjectModel 公益项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	MetadataCid string `json:"metadata_cid"` // IPFS元数据CID
	Category    string `json:"category"`

	// 分类标记
	ZakatMode bool `json:"zakat_mode" gorm:"default:false"` // 是否为天课项目

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'draft'"`

	// 创建者信息
	CreatorAddress string `json:"creator_address"`
	CreatorName    string `json:"creator_name"`

	// 区块链信息（合约地址统一存小写）
	// 部分唯一索引：未上链的项目地址为空串，不参与唯一性约束
	ContractAddress string `json:"contract_address" gorm:"index:idx_project_contract,unique,where:contract_address <> ''"`
	DeployTxHash    string `json:"deploy_tx_hash"` // 部署交易哈希
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"     // 草稿
	ProjectStatusDeploying ProjectStatus = "deploying" // 待上链确认
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusDeleted   ProjectStatus = "deleted"   // 已删除
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
