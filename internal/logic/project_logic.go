package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/barakahchain/charity-platform-sub001/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// NormalizeAddress 地址统一转小写
// 链上地址常见校验和大小写混写，写入和查询都先归一，避免大小写不一致查不到
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// FindByContractAddress 根据合约地址查找项目
func (p *ProjectLogic) FindByContractAddress(address string) (*model.ProjectModel, error) {
	address = NormalizeAddress(address)
	if address == "" {
		return nil, ErrInvalidArgument
	}

	var project model.ProjectModel
	if err := p.db.Where("contract_address = ?", address).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &project, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	if id <= 0 {
		return nil, ErrInvalidArgument
	}

	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &project, nil
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status string, zakatOnly bool, limit, offset int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	limit = NormalizeLimit(limit)
	offset = NormalizeOffset(offset)

	// 构建查询条件
	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if zakatOnly {
		query = query.Where("zakat_mode = ?", true)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目总数失败: %w", err)
	}

	// 分页查询
	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC, id DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// BindContractAddress 绑定合约地址并激活项目
// 部署确认后调用，同一项目重复确认直接跳过
func (p *ProjectLogic) BindContractAddress(projectId int64, contractAddress string) error {
	contractAddress = NormalizeAddress(contractAddress)
	if projectId <= 0 || contractAddress == "" {
		return ErrInvalidArgument
	}

	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if project.ContractAddress != "" {
		return nil
	}

	updates := map[string]interface{}{
		"contract_address": contractAddress,
		"status":           model.ProjectStatusActive,
	}
	if err := p.db.Model(&model.ProjectModel{}).Where("id = ?", projectId).Updates(updates).Error; err != nil {
		return fmt.Errorf("绑定合约地址失败: %w", err)
	}

	return nil
}

// GetDeployingProjects 获取待上链确认的项目
func (p *ProjectLogic) GetDeployingProjects(limit int) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	if err := p.db.Where("status = ? AND deploy_tx_hash <> ''", model.ProjectStatusDeploying).
		Order("created_at ASC").
		Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取待确认项目失败: %w", err)
	}

	return projects, nil
}

// GetActiveProjectsWithMetadata 获取有元数据CID的进行中项目
func (p *ProjectLogic) GetActiveProjectsWithMetadata() ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	if err := p.db.Where("status = ? AND metadata_cid <> ''", model.ProjectStatusActive).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取进行中项目失败: %w", err)
	}

	return projects, nil
}
