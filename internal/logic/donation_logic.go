package logic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/model"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize 默认每页条数
	DefaultPageSize = 50
	// MaxPageSize 每页条数上限
	MaxPageSize = 100
)

// DonationLogic 捐款业务逻辑
type DonationLogic struct {
	db           *gorm.DB
	projectLogic *ProjectLogic
}

// NewDonationLogic 创建捐款业务逻辑
func NewDonationLogic(db *gorm.DB) *DonationLogic {
	return &DonationLogic{
		db:           db,
		projectLogic: NewProjectLogic(db),
	}
}

// RecordDonationInput 捐款上报输入
type RecordDonationInput struct {
	ContractAddress string
	DonorAddress    string
	Amount          string
	TxHash          string
	BlockNum        int64
}

// RecordDonation 记录一笔链上捐款
// 通过合约地址解析项目后落库，tx_hash唯一索引保证同一笔交易重放不会产生重复记录
func (d *DonationLogic) RecordDonation(input RecordDonationInput) (*model.DonationModel, error) {
	if err := d.validateInput(&input); err != nil {
		return nil, err
	}

	// 解析项目
	project, err := d.projectLogic.FindByContractAddress(input.ContractAddress)
	if err != nil {
		return nil, err
	}

	if project.Status != model.ProjectStatusActive {
		return nil, ErrProjectNotActive
	}

	donation := model.DonationModel{
		ProjectId:    project.Id,
		DonorAddress: NormalizeAddress(input.DonorAddress),
		Amount:       input.Amount,
		TxHash:       input.TxHash,
		BlockNum:     input.BlockNum,
	}

	// 先查重再插入，唯一索引兜底并发下的重放
	var count int64
	if err := d.db.Model(&model.DonationModel{}).
		Where("tx_hash = ?", input.TxHash).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if count > 0 {
		return nil, ErrDuplicateTransaction
	}

	if err := d.db.Create(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Duplicate donation tx %s raced past pre-check", input.TxHash)
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	logger.Info("Recorded donation %d: %s from %s to project %d (tx %s)",
		donation.Id, donation.Amount, donation.DonorAddress, donation.ProjectId, donation.TxHash)

	return &donation, nil
}

// ListByProject 获取项目捐款记录
func (d *DonationLogic) ListByProject(projectId int64, limit, offset int) ([]model.DonationModel, int64, error) {
	if projectId <= 0 {
		return nil, 0, ErrInvalidArgument
	}

	return d.list(d.db.Where("project_id = ?", projectId), limit, offset)
}

// ListByWallet 获取捐款人的捐款记录
func (d *DonationLogic) ListByWallet(walletAddress string, limit, offset int) ([]model.DonationModel, int64, error) {
	walletAddress = NormalizeAddress(walletAddress)
	if walletAddress == "" {
		return nil, 0, ErrInvalidArgument
	}

	return d.list(d.db.Where("donor_address = ?", walletAddress), limit, offset)
}

// list 分页查询，时间倒序，时间相同按id倒序保证分页稳定
func (d *DonationLogic) list(query *gorm.DB, limit, offset int) ([]model.DonationModel, int64, error) {
	var donations []model.DonationModel
	var total int64

	limit = NormalizeLimit(limit)
	offset = NormalizeOffset(offset)

	countQuery := query.Session(&gorm.Session{}).Model(&model.DonationModel{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC, id DESC").
		Find(&donations).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return donations, total, nil
}

// NormalizeLimit 限制每页条数：缺省50，上限100
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// NormalizeOffset 偏移量为负时归零
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// validateInput 验证捐款数据
func (d *DonationLogic) validateInput(input *RecordDonationInput) error {
	input.ContractAddress = strings.TrimSpace(input.ContractAddress)
	input.DonorAddress = strings.TrimSpace(input.DonorAddress)
	input.Amount = strings.TrimSpace(input.Amount)
	input.TxHash = strings.TrimSpace(input.TxHash)

	if input.ContractAddress == "" {
		return fmt.Errorf("%w: 合约地址不能为空", ErrInvalidArgument)
	}
	if input.DonorAddress == "" {
		return fmt.Errorf("%w: 捐款人地址不能为空", ErrInvalidArgument)
	}
	if input.TxHash == "" {
		return fmt.Errorf("%w: 交易哈希不能为空", ErrInvalidArgument)
	}
	if input.BlockNum <= 0 {
		return fmt.Errorf("%w: 区块号不能为空", ErrInvalidArgument)
	}

	// 金额必须是正整数（代币最小单位），全程不走浮点
	amount, ok := new(big.Int).SetString(input.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("%w: 捐款金额必须是正整数", ErrInvalidArgument)
	}

	return nil
}
