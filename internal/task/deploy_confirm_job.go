package task

import (
	"context"
	"time"

	"github.com/barakahchain/charity-platform-sub001/internal/chain"
	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/ethereum"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// DeployConfirmJob 部署确认任务
// 定期扫描待确认项目，从部署交易回执中提取合约地址并激活项目
type DeployConfirmJob struct {
	db           *gorm.DB
	config       *config.Config
	ethClient    *ethereum.Client
	contract     *chain.Contract
	projectLogic *logic.ProjectLogic
}

// NewDeployConfirmJob 创建部署确认任务
func NewDeployConfirmJob(db *gorm.DB, cfg *config.Config, ethClient *ethereum.Client, contract *chain.Contract) *DeployConfirmJob {
	return &DeployConfirmJob{
		db:           db,
		config:       cfg,
		ethClient:    ethClient,
		contract:     contract,
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetName 获取任务名称
func (j *DeployConfirmJob) GetName() string {
	return "deploy_confirm"
}

// GetSchedule 获取调度配置
func (j *DeployConfirmJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *DeployConfirmJob) Execute() {
	logger.Info("Starting deploy confirm task")

	projects, err := j.projectLogic.GetDeployingProjects(100)
	if err != nil {
		logger.Error("Failed to fetch deploying projects: %v", err)
		return
	}

	confirmedCount := 0

	for _, project := range projects {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		receipt, err := j.ethClient.GetTransactionReceipt(ctx, project.DeployTxHash)
		cancel()
		if err != nil {
			// 交易可能还没上链，下个周期再试
			logger.Debug("Receipt not available for project %d (tx %s): %v",
				project.Id, project.DeployTxHash, err)
			continue
		}

		address, found := j.contract.ExtractCreatedAddress(receipt)
		if !found {
			logger.Warn("No creation event in receipt for project %d (tx %s)",
				project.Id, project.DeployTxHash)
			continue
		}

		if err := j.projectLogic.BindContractAddress(project.Id, address.Hex()); err != nil {
			logger.Error("Failed to bind contract address for project %d: %v", project.Id, err)
			continue
		}

		logger.Info("Confirmed deployment of project %d at %s", project.Id, address.Hex())
		confirmedCount++
	}

	if confirmedCount > 0 {
		logger.Info("Deploy confirm task finished, %d projects confirmed", confirmedCount)
	}
}
