package task

import (
	"github.com/barakahchain/charity-platform-sub001/internal/chain"
	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/ethereum"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	ethClient *ethereum.Client
	contract  *chain.Contract
	resolver  *metadata.Resolver
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, ethClient *ethereum.Client, contract *chain.Contract, resolver *metadata.Resolver, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		ethClient: ethClient,
		contract:  contract,
		resolver:  resolver,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, ethClient *ethereum.Client, contract *chain.Contract, resolver *metadata.Resolver, cfg *config.Config) *Manager {
	manager := NewManager(db, ethClient, contract, resolver, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册部署确认任务
	if m.ethClient != nil {
		m.registerJob(NewDeployConfirmJob(m.db, m.config, m.ethClient, m.contract))
	}
	// 注册元数据可达性检查任务
	m.registerJob(NewMetadataCheckJob(m.db, m.config, m.resolver))
}

// Job 定时任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// registerJob 注册单个任务
func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
