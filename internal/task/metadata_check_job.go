package task

import (
	"context"
	"sync"
	"time"

	"github.com/barakahchain/charity-platform-sub001/internal/config"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/logic"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// MetadataCheckJob 元数据可达性检查任务
// 定期探测进行中项目的CID是否还能从网关取到，取不到的记日志供运营排查
type MetadataCheckJob struct {
	db           *gorm.DB
	config       *config.Config
	resolver     *metadata.Resolver
	projectLogic *logic.ProjectLogic
}

// NewMetadataCheckJob 创建元数据检查任务
func NewMetadataCheckJob(db *gorm.DB, cfg *config.Config, resolver *metadata.Resolver) *MetadataCheckJob {
	return &MetadataCheckJob{
		db:           db,
		config:       cfg,
		resolver:     resolver,
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetName 获取任务名称
func (j *MetadataCheckJob) GetName() string {
	return "metadata_check"
}

// GetSchedule 获取调度配置
func (j *MetadataCheckJob) GetSchedule() gocron.JobDefinition {
	// 可达性检查不用太频繁，按配置间隔的10倍跑
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * 10 * time.Second)
}

// Execute 执行任务
func (j *MetadataCheckJob) Execute() {
	projects, err := j.projectLogic.GetActiveProjectsWithMetadata()
	if err != nil {
		logger.Error("Failed to fetch projects for metadata check: %v", err)
		return
	}

	if len(projects) == 0 {
		return
	}

	logger.Info("Checking metadata availability for %d projects", len(projects))

	// 并发探测，池子限制并发数避免打爆网关
	pool, err := ants.NewPool(8)
	if err != nil {
		logger.Error("Failed to create pool for metadata check: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, project := range projects {
		project := project
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := j.resolver.Fetch(ctx, project.MetadataCid); err != nil {
				logger.Warn("Metadata unreachable for project %d (cid %s): %v",
					project.Id, project.MetadataCid, err)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit metadata check task: %v", err)
		}
	}

	wg.Wait()
}
