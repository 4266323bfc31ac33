package handler

import (
	"net/http"
	"strconv"

	"github.com/barakahchain/charity-platform-sub001/internal/chain"
	"github.com/barakahchain/charity-platform-sub001/internal/ethereum"
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/barakahchain/charity-platform-sub001/internal/logic"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	resolver     *metadata.Resolver
	ethClient    *ethereum.Client
	contract     *chain.Contract
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(db *gorm.DB, resolver *metadata.Resolver, ethClient *ethereum.Client, contract *chain.Contract) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
		resolver:     resolver,
		ethClient:    ethClient,
		contract:     contract,
	}
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	zakatOnly := c.Query("zakat") == "true"
	limit, offset := parsePageParams(c)

	// 调用logic层获取项目列表
	projects, total, err := h.projectLogic.GetProjects(status, zakatOnly, limit, offset)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ToProjectResponseList(projects),
		"pagination": Pagination{
			Limit:  logic.NormalizeLimit(limit),
			Offset: logic.NormalizeOffset(offset),
			Total:  total,
		},
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	// 调用logic层获取项目详情
	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToProjectResponse(project))
}

// GetProjectMetadata 获取项目的链下元数据
// 元数据是任意JSON文档，原样返回给前端渲染
func (h *ProjectHandler) GetProjectMetadata(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	if project.MetadataCid == "" {
		ErrorResponse(c, http.StatusNotFound, "项目没有元数据")
		return
	}

	// 透传请求上下文，客户端取消时中断网关请求
	doc, err := h.resolver.Fetch(c.Request.Context(), project.MetadataCid)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", doc)
}

// ConfirmDeployment 确认项目合约部署
// 凭部署交易回执提取新合约地址并绑定到项目
func (h *ProjectHandler) ConfirmDeployment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	// 请求体未带交易哈希时用项目记录的部署哈希
	var req ConfirmDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TxHash == "" {
		req.TxHash = project.DeployTxHash
	}
	if req.TxHash == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少部署交易哈希")
		return
	}

	if h.ethClient == nil {
		ErrorResponse(c, http.StatusServiceUnavailable, "链上客户端未配置")
		return
	}

	receipt, err := h.ethClient.GetTransactionReceipt(c.Request.Context(), req.TxHash)
	if err != nil {
		logger.Error("Failed to fetch receipt for tx %s: %v", req.TxHash, err)
		ErrorResponse(c, http.StatusServiceUnavailable, "获取交易回执失败")
		return
	}

	address, found := h.contract.ExtractCreatedAddress(receipt)
	if !found {
		ErrorResponse(c, http.StatusBadRequest, "回执中没有项目创建事件")
		return
	}

	if err := h.projectLogic.BindContractAddress(id, address.Hex()); err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	updated, err := h.projectLogic.GetProject(id)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "部署确认成功", ToProjectResponse(updated))
}
