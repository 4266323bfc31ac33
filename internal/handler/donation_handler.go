package handler

import (
	"net/http"
	"strconv"

	"github.com/barakahchain/charity-platform-sub001/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DonationHandler 捐款处理器
type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

// NewDonationHandler 创建捐款处理器
func NewDonationHandler(db *gorm.DB) *DonationHandler {
	return &DonationHandler{
		donationLogic: logic.NewDonationLogic(db),
	}
}

// RecordDonation 上报一笔链上捐款
func (h *DonationHandler) RecordDonation(c *gin.Context) {
	var req RecordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 调用logic层记录捐款
	donation, err := h.donationLogic.RecordDonation(logic.RecordDonationInput{
		ContractAddress: req.ContractAddress,
		DonorAddress:    req.DonorAddress,
		Amount:          req.Amount,
		TxHash:          req.TxHash,
		BlockNum:        req.BlockNum,
	})
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	response := ToDonationResponse(donation)
	SuccessResponse(c, http.StatusCreated, "捐款记录成功", response)
}

// GetProjectDonations 获取项目捐款记录
func (h *DonationHandler) GetProjectDonations(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || projectId <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	limit, offset := parsePageParams(c)

	// 调用logic层获取项目捐款记录
	donations, total, err := h.donationLogic.ListByProject(projectId, limit, offset)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ToDonationResponseList(donations),
		"pagination": Pagination{
			Limit:  logic.NormalizeLimit(limit),
			Offset: logic.NormalizeOffset(offset),
			Total:  total,
		},
	})
}

// GetWalletDonations 获取捐款人的捐款记录
func (h *DonationHandler) GetWalletDonations(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "捐款人地址不能为空")
		return
	}

	limit, offset := parsePageParams(c)

	// 调用logic层获取捐款人捐款记录
	donations, total, err := h.donationLogic.ListByWallet(address, limit, offset)
	if err != nil {
		ErrorResponseFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ToDonationResponseList(donations),
		"pagination": Pagination{
			Limit:  logic.NormalizeLimit(limit),
			Offset: logic.NormalizeOffset(offset),
			Total:  total,
		},
	})
}

// parsePageParams 解析分页参数，非数字按缺省处理
func parsePageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
