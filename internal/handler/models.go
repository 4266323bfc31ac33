package handler

import (
	"time"

	"github.com/barakahchain/charity-platform-sub001/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// RecordDonationRequest 捐款上报请求
type RecordDonationRequest struct {
	ContractAddress string `json:"contract_address" binding:"required"`
	DonorAddress    string `json:"donor_address" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	TxHash          string `json:"tx_hash" binding:"required"`
	BlockNum        int64  `json:"block_num" binding:"required"`
}

// ConfirmDeploymentRequest 部署确认请求
type ConfirmDeploymentRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// DonationResponse 捐款记录响应模型
type DonationResponse struct {
	Id           int64     `json:"id"`
	ProjectId    int64     `json:"projectId"`
	DonorAddress string    `json:"donorAddress"`
	Amount       string    `json:"amount"`
	TxHash       string    `json:"txHash"`
	BlockNum     int64     `json:"blockNum"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	Id              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	MetadataCid     string    `json:"metadataCid"`
	Category        string    `json:"category"`
	ZakatMode       bool      `json:"zakatMode"`
	Status          string    `json:"status"`
	CreatorAddress  string    `json:"creatorAddress"`
	CreatorName     string    `json:"creatorName"`
	ContractAddress string    `json:"contractAddress"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToDonationResponse 将捐款记录数据库模型转换为响应模型
func ToDonationResponse(record *model.DonationModel) DonationResponse {
	return DonationResponse{
		Id:           record.Id,
		ProjectId:    record.ProjectId,
		DonorAddress: record.DonorAddress,
		Amount:       record.Amount,
		TxHash:       record.TxHash,
		BlockNum:     record.BlockNum,
		CreatedAt:    record.CreatedAt,
	}
}

// ToDonationResponseList 将捐款记录数据库模型列表转换为响应模型列表
func ToDonationResponseList(records []model.DonationModel) []DonationResponse {
	result := make([]DonationResponse, len(records))
	for i, record := range records {
		result[i] = ToDonationResponse(&record)
	}
	return result
}

// ToProjectResponse 将项目数据库模型转换为响应模型
func ToProjectResponse(project *model.ProjectModel) ProjectResponse {
	return ProjectResponse{
		Id:              project.Id,
		Title:           project.Title,
		Description:     project.Description,
		MetadataCid:     project.MetadataCid,
		Category:        project.Category,
		ZakatMode:       project.ZakatMode,
		Status:          string(project.Status),
		CreatorAddress:  project.CreatorAddress,
		CreatorName:     project.CreatorName,
		ContractAddress: project.ContractAddress,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

// ToProjectResponseList 将项目数据库模型列表转换为响应模型列表
func ToProjectResponseList(projects []model.ProjectModel) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectResponse(&project)
	}
	return result
}
