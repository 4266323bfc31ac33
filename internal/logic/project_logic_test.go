package logic

import (
	"errors"
	"testing"

	"github.com/barakahchain/charity-platform-sub001/internal/model"
)

func TestFindByContractAddress(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedProject(t, db, "0xabcdef0123456789", model.ProjectStatusActive)
	projectLogic := NewProjectLogic(db)

	project, err := projectLogic.FindByContractAddress("0xabcdef0123456789")
	if err != nil {
		t.Fatalf("FindByContractAddress failed: %v", err)
	}
	if project.Id != seeded.Id {
		t.Errorf("id = %d, want %d", project.Id, seeded.Id)
	}
}

func TestFindByContractAddressChecksumCase(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedProject(t, db, "0xAbCdEf0123456789", model.ProjectStatusActive)
	projectLogic := NewProjectLogic(db)

	// 写入时已归一为小写，校验和大小写查询也要命中
	project, err := projectLogic.FindByContractAddress("0xABCDEF0123456789")
	if err != nil {
		t.Fatalf("FindByContractAddress failed: %v", err)
	}
	if project.Id != seeded.Id {
		t.Errorf("id = %d, want %d", project.Id, seeded.Id)
	}
}

func TestFindByContractAddressNotFound(t *testing.T) {
	db := setupTestDB(t)
	projectLogic := NewProjectLogic(db)

	_, err := projectLogic.FindByContractAddress("0xmissing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestBindContractAddress(t *testing.T) {
	db := setupTestDB(t)
	projectLogic := NewProjectLogic(db)

	project := model.ProjectModel{
		Title:        "待上链项目",
		Status:       model.ProjectStatusDeploying,
		DeployTxHash: "0xdeploy1",
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	if err := projectLogic.BindContractAddress(project.Id, "0xNewContract"); err != nil {
		t.Fatalf("BindContractAddress failed: %v", err)
	}

	updated, err := projectLogic.GetProject(project.Id)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if updated.ContractAddress != "0xnewcontract" {
		t.Errorf("contractAddress = %q, want lowercased 0xnewcontract", updated.ContractAddress)
	}
	if updated.Status != model.ProjectStatusActive {
		t.Errorf("status = %q, want active", updated.Status)
	}

	// 重复确认直接跳过，不覆盖已有地址
	if err := projectLogic.BindContractAddress(project.Id, "0xother"); err != nil {
		t.Fatalf("second BindContractAddress failed: %v", err)
	}
	updated, _ = projectLogic.GetProject(project.Id)
	if updated.ContractAddress != "0xnewcontract" {
		t.Errorf("contractAddress overwritten to %q", updated.ContractAddress)
	}
}

func TestBindContractAddressValidation(t *testing.T) {
	db := setupTestDB(t)
	projectLogic := NewProjectLogic(db)

	if err := projectLogic.BindContractAddress(0, "0xabc"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if err := projectLogic.BindContractAddress(999, "0xabc"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestGetProjects(t *testing.T) {
	db := setupTestDB(t)
	projectLogic := NewProjectLogic(db)

	zakat := model.ProjectModel{Title: "天课项目", Status: model.ProjectStatusActive, ZakatMode: true, ContractAddress: "0xz1"}
	normal := model.ProjectModel{Title: "普通项目", Status: model.ProjectStatusActive, ContractAddress: "0xn1"}
	draft := model.ProjectModel{Title: "草稿", Status: model.ProjectStatusDraft, ContractAddress: "0xd1"}
	for _, p := range []*model.ProjectModel{&zakat, &normal, &draft} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	projects, total, err := projectLogic.GetProjects("active", false, 50, 0)
	if err != nil {
		t.Fatalf("GetProjects failed: %v", err)
	}
	if total != 2 || len(projects) != 2 {
		t.Fatalf("active: total = %d, len = %d, want 2/2", total, len(projects))
	}

	projects, total, err = projectLogic.GetProjects("", true, 50, 0)
	if err != nil {
		t.Fatalf("GetProjects zakat failed: %v", err)
	}
	if total != 1 || projects[0].Id != zakat.Id {
		t.Errorf("zakat filter: total = %d, want the zakat project", total)
	}
}

func TestGetDeployingProjects(t *testing.T) {
	db := setupTestDB(t)
	projectLogic := NewProjectLogic(db)

	withTx := model.ProjectModel{Title: "a", Status: model.ProjectStatusDeploying, DeployTxHash: "0xd1"}
	withoutTx := model.ProjectModel{Title: "b", Status: model.ProjectStatusDeploying}
	active := model.ProjectModel{Title: "c", Status: model.ProjectStatusActive, DeployTxHash: "0xd2", ContractAddress: "0xc1"}
	for _, p := range []*model.ProjectModel{&withTx, &withoutTx, &active} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	projects, err := projectLogic.GetDeployingProjects(10)
	if err != nil {
		t.Fatalf("GetDeployingProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Id != withTx.Id {
		t.Errorf("len = %d, want only the deploying project with a tx hash", len(projects))
	}
}
