package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func newTestContract(t *testing.T) *Contract {
	t.Helper()
	c, err := NewContractFromABI(factoryABI, "ProjectCreated")
	if err != nil {
		t.Fatalf("NewContractFromABI failed: %v", err)
	}
	return c
}

func creationLog(c *Contract, projectId int64, projectAddr, owner common.Address) *types.Log {
	ev := c.GetABI().Events["ProjectCreated"]
	return &types.Log{
		Topics: []common.Hash{
			ev.ID,
			common.BigToHash(big.NewInt(projectId)),
			common.BytesToHash(projectAddr.Bytes()),
		},
		Data: common.LeftPadBytes(owner.Bytes(), 32),
	}
}

func donationLog(c *Contract, donor common.Address, amount int64) *types.Log {
	ev := c.GetABI().Events["DonationReceived"]
	return &types.Log{
		Topics: []common.Hash{
			ev.ID,
			common.BytesToHash(donor.Bytes()),
		},
		Data: common.BigToHash(big.NewInt(amount)).Bytes(),
	}
}

func TestExtractCreatedAddress(t *testing.T) {
	c := newTestContract(t)

	projectAddr := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	owner := common.HexToAddress("0x1111111111111111111111111111111111111111")

	// 三条日志：第一条解不出来，第二条是创建事件，第三条是捐款事件
	receipt := &types.Receipt{
		Logs: []*types.Log{
			{Topics: []common.Hash{common.HexToHash("0xdeadbeef")}},
			creationLog(c, 7, projectAddr, owner),
			donationLog(c, owner, 1000),
		},
	}

	addr, found := c.ExtractCreatedAddress(receipt)
	if !found {
		t.Fatal("expected creation event to be found")
	}
	if addr != projectAddr {
		t.Errorf("address = %s, want %s", addr.Hex(), projectAddr.Hex())
	}
}

func TestExtractCreatedAddressNoMatch(t *testing.T) {
	c := newTestContract(t)

	donor := common.HexToAddress("0x2222222222222222222222222222222222222222")
	receipt := &types.Receipt{
		Logs: []*types.Log{
			donationLog(c, donor, 500),
			{Topics: []common.Hash{common.HexToHash("0x1234")}},
		},
	}

	if _, found := c.ExtractCreatedAddress(receipt); found {
		t.Error("expected no creation event")
	}
}

func TestExtractCreatedAddressEmptyReceipt(t *testing.T) {
	c := newTestContract(t)

	if _, found := c.ExtractCreatedAddress(&types.Receipt{}); found {
		t.Error("expected not found for empty receipt")
	}
	if _, found := c.ExtractCreatedAddress(nil); found {
		t.Error("expected not found for nil receipt")
	}
}

func TestExtractCreatedAddressTakesFirstMatch(t *testing.T) {
	c := newTestContract(t)

	first := common.HexToAddress("0x3333333333333333333333333333333333333333")
	second := common.HexToAddress("0x4444444444444444444444444444444444444444")
	owner := common.HexToAddress("0x5555555555555555555555555555555555555555")

	receipt := &types.Receipt{
		Logs: []*types.Log{
			creationLog(c, 1, first, owner),
			creationLog(c, 2, second, owner),
		},
	}

	addr, found := c.ExtractCreatedAddress(receipt)
	if !found {
		t.Fatal("expected creation event to be found")
	}
	if addr != first {
		t.Errorf("address = %s, want first match %s", addr.Hex(), first.Hex())
	}
}

func TestExtractCreatedAddressNonIndexed(t *testing.T) {
	// 地址参数不带索引时从data解包
	const abiJSON = `[{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "projectId", "type": "uint256"},
			{"indexed": false, "name": "projectAddress", "type": "address"}
		],
		"name": "ProjectCreated",
		"type": "event"
	}]`

	c, err := NewContractFromABI(abiJSON, "ProjectCreated")
	if err != nil {
		t.Fatalf("NewContractFromABI failed: %v", err)
	}

	projectAddr := common.HexToAddress("0x6666666666666666666666666666666666666666")
	ev := c.GetABI().Events["ProjectCreated"]
	receipt := &types.Receipt{
		Logs: []*types.Log{
			{
				Topics: []common.Hash{ev.ID, common.BigToHash(big.NewInt(9))},
				Data:   common.LeftPadBytes(projectAddr.Bytes(), 32),
			},
		},
	}

	addr, found := c.ExtractCreatedAddress(receipt)
	if !found {
		t.Fatal("expected creation event to be found")
	}
	if addr != projectAddr {
		t.Errorf("address = %s, want %s", addr.Hex(), projectAddr.Hex())
	}
}

func TestParseEvent(t *testing.T) {
	c := newTestContract(t)

	donor := common.HexToAddress("0x7777777777777777777777777777777777777777")
	l := donationLog(c, donor, 2500)
	l.TxHash = common.HexToHash("0x01")
	l.BlockNumber = 42

	data, err := c.ParseEvent(*l)
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	if data["eventName"] != "DonationReceived" {
		t.Errorf("eventName = %v", data["eventName"])
	}
	if got, ok := data["donor"].(common.Address); !ok || got != donor {
		t.Errorf("donor = %v, want %s", data["donor"], donor.Hex())
	}
	amount, ok := data["amount"].(*big.Int)
	if !ok || amount.Int64() != 2500 {
		t.Errorf("amount = %v, want 2500", data["amount"])
	}
}

func TestParseEventUnknownSignature(t *testing.T) {
	c := newTestContract(t)

	l := types.Log{Topics: []common.Hash{common.HexToHash("0xffff")}}
	if _, err := c.ParseEvent(l); err == nil {
		t.Error("expected error for unknown signature")
	}
}
