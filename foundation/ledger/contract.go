package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// The backend only needs the handful of registry and vault functions below,
// so the ABIs are declared inline rather than generated from the full
// contract artifacts.

const registryABI = `[
	{"type":"function","name":"getProject","stateMutability":"view",
		"inputs":[{"name":"_id","type":"uint256"}],
		"outputs":[{"name":"","type":"tuple","components":[
			{"name":"id","type":"uint256"},
			{"name":"name","type":"string"},
			{"name":"description","type":"string"},
			{"name":"owner","type":"address"},
			{"name":"totalFunds","type":"uint256"},
			{"name":"fundingGoal","type":"uint256"},
			{"name":"isVerified","type":"bool"},
			{"name":"isActive","type":"bool"},
			{"name":"createdAt","type":"uint256"},
			{"name":"updatedAt","type":"uint256"}]}]},
	{"type":"function","name":"getUserProjects","stateMutability":"view",
		"inputs":[{"name":"_user","type":"address"}],
		"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"projectCount","stateMutability":"view",
		"inputs":[],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"verifyProject","stateMutability":"nonpayable",
		"inputs":[{"name":"_id","type":"uint256"}],
		"outputs":[]}
]`

const vaultABI = `[
	{"type":"function","name":"getProjectFundings","stateMutability":"view",
		"inputs":[{"name":"_projectId","type":"uint256"}],
		"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"funder","type":"address"},
			{"name":"amount","type":"uint256"},
			{"name":"timestamp","type":"uint256"}]}]},
	{"type":"function","name":"getUserContribution","stateMutability":"view",
		"inputs":[{"name":"_user","type":"address"},{"name":"_projectId","type":"uint256"}],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getProjectTotalContributions","stateMutability":"view",
		"inputs":[{"name":"_projectId","type":"uint256"}],
		"outputs":[{"name":"","type":"uint256"}]}
]`

// registryProject mirrors the tuple returned by the registry's getProject.
type registryProject struct {
	Id          *big.Int
	Name        string
	Description string
	Owner       common.Address
	TotalFunds  *big.Int
	FundingGoal *big.Int
	IsVerified  bool
	IsActive    bool
	CreatedAt   *big.Int
	UpdatedAt   *big.Int
}

// vaultFunding mirrors the tuple returned by the vault's getProjectFundings.
type vaultFunding struct {
	Funder    common.Address
	Amount    *big.Int
	Timestamp *big.Int
}
