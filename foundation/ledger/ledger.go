// Package ledger provides read and write access to the on-chain project
// registry and funding vault contracts. It is a thin wrapper over the RPC
// endpoint: no retries, no caching, every call either returns a well typed
// value or an error the caller can classify.
package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Config represents the configuration required to construct a client.
type Config struct {
	RPCURL          string
	RegistryAddress string
	VaultAddress    string
	ChainID         uint64

	// KeyFile points at the ecdsa private key used to sign the verification
	// transaction. Leave empty for a read-only client.
	KeyFile string
}

// Client provides access to the registry and vault contracts.
type Client struct {
	ethClient  *ethclient.Client
	registry   common.Address
	vault      common.Address
	regABI     abi.ABI
	vltABI     abi.ABI
	chainID    *big.Int
	privateKey *ecdsa.PrivateKey
}

// New constructs a client for the configured RPC endpoint and contracts.
func New(cfg Config) (*Client, error) {
	ethClient, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing rpc endpoint %q: %w", cfg.RPCURL, err)
	}

	regABI, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("parsing registry abi: %w", err)
	}

	vltABI, err := abi.JSON(strings.NewReader(vaultABI))
	if err != nil {
		return nil, fmt.Errorf("parsing vault abi: %w", err)
	}

	client := Client{
		ethClient: ethClient,
		registry:  common.HexToAddress(cfg.RegistryAddress),
		vault:     common.HexToAddress(cfg.VaultAddress),
		regABI:    regABI,
		vltABI:    vltABI,
		chainID:   new(big.Int).SetUint64(cfg.ChainID),
	}

	// The key is only needed for the verification transaction so a missing
	// file is fine. It becomes an error when VerifyProject is called.
	if cfg.KeyFile != "" {
		privateKey, err := crypto.LoadECDSA(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("unable to load private key for verifier: %w", err)
		}
		client.privateKey = privateKey
	}

	return &client, nil
}

// Close shuts down the underlying RPC connection.
func (c *Client) Close() {
	c.ethClient.Close()
}

// SignerAddress returns the address of the configured signing key, or false
// when the client is read-only.
func (c *Client) SignerAddress() (string, bool) {
	if c.privateKey == nil {
		return "", false
	}
	return crypto.PubkeyToAddress(c.privateKey.PublicKey).Hex(), true
}

// Project returns the registry record for the specified chain id.
func (c *Client) Project(ctx context.Context, chainID uint64) (Project, error) {
	result, err := c.call(ctx, c.registry, c.regABI, "getProject", new(big.Int).SetUint64(chainID))
	if err != nil {
		return Project{}, err
	}

	out := *abi.ConvertType(result[0], new(registryProject)).(*registryProject)

	prj := Project{
		ID:          out.Id.Uint64(),
		Name:        out.Name,
		Description: out.Description,
		Owner:       out.Owner.Hex(),
		TotalFunds:  out.TotalFunds.String(),
		FundingGoal: out.FundingGoal.String(),
		IsVerified:  out.IsVerified,
		IsActive:    out.IsActive,
		CreatedAt:   time.Unix(out.CreatedAt.Int64(), 0).UTC(),
		UpdatedAt:   time.Unix(out.UpdatedAt.Int64(), 0).UTC(),
	}

	return prj, nil
}

// ProjectFundings returns every contribution the vault holds for the
// specified chain id.
func (c *Client) ProjectFundings(ctx context.Context, chainID uint64) ([]Funding, error) {
	result, err := c.call(ctx, c.vault, c.vltABI, "getProjectFundings", new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, err
	}

	out := *abi.ConvertType(result[0], new([]vaultFunding)).(*[]vaultFunding)

	fundings := make([]Funding, len(out))
	for i, fund := range out {
		fundings[i] = Funding{
			Funder:    fund.Funder.Hex(),
			Amount:    fund.Amount.String(),
			Timestamp: time.Unix(fund.Timestamp.Int64(), 0).UTC(),
		}
	}

	return fundings, nil
}

// TotalContributions returns the sum of all contributions for the specified
// chain id as a decimal string.
func (c *Client) TotalContributions(ctx context.Context, chainID uint64) (string, error) {
	result, err := c.call(ctx, c.vault, c.vltABI, "getProjectTotalContributions", new(big.Int).SetUint64(chainID))
	if err != nil {
		return "", err
	}

	out := *abi.ConvertType(result[0], new(*big.Int)).(**big.Int)
	return out.String(), nil
}

// UserContribution returns the amount the specified address has contributed
// to the specified chain id as a decimal string.
func (c *Client) UserContribution(ctx context.Context, address string, chainID uint64) (string, error) {
	result, err := c.call(ctx, c.vault, c.vltABI, "getUserContribution", common.HexToAddress(address), new(big.Int).SetUint64(chainID))
	if err != nil {
		return "", err
	}

	out := *abi.ConvertType(result[0], new(*big.Int)).(**big.Int)
	return out.String(), nil
}

// UserProjects returns the chain ids of every project the specified address
// has created on the registry.
func (c *Client) UserProjects(ctx context.Context, address string) ([]uint64, error) {
	result, err := c.call(ctx, c.registry, c.regABI, "getUserProjects", common.HexToAddress(address))
	if err != nil {
		return nil, err
	}

	out := *abi.ConvertType(result[0], new([]*big.Int)).(*[]*big.Int)

	chainIDs := make([]uint64, len(out))
	for i, id := range out {
		chainIDs[i] = id.Uint64()
	}

	return chainIDs, nil
}

// ProjectCount returns the number of projects the registry holds.
func (c *Client) ProjectCount(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, c.registry, c.regABI, "projectCount")
	if err != nil {
		return 0, err
	}

	out := *abi.ConvertType(result[0], new(*big.Int)).(**big.Int)
	return out.Uint64(), nil
}

// VerifyProject submits the verification transaction for the specified chain
// id and blocks until it is mined. The transaction hash is returned on
// success.
func (c *Client) VerifyProject(ctx context.Context, chainID uint64) (string, error) {
	if c.privateKey == nil {
		return "", ErrNoSigner
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return "", fmt.Errorf("constructing transactor: %w", err)
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(c.registry, c.regABI, c.ethClient, c.ethClient, c.ethClient)

	tx, err := contract.Transact(opts, "verifyProject", new(big.Int).SetUint64(chainID))
	if err != nil {
		return "", classify("verifyProject", err)
	}

	receipt, err := bind.WaitMined(ctx, c.ethClient, tx)
	if err != nil {
		return "", &UnavailableError{Method: "verifyProject", Err: err}
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return "", &RejectedError{Method: "verifyProject", Err: fmt.Errorf("transaction %s reverted", tx.Hash().Hex())}
	}

	return tx.Hash().Hex(), nil
}

// =============================================================================

// call executes a read-only contract call against the latest block.
func (c *Client) call(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}

	msg := ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}

	output, err := c.ethClient.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, classify(method, err)
	}

	result, err := contractABI.Unpack(method, output)
	if err != nil {
		return nil, &RejectedError{Method: method, Err: err}
	}

	return result, nil
}
