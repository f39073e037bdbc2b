package project

import "errors"

// Set of error variables for CRUD and verification operations.
var (
	ErrNotFound        = errors.New("project not found")
	ErrAlreadyVerified = errors.New("project already verified")
	ErrNotOnChain      = errors.New("project is not on chain")
	ErrChainIDExists   = errors.New("chain id already assigned to another project")
)
