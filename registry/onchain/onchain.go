/*
Package onchain provides a read-only player registry view over a
deployed ERC-721 contract, the same queries the proving program makes
against the player contract. It implements registry.PlayerReader so the
team builder can authorize rosters directly against chain state.
*/
package onchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/lineupzk/lineup-go/registry"
	"github.com/lineupzk/lineup-go/types"
)

// ContractCaller executes a read-only contract call. *ethclient.Client
// satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

const erc721ABI = `[
	{"name":"ownerOf","type":"function","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"owner","type":"address"}]},
	{"name":"isApprovedForAll","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"name":"approved","type":"bool"}]},
	{"name":"tokenURI","type":"function","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"uri","type":"string"}]}
]`

// PlayerContract reads the player ledger from an ERC-721 contract at a
// fixed block ("latest" when block is nil) so one build request sees one
// consistent snapshot.
type PlayerContract struct {
	caller   ContractCaller
	contract common.Address
	block    *big.Int
	abi      abi.ABI
}

var _ registry.PlayerReader = (*PlayerContract)(nil)

func NewPlayerContract(caller ContractCaller, contract common.Address, block *big.Int) (*PlayerContract, error) {
	parsed, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, fmt.Errorf("parsing ERC-721 ABI: %w", err)
	}
	return &PlayerContract{caller: caller, contract: contract, block: block, abi: parsed}, nil
}

func (c *PlayerContract) call(ctx context.Context, method string, out any, args ...any) error {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("packing %s call: %w", method, err)
	}
	output, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: input}, c.block)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	results, err := c.abi.Unpack(method, output)
	if err != nil {
		return fmt.Errorf("unpacking %s result: %w", method, err)
	}
	return c.abi.Methods[method].Outputs.Copy(out, results)
}

/*
OwnerOf returns the owner of the token. ERC-721 ownerOf reverts for an
unminted id, which surfaces here as registry.ErrNotFound.
*/
func (c *PlayerContract) OwnerOf(ctx context.Context, id types.TokenID) (common.Address, error) {
	var owner common.Address
	if err := c.call(ctx, "ownerOf", &owner, new(big.Int).SetUint64(uint64(id))); err != nil {
		if isRevert(err) {
			return common.Address{}, fmt.Errorf("player %s: %w", id, registry.ErrNotFound)
		}
		return common.Address{}, err
	}
	return owner, nil
}

func (c *PlayerContract) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	var approved bool
	if err := c.call(ctx, "isApprovedForAll", &approved, owner, operator); err != nil {
		return false, err
	}
	return approved, nil
}

// URI resolves the token metadata URI (tokenURI), ErrNotFound for an
// unminted id.
func (c *PlayerContract) URI(ctx context.Context, id types.TokenID) (string, error) {
	var uri string
	if err := c.call(ctx, "tokenURI", &uri, new(big.Int).SetUint64(uint64(id))); err != nil {
		if isRevert(err) {
			return "", fmt.Errorf("player %s: %w", id, registry.ErrNotFound)
		}
		return "", err
	}
	return uri, nil
}

/*
isRevert reports whether the call failed inside the contract rather
than in the transport. Geth returns a typed error carrying the revert
data and the JSON-RPC execution error code 3, other clients may only
put the standard message in the error text.
*/
func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == 3 {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}
