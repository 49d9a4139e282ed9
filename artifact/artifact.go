// Package artifact reads and updates compiled contract artifacts in the
// Truffle build layout (build/contracts/<Name>.json).
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/meme-bots/uniswap-devnet/utils"
)

const cacheMaxCost = 64 << 20

type (
	Network struct {
		Address         string `json:"address"`
		TransactionHash string `json:"transactionHash"`
	}

	// File is the subset of the on-disk shape that Load reads.
	// SaveDeployment rewrites only "networks" and keeps everything else.
	File struct {
		ContractName string             `json:"contractName"`
		ABI          json.RawMessage    `json:"abi"`
		Bytecode     string             `json:"bytecode"`
		Networks     map[string]Network `json:"networks"`
	}

	Artifact struct {
		Name     string
		ABI      abi.ABI
		Bytecode []byte
		Networks map[string]Network
	}

	Store struct {
		dir   string
		cache *cache.Cache[[]byte]
		mu    sync.Mutex
	}
)

func NewStore(dir string) (*Store, error) {
	c, err := utils.NewCache(cacheMaxCost)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, cache: c}, nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) Load(ctx context.Context, name string) (*Artifact, error) {
	raw, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", name, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(f.ABI))
	if err != nil {
		return nil, fmt.Errorf("parse abi of %s: %w", name, err)
	}

	code := strings.TrimPrefix(f.Bytecode, "0x")
	if code == "" {
		return nil, fmt.Errorf("%s: %w", name, types.ErrNoBytecode)
	}
	// solc leaves __$hash$__ or __Name___ markers where a library address
	// must be linked.
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("%s: %w", name, types.ErrUnlinkedLibrary)
	}
	bytecode := common.FromHex(code)
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s: %w", name, types.ErrNoBytecode)
	}

	networks := f.Networks
	if networks == nil {
		networks = map[string]Network{}
	}

	contractName := f.ContractName
	if contractName == "" {
		contractName = name
	}

	return &Artifact{
		Name:     contractName,
		ABI:      parsed,
		Bytecode: bytecode,
		Networks: networks,
	}, nil
}

// SaveDeployment records address and tx hash under networks[chainID],
// replacing any earlier entry for that chain.
func (s *Store) SaveDeployment(ctx context.Context, name string, chainID uint64, address common.Address, txHash common.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, types.ErrArtifactNotFound)
		}
		return err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode artifact %s: %w", name, err)
	}

	networks := map[string]Network{}
	if v, ok := doc["networks"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &networks); err != nil {
			return fmt.Errorf("decode networks of %s: %w", name, err)
		}
	}
	networks[strconv.FormatUint(chainID, 10)] = Network{
		Address:         address.Hex(),
		TransactionHash: txHash.Hex(),
	}

	encoded, err := json.Marshal(networks)
	if err != nil {
		return err
	}
	doc["networks"] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}

	return s.cache.Delete(ctx, name)
}

// Deployed returns the recorded address of name on chainID.
func (s *Store) Deployed(ctx context.Context, name string, chainID uint64) (common.Address, error) {
	a, err := s.Load(ctx, name)
	if err != nil {
		return common.Address{}, err
	}
	n, ok := a.Networks[strconv.FormatUint(chainID, 10)]
	if !ok || !common.IsHexAddress(n.Address) {
		return common.Address{}, fmt.Errorf("%s on chain %d: %w", name, chainID, types.ErrNotFound)
	}
	return common.HexToAddress(n.Address), nil
}

func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	if raw, err := s.cache.Get(ctx, name); err == nil {
		return raw, nil
	}

	raw, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, types.ErrArtifactNotFound)
		}
		return nil, err
	}

	// a rejected or dropped cache write only costs a re-read
	_ = s.cache.Set(ctx, name, raw)
	return raw, nil
}
