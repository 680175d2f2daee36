// Package badger provides a BadgerDB backed persistent registry.
package badger

import (
	"context"
	"crypto"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/cbor"
	"github.com/lineupzk/lineup-go/registry"
	"github.com/lineupzk/lineup-go/tree/mt"
	"github.com/lineupzk/lineup-go/types"
)

const (
	playerPrefix   = "player/"
	teamPrefix     = "team/"
	approvalPrefix = "approval/"
	mintLogPrefix  = "mintlog/"
	teamSeqKey     = "seq/team"
	playerSeqKey   = "seq/player"
)

// Config for opening a registry store.
type Config struct {
	Path       string // data directory, ignored when InMemory
	InMemory   bool
	SyncWrites bool
	URIFunc    func(types.ContentID) string // renders content hash to metadata URI, may be nil
	Logger     *slog.Logger                 // nil for slog default
}

// Store implements registry.PlayerRegistry and registry.TeamRegistry on
// top of BadgerDB. Record values are deterministically CBOR encoded.
type Store struct {
	db      *badgerdb.DB
	uriFunc func(types.ContentID) string
	closed  atomic.Bool
}

var (
	_ registry.PlayerRegistry = (*Store)(nil)
	_ registry.TeamRegistry   = (*Store)(nil)
)

func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("badger: path is required (unless in memory)")
	}

	opts := badgerdb.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil // suppress badger's internal logging
	if cfg.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("registry store opened", "path", cfg.Path, "in_memory", cfg.InMemory)

	return &Store{db: db, uriFunc: cfg.URIFunc}, nil
}

func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil // already closed
	}
	return s.db.Close()
}

func (s *Store) checkClosed() error {
	if s.closed.Load() {
		return registry.ErrClosed
	}
	return nil
}

func playerKey(id types.TokenID) []byte {
	return append([]byte(playerPrefix), idBytes(id)...)
}

func teamKey(id types.TokenID) []byte {
	return append([]byte(teamPrefix), idBytes(id)...)
}

func mintLogKey(index uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return append([]byte(mintLogPrefix), b[:]...)
}

func approvalKey(owner, operator common.Address) []byte {
	key := append([]byte(approvalPrefix), owner.Bytes()...)
	return append(key, operator.Bytes()...)
}

// idBytes encodes the id fixed width so key order follows id order.
func idBytes(id types.TokenID) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}

func (s *Store) MintPlayer(_ context.Context, owner common.Address, id types.TokenID, contentHash types.ContentID) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		if _, err := txn.Get(playerKey(id)); err == nil {
			return fmt.Errorf("minting player %s: %w", id, registry.ErrAlreadyMinted)
		} else if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			return err
		}

		record, err := cbor.Marshal(&registry.PlayerToken{ID: id, Owner: owner, ContentHash: contentHash})
		if err != nil {
			return fmt.Errorf("encoding player record: %w", err)
		}
		if err := txn.Set(playerKey(id), record); err != nil {
			return err
		}

		supply, err := readCounter(txn, playerSeqKey)
		if err != nil {
			return err
		}
		if err := txn.Set(mintLogKey(supply), idBytes(id)); err != nil {
			return err
		}
		return writeCounter(txn, playerSeqKey, supply+1)
	})
	if err != nil {
		if errors.Is(err, registry.ErrAlreadyMinted) {
			return err
		}
		return fmt.Errorf("badger: mint player: %w", err)
	}
	return nil
}

func (s *Store) getPlayer(txn *badgerdb.Txn, id types.TokenID) (*registry.PlayerToken, error) {
	item, err := txn.Get(playerKey(id))
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, fmt.Errorf("player %s: %w", id, registry.ErrNotFound)
		}
		return nil, err
	}
	p := &registry.PlayerToken{}
	if err := item.Value(func(val []byte) error { return cbor.Unmarshal(val, p) }); err != nil {
		return nil, fmt.Errorf("decoding player record: %w", err)
	}
	return p, nil
}

func (s *Store) OwnerOf(_ context.Context, id types.TokenID) (common.Address, error) {
	if err := s.checkClosed(); err != nil {
		return common.Address{}, err
	}
	var owner common.Address
	err := s.db.View(func(txn *badgerdb.Txn) error {
		p, err := s.getPlayer(txn, id)
		if err != nil {
			return err
		}
		owner = p.Owner
		return nil
	})
	return owner, err
}

func (s *Store) ContentHash(_ context.Context, id types.TokenID) (types.ContentID, error) {
	if err := s.checkClosed(); err != nil {
		return types.ContentID{}, err
	}
	var contentHash types.ContentID
	err := s.db.View(func(txn *badgerdb.Txn) error {
		p, err := s.getPlayer(txn, id)
		if err != nil {
			return err
		}
		contentHash = p.ContentHash
		return nil
	})
	return contentHash, err
}

func (s *Store) URI(ctx context.Context, id types.TokenID) (string, error) {
	contentHash, err := s.ContentHash(ctx, id)
	if err != nil {
		return "", err
	}
	if s.uriFunc == nil {
		return "", nil
	}
	return s.uriFunc(contentHash), nil
}

func (s *Store) Transfer(_ context.Context, from, to common.Address, id types.TokenID) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		p, err := s.getPlayer(txn, id)
		if err != nil {
			return err
		}
		if p.Owner != from {
			return fmt.Errorf("transferring player %s: %w", id, registry.ErrNotOwner)
		}
		p.Owner = to
		record, err := cbor.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding player record: %w", err)
		}
		return txn.Set(playerKey(id), record)
	})
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) || errors.Is(err, registry.ErrNotOwner) {
			return err
		}
		return fmt.Errorf("badger: transfer: %w", err)
	}
	return nil
}

func (s *Store) SetApprovalForAll(_ context.Context, owner, operator common.Address, approved bool) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		if approved {
			return txn.Set(approvalKey(owner, operator), []byte{1})
		}
		return txn.Delete(approvalKey(owner, operator))
	})
	if err != nil {
		return fmt.Errorf("badger: set approval: %w", err)
	}
	return nil
}

func (s *Store) IsApprovedForAll(_ context.Context, owner, operator common.Address) (bool, error) {
	if err := s.checkClosed(); err != nil {
		return false, err
	}
	var approved bool
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(approvalKey(owner, operator))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		}
		if err == nil {
			approved = true
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("badger: read approval: %w", err)
	}
	return approved, nil
}

func (s *Store) BalanceOf(_ context.Context, owner common.Address) (uint64, error) {
	if err := s.checkClosed(); err != nil {
		return 0, err
	}
	var n uint64
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(playerPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			p := &registry.PlayerToken{}
			if err := it.Item().Value(func(val []byte) error { return cbor.Unmarshal(val, p) }); err != nil {
				return err
			}
			if p.Owner == owner {
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("badger: balance of: %w", err)
	}
	return n, nil
}

func (s *Store) TotalSupply(_ context.Context) (uint64, error) {
	if err := s.checkClosed(); err != nil {
		return 0, err
	}
	var supply uint64
	err := s.db.View(func(txn *badgerdb.Txn) error {
		var err error
		supply, err = readCounter(txn, playerSeqKey)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("badger: total supply: %w", err)
	}
	return supply, nil
}

func (s *Store) TokenByIndex(_ context.Context, index uint64) (types.TokenID, error) {
	if err := s.checkClosed(); err != nil {
		return 0, err
	}
	var id types.TokenID
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(mintLogKey(index))
		if err != nil {
			if errors.Is(err, badgerdb.ErrKeyNotFound) {
				return fmt.Errorf("token index %d: %w", index, registry.ErrNotFound)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id = types.TokenID(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	return id, err
}

func (s *Store) MintTeam(_ context.Context, owner common.Address, roster types.Roster, contentID types.ContentID) (types.TokenID, error) {
	if err := s.checkClosed(); err != nil {
		return 0, err
	}
	var id types.TokenID
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		seq, err := readCounter(txn, teamSeqKey)
		if err != nil {
			return err
		}
		id = types.TokenID(seq)

		record, err := cbor.Marshal(&registry.TeamToken{ID: id, Owner: owner, Roster: roster, ContentID: contentID})
		if err != nil {
			return fmt.Errorf("encoding team record: %w", err)
		}
		if err := txn.Set(teamKey(id), record); err != nil {
			return err
		}
		return writeCounter(txn, teamSeqKey, seq+1)
	})
	if err != nil {
		return 0, fmt.Errorf("badger: mint team: %w", err)
	}
	return id, nil
}

func (s *Store) TeamByID(_ context.Context, id types.TokenID) (*registry.TeamToken, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}
	team := &registry.TeamToken{}
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(teamKey(id))
		if err != nil {
			if errors.Is(err, badgerdb.ErrKeyNotFound) {
				return fmt.Errorf("team %s: %w", id, registry.ErrNotFound)
			}
			return err
		}
		return item.Value(func(val []byte) error { return cbor.Unmarshal(val, team) })
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Store) TotalTeams(_ context.Context) (uint64, error) {
	if err := s.checkClosed(); err != nil {
		return 0, err
	}
	var n uint64
	err := s.db.View(func(txn *badgerdb.Txn) error {
		var err error
		n, err = readCounter(txn, teamSeqKey)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("badger: total teams: %w", err)
	}
	return n, nil
}

// StateRoot returns the Merkle root over all token records, players in
// mint order followed by teams in id order. Nil for an empty store.
func (s *Store) StateRoot(ctx context.Context) ([]byte, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}
	var leaves []mt.Data
	err := s.db.View(func(txn *badgerdb.Txn) error {
		supply, err := readCounter(txn, playerSeqKey)
		if err != nil {
			return err
		}
		for i := uint64(0); i < supply; i++ {
			item, err := txn.Get(mintLogKey(i))
			if err != nil {
				return err
			}
			var id types.TokenID
			if err := item.Value(func(val []byte) error {
				id = types.TokenID(binary.BigEndian.Uint64(val))
				return nil
			}); err != nil {
				return err
			}
			p, err := s.getPlayer(txn, id)
			if err != nil {
				return err
			}
			leaves = append(leaves, p)
		}

		teams, err := readCounter(txn, teamSeqKey)
		if err != nil {
			return err
		}
		for i := uint64(0); i < teams; i++ {
			item, err := txn.Get(teamKey(types.TokenID(i)))
			if err != nil {
				return err
			}
			team := &registry.TeamToken{}
			if err := item.Value(func(val []byte) error { return cbor.Unmarshal(val, team) }); err != nil {
				return err
			}
			leaves = append(leaves, team)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger: state root: %w", err)
	}

	tree, err := mt.New(crypto.SHA256, leaves)
	if err != nil {
		return nil, fmt.Errorf("building state tree: %w", err)
	}
	return tree.GetRootHash(), nil
}

func readCounter(txn *badgerdb.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

func writeCounter(txn *badgerdb.Txn, key string, n uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return txn.Set([]byte(key), b[:])
}
