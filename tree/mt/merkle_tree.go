// Package mt implements a plain binary Merkle tree, used to summarize the
// registry token records into a single state root.
package mt

import (
	"crypto"
	"errors"

	"github.com/lineupzk/lineup-go/hash"
)

var ErrIndexOutOfBounds = errors.New("data index out of bounds")

type (
	// Data is a tree leaf, anything that can hash itself with the given
	// hash algorithm.
	Data interface {
		Hash(hashAlgorithm crypto.Hash) ([]byte, error)
	}

	MerkleTree struct {
		root          *node
		dataLength    int
		hashAlgorithm crypto.Hash
	}

	// PathItem is a sibling hash on the path from a leaf to the root.
	// DirectionLeft is true when the leaf-side hash is the left child of
	// the parent (ie the sibling is on the right).
	PathItem struct {
		Hash          []byte
		DirectionLeft bool
	}

	node struct {
		left  *node
		right *node
		hash  []byte
	}
)

// New creates a Merkle tree from the ordered leaves. A tree over nil or
// empty data has a nil root hash.
func New(hashAlgorithm crypto.Hash, data []Data) (*MerkleTree, error) {
	if len(data) == 0 {
		return &MerkleTree{root: nil, dataLength: 0, hashAlgorithm: hashAlgorithm}, nil
	}
	root, err := build(hashAlgorithm, data)
	if err != nil {
		return nil, err
	}
	return &MerkleTree{root: root, dataLength: len(data), hashAlgorithm: hashAlgorithm}, nil
}

// GetRootHash returns the root hash of the tree, nil for an empty tree.
func (s *MerkleTree) GetRootHash() []byte {
	if s.root == nil {
		return nil
	}
	return s.root.hash
}

/*
GetMerklePath returns the Merkle path (sibling hashes, leaf to root order)
for the leaf at the given index. For a single leaf tree the path is nil.
*/
func (s *MerkleTree) GetMerklePath(leafIdx int) ([]*PathItem, error) {
	if leafIdx < 0 || leafIdx >= s.dataLength {
		return nil, ErrIndexOutOfBounds
	}

	var path []*PathItem
	curr, lo, hi := s.root, 0, s.dataLength
	for hi-lo > 1 {
		split := lo + hibit(hi-lo-1)
		if leafIdx < split {
			// leaf is in the left subtree, sibling is the right child
			path = append(path, &PathItem{Hash: curr.right.hash, DirectionLeft: true})
			curr, hi = curr.left, split
		} else {
			path = append(path, &PathItem{Hash: curr.left.hash, DirectionLeft: false})
			curr, lo = curr.right, split
		}
	}

	// reverse to leaf to root order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

/*
EvalMerklePath derives the root hash from the leaf data and its Merkle path.
*/
func EvalMerklePath(merklePath []*PathItem, leaf Data, hashAlgorithm crypto.Hash) ([]byte, error) {
	h, err := leaf.Hash(hashAlgorithm)
	if err != nil {
		return nil, err
	}
	for _, item := range merklePath {
		if item.DirectionLeft {
			h = hash.Sum(hashAlgorithm, h, item.Hash)
		} else {
			h = hash.Sum(hashAlgorithm, item.Hash, h)
		}
	}
	return h, nil
}

func build(hashAlgorithm crypto.Hash, data []Data) (*node, error) {
	if len(data) == 1 {
		h, err := data[0].Hash(hashAlgorithm)
		if err != nil {
			return nil, err
		}
		return &node{hash: h}, nil
	}
	split := hibit(len(data) - 1)
	left, err := build(hashAlgorithm, data[:split])
	if err != nil {
		return nil, err
	}
	right, err := build(hashAlgorithm, data[split:])
	if err != nil {
		return nil, err
	}
	return &node{
		left:  left,
		right: right,
		hash:  hash.Sum(hashAlgorithm, left.hash, right.hash),
	}, nil
}

// hibit returns the largest power of two strictly smaller than m+1,
// ie the highest set bit of m; hibit(0) is 0.
func hibit(m int) int {
	if m < 0 {
		panic("hibit function input cannot be negative (merkle tree input data length cannot be zero)")
	}
	m |= m >> 1
	m |= m >> 2
	m |= m >> 4
	m |= m >> 8
	m |= m >> 16
	m |= m >> 32
	return m - (m >> 1)
}
