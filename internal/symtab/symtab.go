// Package symtab provides block-scoped variable tables mapping names to
// the AST nodes that declared them.
//
// Two variants exist. The lenient Table is used while parsing: speculative
// attempts may declare the same name repeatedly, so re-declarations are
// ignored. The Strict table is used by the variable merging pass and
// reports every collision within one block.
package symtab

import (
	"fmt"

	"github.com/greqlkit/greql/ast"
)

type block map[string]ast.NodeID

// scopes is the block stack shared by both variants. Lookups search from
// the innermost block outwards.
type scopes struct {
	blocks []block
}

func (s *scopes) BlockBegin() {
	s.blocks = append(s.blocks, block{})
}

// BlockEnd discards the innermost block. It panics when no block is open.
func (s *scopes) BlockEnd() {
	if len(s.blocks) == 0 {
		panic("symtab: BlockEnd without BlockBegin")
	}
	s.blocks = s.blocks[:len(s.blocks)-1]
}

// Depth returns the number of open blocks.
func (s *scopes) Depth() int {
	return len(s.blocks)
}

// Lookup returns the innermost declaration of name.
func (s *scopes) Lookup(name string) (ast.NodeID, bool) {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if n, ok := s.blocks[i][name]; ok {
			return n, true
		}
	}
	return ast.NoNode, false
}

func (s *scopes) current() block {
	if len(s.blocks) == 0 {
		s.BlockBegin()
	}
	return s.blocks[len(s.blocks)-1]
}

// Table is the lenient table used during parsing.
type Table struct {
	scopes
}

// New returns an empty lenient table.
func New() *Table {
	return &Table{}
}

// Insert declares name in the innermost block. An existing declaration in
// the same block is kept.
func (t *Table) Insert(name string, n ast.NodeID) {
	b := t.current()
	if _, ok := b[name]; !ok {
		b[name] = n
	}
}

// Unwind closes blocks until depth blocks remain. Used to drop the blocks
// a failed speculative attempt left open.
func (t *Table) Unwind(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth < len(t.blocks) {
		t.blocks = t.blocks[:depth]
	}
}

// DuplicateError reports a second declaration of a name in one block.
type DuplicateError struct {
	Name     string
	Previous ast.NodeID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate declaration of %q", e.Name)
}

// Strict is the table used by the variable merging pass.
type Strict struct {
	scopes
}

// NewStrict returns an empty strict table.
func NewStrict() *Strict {
	return &Strict{}
}

// Insert declares name in the innermost block, or returns a
// *DuplicateError naming the earlier declaration.
func (t *Strict) Insert(name string, n ast.NodeID) error {
	b := t.current()
	if prev, ok := b[name]; ok {
		return &DuplicateError{Name: name, Previous: prev}
	}
	b[name] = n
	return nil
}
