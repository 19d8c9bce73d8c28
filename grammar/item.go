package grammar

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// lrItemID identifies an LR(1) item: production, dot position, and lookahead
// all participate.
type lrItemID [32]byte

func (id lrItemID) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(id[:]))
}

// lrItemCoreID identifies the LR(0) projection of an item: production and dot
// position only. Items sharing a core differ only in lookahead, which is what
// the LALR merge consolidates on.
type lrItemCoreID [32]byte

// lrItem is an LR(1) item [A → α・β, a].
//
//	E → E + T
//
//	Dot | Dotted Symbol | Item
//	----+---------------+------------
//	0   | E             | E →・E + T
//	1   | +             | E → E・+ T
//	2   | T             | E → E +・T
//	3   | Nil           | E → E + T・
type lrItem struct {
	id   lrItemID
	core lrItemCoreID
	prod productionID

	dot          int
	dottedSymbol symbol.Symbol

	// lookAhead is the single terminal this item is annotated with. The item
	// is reducible only when the lookahead appears as the next input symbol.
	lookAhead symbol.Symbol

	// When initial is true, the item derives from the augmented start
	// production with the dot at 0, like S' →・S.
	initial bool

	// When reducible is true, the dot is at the end, like E → E + T・.
	reducible bool

	// When kernel is true, the item is a kernel item.
	kernel bool
}

func genLRItemCoreID(prod *production, dot int) lrItemCoreID {
	b := make([]byte, 0, len(prod.id)+8)
	b = append(b, prod.id[:]...)
	bDot := make([]byte, 8)
	binary.LittleEndian.PutUint64(bDot, uint64(dot))
	b = append(b, bDot...)
	return lrItemCoreID(sha256.Sum256(b))
}

func newLRItem(prod *production, dot int, lookAhead symbol.Symbol) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}
	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}
	if !lookAhead.IsTerminal() {
		return nil, fmt.Errorf("a lookahead symbol must be a terminal symbol; passed: %v", lookAhead)
	}

	core := genLRItemCoreID(prod, dot)

	var id lrItemID
	{
		b := make([]byte, 0, len(core)+2)
		b = append(b, core[:]...)
		b = append(b, lookAhead.Byte()...)
		id = sha256.Sum256(b)
	}

	dottedSymbol := symbol.SymbolNil
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	return &lrItem{
		id:           id,
		core:         core,
		prod:         prod.id,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		lookAhead:    lookAhead,
		initial:      prod.lhs.IsStart() && dot == 0,
		reducible:    dot == prod.rhsLen,
		kernel:       prod.lhs.IsStart() && dot == 0 || dot > 0,
	}, nil
}

func sortItems(items []*lrItem) {
	sort.Slice(items, func(i, j int) bool {
		return bytes.Compare(items[i].id[:], items[j].id[:]) < 0
	})
}

// lrStateID identifies an LR(1) state by its full item set.
type lrStateID [32]byte

func genLRStateID(items []*lrItem) lrStateID {
	sortItems(items)
	b := make([]byte, 0, len(items)*32)
	for _, item := range items {
		b = append(b, item.id[:]...)
	}
	return lrStateID(sha256.Sum256(b))
}

// kernelID identifies the kernel of a state projected to cores, ignoring
// lookaheads. LR(1) states sharing a kernelID merge into one LALR(1) state.
type kernelID [32]byte

func genKernelID(items []*lrItem) kernelID {
	cores := map[lrItemCoreID]struct{}{}
	for _, item := range items {
		if !item.kernel {
			continue
		}
		cores[item.core] = struct{}{}
	}
	sorted := make([]lrItemCoreID, 0, len(cores))
	for c := range cores {
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	b := make([]byte, 0, len(sorted)*32)
	for _, c := range sorted {
		b = append(b, c[:]...)
	}
	return kernelID(sha256.Sum256(b))
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}
