package rope

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRotationsRecomputeWeight(t *testing.T) {
	// Hand-build a left-heavy subtree and rotate it; a rotation that
	// forgets to recompute weight silently corrupts index routing.
	a := newLeaf(NewChunk("aa"))
	b := newLeaf(NewChunk("bbb"))
	c := newLeaf(NewChunk("cccc"))
	n := newInternal(newInternal(a, b), c)

	rotated := rotateRight(n)
	if rotated.weight != 2 {
		t.Errorf("rotated root weight = %d, want 2", rotated.weight)
	}
	if rotated.right.weight != 3 {
		t.Errorf("rotated right child weight = %d, want 3", rotated.right.weight)
	}
	if rotated.length != 9 {
		t.Errorf("rotated length = %d, want 9", rotated.length)
	}

	back := rotateLeft(rotated)
	if back.weight != 5 {
		t.Errorf("left-rotated root weight = %d, want 5", back.weight)
	}
	for i, want := range "aabbbcccc" {
		if got := back.byteAt(i); got != byte(want) {
			t.Fatalf("byteAt(%d) = %c after rotations, want %c", i, got, want)
		}
	}
}

func TestBalanceNodeCases(t *testing.T) {
	lf := func(s string) *node { return newLeaf(NewChunk(s)) }
	content := func(n *node) string {
		var sb strings.Builder
		n.appendTo(&sb)
		return sb.String()
	}

	tests := []struct {
		name   string
		build  func() *node
		wantBF int
	}{
		{
			// Left child tilts left (or is even): single right rotation.
			"left-left", func() *node {
				return newInternal(newInternal(newInternal(lf("a"), lf("b")), lf("c")), lf("d"))
			}, 2,
		},
		{
			// Left child tilts right: rotate it left, then self right.
			"left-right", func() *node {
				return newInternal(newInternal(lf("a"), newInternal(lf("b"), lf("c"))), lf("d"))
			}, 2,
		},
		{
			"right-right", func() *node {
				return newInternal(lf("a"), newInternal(lf("b"), newInternal(lf("c"), lf("d"))))
			}, -2,
		},
		{
			"right-left", func() *node {
				return newInternal(lf("a"), newInternal(newInternal(lf("b"), lf("c")), lf("d")))
			}, -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.build()
			if bf := n.balanceFactor(); bf != tt.wantBF {
				t.Fatalf("setup balance factor = %d, want %d", bf, tt.wantBF)
			}
			before := content(n)

			bal := balanceNode(n)
			if bf := bal.balanceFactor(); bf < -1 || bf > 1 {
				t.Errorf("balance factor %d after balancing", bf)
			}
			if bal.height >= n.height {
				t.Errorf("height not reduced: %d -> %d", n.height, bal.height)
			}
			if bal.length != n.length {
				t.Errorf("length changed: %d -> %d", n.length, bal.length)
			}
			if got := content(bal); got != before {
				t.Errorf("content reordered: %q -> %q", before, got)
			}
			if bal.weight != bal.left.length {
				t.Errorf("root weight %d != left length %d", bal.weight, bal.left.length)
			}
		})
	}
}

func TestSequentialAppendsStayBalanced(t *testing.T) {
	// 1000 single-character appends with tiny leaves so the tree has to
	// earn its balance structurally.
	r := New(WithLeafBounds(1, 2))
	var err error
	for i := 0; i < 1000; i++ {
		r, err = r.Insert(r.Len(), "x")
		if err != nil {
			t.Fatal(err)
		}
	}
	if r.Len() != 1000 {
		t.Fatalf("Len() = %d", r.Len())
	}
	if !r.Balanced() {
		t.Errorf("height %d exceeds AVL ceiling %d", r.Height(), maxHeightFor(r.Len()))
	}
	if r.Height() > 16 {
		t.Errorf("height %d after 1000 appends, want <= 16", r.Height())
	}
	checkInvariants(t, r)
}

func TestSequentialPrependsStayBalanced(t *testing.T) {
	r := New(WithLeafBounds(1, 2))
	var err error
	for i := 0; i < 1000; i++ {
		r, err = r.Insert(0, "y")
		if err != nil {
			t.Fatal(err)
		}
	}
	if !r.Balanced() {
		t.Errorf("height %d exceeds AVL ceiling %d", r.Height(), maxHeightFor(r.Len()))
	}
	checkInvariants(t, r)
}

func TestRandomEditsStayBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := FromString(strings.Repeat("abcdefgh", 32), WithLeafBounds(2, 8))
	var err error

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 || r.Len() < 4 {
			pos := rng.Intn(r.Len() + 1)
			r, err = r.Insert(pos, "qq")
		} else {
			start := rng.Intn(r.Len() - 2)
			r, err = r.Delete(start, start+2)
		}
		if err != nil {
			t.Fatal(err)
		}
		if !r.Balanced() {
			t.Fatalf("unbalanced after edit %d: height %d, len %d", i, r.Height(), r.Len())
		}
	}
	checkInvariants(t, r)
}

func TestRebuildStrategy(t *testing.T) {
	r := New(WithLeafBounds(1, 2), WithStrategy(BalanceOnRebuild))
	var err error
	for i := 0; i < 1000; i++ {
		r, err = r.Insert(r.Len(), "z")
		if err != nil {
			t.Fatal(err)
		}
	}
	if r.Len() != 1000 {
		t.Fatalf("Len() = %d", r.Len())
	}
	// The rebuild trigger must have kept the height within the ceiling.
	if !r.Balanced() {
		t.Errorf("rebuild strategy left height %d, ceiling %d", r.Height(), maxHeightFor(r.Len()))
	}
	if r.String() != strings.Repeat("z", 1000) {
		t.Error("rebuild strategy corrupted content")
	}
	checkInvariants(t, r)
}

func TestRebuildCoalescesLeaves(t *testing.T) {
	// Delete-heavy editing leaves undersized spans behind; the rebuild
	// pass folds them back together.
	r := FromString(strings.Repeat("0123456789", 20), WithLeafBounds(4, 10))
	var err error
	for i := 0; i < 50; i++ {
		r, err = r.Delete(i, i+2)
		if err != nil {
			t.Fatal(err)
		}
	}
	before := countLeaves(r.root)
	r2 := r.Rebalance()
	after := countLeaves(r2.root)
	if after > before {
		t.Errorf("rebuild grew leaf count: %d -> %d", before, after)
	}
	// Every adjacent pair in the rebuilt tree must be too big to merge.
	chunks := make([]Chunk, 0, after)
	collectChunks(r2.root, &chunks)
	for i := 1; i < len(chunks); i++ {
		if chunks[i-1].Len()+chunks[i].Len() <= 10 {
			t.Errorf("adjacent leaves %d and %d still mergeable (%d + %d)", i-1, i, chunks[i-1].Len(), chunks[i].Len())
		}
	}
}

func countLeaves(n *node) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return 1
	}
	return countLeaves(n.left) + countLeaves(n.right)
}

func TestMaxHeightFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{1000, 15},
	}
	for _, tt := range tests {
		if got := maxHeightFor(tt.n); got != tt.want {
			t.Errorf("maxHeightFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
