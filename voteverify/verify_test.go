package voteverify

import "testing"

func TestVerifyAcceptsMatchingLeafWithEmptyProof(t *testing.T) {
	if !Verify("abc", nil, "abc") {
		t.Fatalf("expected empty-proof leaf==root to verify")
	}
}

func TestVerifyRejectsMismatchedLeafWithEmptyProof(t *testing.T) {
	if Verify("abc", nil, "def") {
		t.Fatalf("expected empty-proof leaf!=root to reject")
	}
}

func TestVerifyAcceptsEitherSideOrdering(t *testing.T) {
	leaf := "leafhash"
	sibling := "siblinghash"

	leftRoot := hexConcatHash(leaf, sibling)
	rightRoot := hexConcatHash(sibling, leaf)

	if !Verify(leaf, []string{sibling}, leftRoot) {
		t.Fatalf("expected leaf-as-left ordering to verify")
	}
	if !Verify(leaf, []string{sibling}, rightRoot) {
		t.Fatalf("expected leaf-as-right ordering to verify")
	}
}

func TestVerifyRejectsBitFlipInLeaf(t *testing.T) {
	leaf := "leafhash"
	sibling := "siblinghash"
	root := hexConcatHash(leaf, sibling)

	if Verify("leafhasX", []string{sibling}, root) {
		t.Fatalf("expected bit-flipped leaf to reject")
	}
}

func TestVerifyRejectsBitFlipInProofEntry(t *testing.T) {
	leaf := "leafhash"
	sibling := "siblinghash"
	root := hexConcatHash(leaf, sibling)

	if Verify(leaf, []string{"siblinghasX"}, root) {
		t.Fatalf("expected bit-flipped proof entry to reject")
	}
}

func TestVerifyRejectsBitFlipInRoot(t *testing.T) {
	leaf := "leafhash"
	sibling := "siblinghash"
	root := hexConcatHash(leaf, sibling)

	if Verify(leaf, []string{sibling}, root+"0") {
		t.Fatalf("expected modified root to reject")
	}
}

func TestVerifyMultiLevelProof(t *testing.T) {
	l0 := "a"
	l1 := "b"
	l2 := "c"
	l3 := "d"

	h01 := hexConcatHash(l0, l1)
	h23 := hexConcatHash(l2, l3)
	root := hexConcatHash(h01, h23)

	if !Verify(l0, []string{l1, h23}, root) {
		t.Fatalf("expected leaf 0's proof to verify")
	}
	if !Verify(l2, []string{l3, h01}, root) {
		t.Fatalf("expected leaf 2's proof to verify")
	}
}
