package scorer

import (
	"testing"

	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

func fn(children ...*gsg.Node) *gsg.Node {
	return &gsg.Node{Kind: gsg.Function, Children: children}
}

func TestScore_EmptyFunctionIsZero(t *testing.T) {
	total, lines := Score(fn(), 0)
	if total != 0 || len(lines) != 0 {
		t.Fatalf("total = %d, lines = %v, want 0 and empty", total, lines)
	}
}

func TestScore_SingleIfAtNestingZero(t *testing.T) {
	f := fn(&gsg.Node{Kind: gsg.If})
	total, lines := Score(f, 0)
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(lines) != 1 || lines[0].Contribution != 1 {
		t.Fatalf("lines = %+v, want a single contribution of 1", lines)
	}
}

func TestScore_NestedIfAddsNestingPenalty(t *testing.T) {
	// if: if: (nested one level) -> outer costs 1, inner costs 1+1=2, total 3.
	inner := &gsg.Node{Kind: gsg.If}
	outer := &gsg.Node{Kind: gsg.If, Children: []*gsg.Node{inner}}
	total, _ := Score(fn(outer), 0)
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
}

func TestScore_ElseIfChainStaysAtSameNesting(t *testing.T) {
	// if / elif / else, no nesting: each of If and ElseIf costs 1 regardless
	// of chain position, Else costs 0.
	elseNode := &gsg.Node{Kind: gsg.Else}
	elseIf := &gsg.Node{Kind: gsg.ElseIf, AddlCost: 1, Children: []*gsg.Node{elseNode}}
	ifNode := &gsg.Node{Kind: gsg.If, Children: []*gsg.Node{elseIf}}
	total, _ := Score(fn(ifNode), 0)
	if total != 2 {
		t.Fatalf("total = %d, want 2 (If=1, ElseIf=1, Else=0)", total)
	}
}

func TestScore_ElseIfChainDoesNotDeepenABodyNestedInsideIt(t *testing.T) {
	// if a: if b: pass (nested directly, not chained) means the nested If
	// sees nesting+1; but an ElseIf sibling attached to an If sees the same
	// nesting as its If, so a For inside the ElseIf body should be at
	// nesting+1 relative to the If, not nesting+2.
	forNode := &gsg.Node{Kind: gsg.For}
	elseIf := &gsg.Node{Kind: gsg.ElseIf, Children: []*gsg.Node{forNode}}
	ifNode := &gsg.Node{Kind: gsg.If, Children: []*gsg.Node{elseIf}}
	total, _ := Score(fn(ifNode), 0)
	// If=1 (nesting 0), ElseIf has no AddlCost so contributes 0 itself but
	// sees the same nesting (0) as the If; its For child opens nesting+1=1,
	// so For costs 1+1=2. Total = 1+0+2 = 3.
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
}

func TestScore_ForWhileDoWhileCostNestingPlusOne(t *testing.T) {
	for _, kind := range []gsg.NodeKind{gsg.For, gsg.While, gsg.DoWhile} {
		total, _ := Score(fn(&gsg.Node{Kind: kind}), 2)
		if total != 3 {
			t.Errorf("kind %v at nesting 2: total = %d, want 3", kind, total)
		}
	}
}

func TestScore_SwitchOwnCostZeroCasesCarryNoBaseCost(t *testing.T) {
	sw := &gsg.Node{Kind: gsg.Switch, Children: []*gsg.Node{
		{Kind: gsg.Case},
		{Kind: gsg.Case},
	}}
	total, lines := Score(fn(sw), 0)
	if total != 0 {
		t.Fatalf("total = %d, want 0 (switch and empty cases contribute nothing)", total)
	}
	if len(lines) != 0 {
		t.Fatalf("lines = %+v, want none", lines)
	}
}

func TestScore_CaseBodyOneNestingDeeper(t *testing.T) {
	// A For inside a Case body should see nesting+1 relative to the Switch.
	caseNode := &gsg.Node{Kind: gsg.Case, Children: []*gsg.Node{{Kind: gsg.For}}}
	sw := &gsg.Node{Kind: gsg.Switch, Children: []*gsg.Node{caseNode}}
	total, _ := Score(fn(sw), 0)
	if total != 2 {
		t.Fatalf("total = %d, want 2 (for at nesting 1 costs 1+1)", total)
	}
}

func TestScore_TryFinallyOwnCostZeroExceptCarriesAddlCost(t *testing.T) {
	block := &gsg.Node{Kind: gsg.Block, Children: []*gsg.Node{
		{Kind: gsg.Try},
		{Kind: gsg.Except, AddlCost: 1},
		{Kind: gsg.Finally},
	}}
	total, _ := Score(fn(block), 0)
	if total != 1 {
		t.Fatalf("total = %d, want 1 (only Except's AddlCost)", total)
	}
}

func TestScore_ExprContributesItsAddlCostOnce(t *testing.T) {
	expr := &gsg.Node{Kind: gsg.Expr, AddlCost: 3}
	total, lines := Score(fn(expr), 5)
	if total != 3 {
		t.Fatalf("total = %d, want 3 regardless of nesting", total)
	}
	if len(lines) != 1 || lines[0].Contribution != 3 {
		t.Fatalf("lines = %+v, want a single contribution of 3", lines)
	}
}

func TestScore_FunctionChildIsNeverDescendedInto(t *testing.T) {
	inner := fn(&gsg.Node{Kind: gsg.If})
	outer := fn(inner)
	total, lines := Score(outer, 0)
	if total != 0 || len(lines) != 0 {
		t.Fatalf("total = %d, lines = %v, want 0 and empty: nested functions score independently", total, lines)
	}
}

func TestScore_DecoratorFactoryScoresFromInnerFunction(t *testing.T) {
	inner := fn(&gsg.Node{Kind: gsg.If})
	outer := &gsg.Node{Kind: gsg.Function, DecoratorFactory: true, Children: []*gsg.Node{inner}}
	total, _ := Score(outer, 0)
	if total != 1 {
		t.Fatalf("total = %d, want 1: a decorator factory scores from its wrapped function's body", total)
	}
}

func TestScore_DecoratorFactoryFlagIgnoredWithoutAFunctionChild(t *testing.T) {
	ifNode := &gsg.Node{Kind: gsg.If}
	outer := &gsg.Node{Kind: gsg.Function, DecoratorFactory: true, Children: []*gsg.Node{ifNode}}
	total, _ := Score(outer, 0)
	if total != 1 {
		t.Fatalf("total = %d, want 1: with no nested Function child, the flag has no effect on scoring", total)
	}
}

func TestScore_LineContributionsSumToTotal(t *testing.T) {
	inner := &gsg.Node{Kind: gsg.If}
	outer := &gsg.Node{Kind: gsg.For, Children: []*gsg.Node{inner}}
	total, lines := Score(fn(outer), 0)
	var sum uint32
	for _, l := range lines {
		sum += l.Contribution
	}
	if sum != total {
		t.Fatalf("line contributions sum to %d, want %d", sum, total)
	}
}
