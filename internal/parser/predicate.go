package parser

import (
	"cmp"
	"log/slog"

	"github.com/greqlkit/greql/internal/types"
)

type checkpoint struct {
	pos int
	ok  bool
}

// speculationFailed unwinds a speculative attempt back to test.
type speculationFailed struct{}

func (p *Parser) inPredicateMode() bool {
	return len(p.preds) > 0
}

func (p *Parser) predicateStart() {
	p.preds = append(p.preds, checkpoint{pos: p.pos, ok: p.ok})
	p.ok = true
	p.stats.Predicates++
}

// predicateEnd rolls the cursor back to the matching predicateStart and
// reports whether the attempt succeeded.
func (p *Parser) predicateEnd() bool {
	top := p.preds[len(p.preds)-1]
	p.preds = p.preds[:len(p.preds)-1]
	succeeded := p.ok
	p.pos = top.pos
	p.ok = top.ok
	return succeeded
}

// fail aborts the current rule. The error is remembered if it lies at
// least as far into the input as any earlier one. Inside a speculative
// attempt only that attempt is abandoned; otherwise the whole parse stops
// and reports the farthest error.
func (p *Parser) fail(message string) {
	p.record(p.syntaxError(message))
	if p.inPredicateMode() {
		p.abandon()
	}
	panic(bailout{})
}

// abandon gives up the current speculative attempt without recording an
// error.
func (p *Parser) abandon() {
	p.ok = false
	panic(speculationFailed{})
}

// record notes err as the farthest error so far unless an earlier error
// lies further into the input. On equal offsets the later error wins.
func (p *Parser) record(err *types.SyntaxError) {
	if err == nil {
		return
	}
	p.farthest = farther(p.farthest, err)
	if n := len(p.frames); n > 0 {
		p.frames[n-1].err = farther(p.frames[n-1].err, err)
	}
}

func farther(cur, err *types.SyntaxError) *types.SyntaxError {
	if cur == nil || err == nil {
		return cmp.Or(err, cur)
	}
	if err.Span.Start >= cur.Span.Start {
		return err
	}
	return cur
}

// test runs fn as a speculative attempt and reports whether it would
// succeed. The cursor is restored either way and no nodes are created.
func (p *Parser) test(fn func()) bool {
	p.predicateStart()
	depth := p.vars.Depth()
	frames := len(p.frames)
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(speculationFailed); !ok {
					panic(r)
				}
				p.vars.Unwind(depth)
				p.unwindRules(frames)
			}
		}()
		fn()
	}()
	return p.predicateEnd()
}

// rule identifies a memoized grammar rule.
type rule uint8

const (
	ruleExpression rule = iota
	rulePathExpression
	ruleValueAccess
	rulePrimary
	rulePathDescription
	ruleIntermediatePath
	ruleStartRestrictedPath
	rulePrimaryPath
	ruleDeclaration
	ruleTypeIdList
	ruleCount
)

var ruleNames = [ruleCount]string{
	ruleExpression:          "expression",
	rulePathExpression:      "pathExpression",
	ruleValueAccess:         "valueAccess",
	rulePrimary:             "primary",
	rulePathDescription:     "pathDescription",
	ruleIntermediatePath:    "intermediatePath",
	ruleStartRestrictedPath: "startRestrictedPath",
	rulePrimaryPath:         "primaryPath",
	ruleDeclaration:         "declaration",
	ruleTypeIdList:          "typeIdList",
}

func (r rule) String() string {
	return ruleNames[r]
}

// Memo table entries.
const (
	memoUntested int32 = 0
	memoFailed   int32 = -1 // tried speculatively and not (yet) succeeded
	// positive entries store resume position + 1
)

// ruleFrame tracks one memoized rule application in progress and the
// farthest error recorded while it runs.
type ruleFrame struct {
	rule  rule
	start int
	err   *types.SyntaxError
}

func (p *Parser) pushRule(r rule) {
	p.frames = append(p.frames, ruleFrame{rule: r, start: p.pos})
}

// popRule ends the innermost rule application. Its farthest error also
// counts for the enclosing application.
func (p *Parser) popRule() ruleFrame {
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	if n := len(p.frames); n > 0 {
		p.frames[n-1].err = farther(p.frames[n-1].err, f.err)
	}
	return f
}

// unwindRules ends the rule applications a failed attempt left open,
// keeping the error each one got to for later memo hits.
func (p *Parser) unwindRules(depth int) {
	for len(p.frames) > depth {
		f := p.popRule()
		p.memoErr[f.rule][f.start] = f.err
	}
}

// alreadySucceeded consults the memo table before a rule is applied at the
// cursor. It returns true when the rule is known to succeed here and the
// cursor has been moved past it; the caller then returns without building
// anything. This only happens in predicate mode: a real application always
// runs the rule so its nodes get built.
//
// A memo hit, failed or not, records the farthest error the rule reached
// when it was run, so the reported error does not depend on memoization.
func (p *Parser) alreadySucceeded(r rule) bool {
	if !p.memoize {
		return false
	}
	tab := p.memo[r]
	if tab == nil {
		tab = make([]int32, len(p.tokens)+1)
		p.memo[r] = tab
		p.memoErr[r] = make([]*types.SyntaxError, len(p.tokens)+1)
	}
	if !p.inPredicateMode() {
		p.pushRule(r)
		return false
	}
	switch v := tab[p.pos]; {
	case v == memoUntested:
		tab[p.pos] = memoFailed
		p.pushRule(r)
		return false
	case v == memoFailed:
		p.record(p.memoErr[r][p.pos])
		p.abandon()
		return false
	default:
		p.record(p.memoErr[r][p.pos])
		p.stats.MemoHits++
		if p.TraceEnabled() {
			p.Trace("memo hit",
				slog.String("rule", r.String()),
				slog.Int("pos", p.pos),
				slog.Int("resume", int(v-1)))
		}
		p.pos = int(v - 1)
		return true
	}
}

// ruleSucceeds records that r, applied at start, ended at the cursor.
func (p *Parser) ruleSucceeds(r rule, start int) {
	if !p.memoize {
		return
	}
	f := p.popRule()
	p.memo[r][start] = int32(p.pos + 1)
	p.memoErr[r][start] = f.err
}
