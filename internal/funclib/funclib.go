// Package funclib holds the names the parser treats as callable. An
// identifier followed by '(' or '{' is parsed as a function application
// only when its name is registered here.
package funclib

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Library answers whether a name denotes a callable function.
type Library interface {
	IsFunctionName(name string) bool
}

// Registry is a mutable set of callable names.
type Registry struct {
	names *set.Set[string]
}

// New returns a registry holding exactly the given names.
func New(names ...string) *Registry {
	return &Registry{names: set.From(names)}
}

// Default returns a registry preloaded with the built-in function library.
func Default() *Registry {
	return New(builtins...)
}

// Register adds names to the registry.
func (r *Registry) Register(names ...string) {
	r.names.InsertSlice(names)
}

// IsFunctionName reports whether name is registered.
func (r *Registry) IsFunctionName(name string) bool {
	return r.names.Contains(name)
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return r.names.Size()
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	out := r.names.Slice()
	slices.Sort(out)
	return out
}

// Union combines libraries. A name is callable if any member accepts it.
// Nil members are skipped.
func Union(libs ...Library) Library {
	out := make(union, 0, len(libs))
	for _, l := range libs {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type union []Library

func (u union) IsFunctionName(name string) bool {
	for _, l := range u {
		if l.IsFunctionName(name) {
			return true
		}
	}
	return false
}

// Func adapts a predicate to a Library.
type Func func(name string) bool

func (f Func) IsFunctionName(name string) bool {
	return f(name)
}

// builtins lists the functions of the standard GReQL library, including
// the operator functions the parser emits for infix operators.
var builtins = []string{
	// operators
	"add", "and", "concat", "div", "equals", "get", "getValue", "grEqual",
	"grThan", "leEqual", "leThan", "mod", "mul", "neg", "nequals", "not",
	"or", "reMatch", "sub", "xor",

	// collections
	"avg", "contains", "containsKey", "count", "difference", "entrySet",
	"flatten", "intersection", "isEmpty", "isSubSet", "isSuperSet",
	"keySet", "max", "min", "pos", "reverse", "slice", "sort", "sum",
	"theElement", "toSet", "union", "values",

	// graph
	"alpha", "children", "degree", "depth", "distance", "edgesConnected",
	"edgesFrom", "edgesTo", "edgeTrace", "elements", "endVertex",
	"getEdge", "getVertex", "hasAttribute", "hasType", "inDegree",
	"isAcyclic", "isReachable", "isTrail", "isTree", "leaves", "nodeTrace",
	"omega", "outDegree", "parent", "pathConcat", "pathLength",
	"pathSystem", "reachableVertices", "siblings", "startVertex", "that",
	"this", "topologicalSort", "type", "typeName", "weight",

	// strings and numbers
	"abs", "capitalizeFirst", "ceil", "endsWith", "floor", "id", "join",
	"length", "log", "round", "split", "sqrt", "startsWith", "toString",
	"trim", "uncapitalizeFirst",

	// predicates
	"isA", "isDefined", "isInstanceOf", "isNull", "isUndefined",
}
