package optimizer

import (
	"github.com/yashagw/sjdb/internal/query"
	"github.com/yashagw/sjdb/internal/relation"
)

// worklist holds the predicates still waiting to be placed, in discovery
// order. It is owned by a single rewrite.
type worklist struct {
	preds []*query.Predicate
}

func (w *worklist) push(pred *query.Predicate) {
	w.preds = append(w.preds, pred)
}

// drain removes and returns, in order, every pending predicate accepted by
// match. The remaining predicates keep their relative order.
func (w *worklist) drain(match func(*query.Predicate) bool) []*query.Predicate {
	var taken, kept []*query.Predicate
	for _, pred := range w.preds {
		if match(pred) {
			taken = append(taken, pred)
		} else {
			kept = append(kept, pred)
		}
	}
	w.preds = kept
	return taken
}

func (w *worklist) len() int {
	return len(w.preds)
}

// bag is a multiset of required attribute names.
type bag map[string]int

func (b bag) add(names ...string) {
	for _, name := range names {
		b[name]++
	}
}

// remove drops one occurrence of name.
func (b bag) remove(name string) {
	switch n := b[name]; {
	case n > 1:
		b[name] = n - 1
	case n == 1:
		delete(b, name)
	}
}

func (b bag) has(name string) bool {
	return b[name] > 0
}

// subset returns the attributes of rel that are required, in rel's order,
// and whether all of them are.
func (b bag) subset(rel *relation.Relation) ([]relation.Attribute, bool) {
	var attrs []relation.Attribute
	all := true
	for _, a := range rel.Attributes() {
		if b.has(a.Name) {
			attrs = append(attrs, relation.Named(a.Name))
		} else {
			all = false
		}
	}
	return attrs, all
}
