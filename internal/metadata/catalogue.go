package metadata

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"
	"github.com/yashagw/sjdb/internal/relation"
)

const catalogueDegree = 8

var (
	ErrRelationNotFound   = errors.New("relation not found")
	ErrRelationExists     = errors.New("relation already exists")
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrInvalidStatistics  = errors.New("invalid statistics")
)

// Catalogue holds the base relations and their statistics, ordered by name.
// It is filled once by a loader and only read while plans are optimised.
type Catalogue struct {
	tree *btree.BTreeG[*relation.Relation]
	// owner maps every attribute name to the relation that declares it.
	owner map[string]string
	mutex sync.RWMutex
}

func NewCatalogue() *Catalogue {
	return &Catalogue{
		tree: btree.NewG(catalogueDegree, func(a, b *relation.Relation) bool {
			return a.Name() < b.Name()
		}),
		owner: make(map[string]string),
	}
}

// CreateRelation registers an empty base relation with the given tuple count.
func (c *Catalogue) CreateRelation(name string, tuples int) error {
	if name == "" {
		return errors.Wrap(ErrInvalidStatistics, "relation name is empty")
	}
	if tuples < 0 {
		return errors.Wrapf(ErrInvalidStatistics, "relation %s has %d tuples", name, tuples)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.tree.Has(key(name)) {
		return errors.Wrapf(ErrRelationExists, "%q", name)
	}
	c.tree.ReplaceOrInsert(relation.NewNamed(name, tuples))
	return nil
}

// CreateAttribute adds an attribute to an existing relation. The distinct
// value count must lie within the tuple count and be at least one for a
// non-empty relation. Attribute names are unique across the catalogue.
func (c *Catalogue) CreateAttribute(rel string, attr string, distinct int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	r, ok := c.tree.Get(key(rel))
	if !ok {
		return errors.Wrapf(ErrRelationNotFound, "%q", rel)
	}
	if attr == "" {
		return errors.Wrapf(ErrInvalidStatistics, "attribute of %s has no name", rel)
	}
	if owner, exists := c.owner[attr]; exists {
		return errors.Wrapf(ErrDuplicateAttribute, "%q already declared by %s", attr, owner)
	}
	if distinct < 0 || distinct > r.TupleCount() || (distinct == 0 && r.TupleCount() > 0) {
		return errors.Wrapf(ErrInvalidStatistics, "%s.%s has %d distinct values for %d tuples", rel, attr, distinct, r.TupleCount())
	}

	r.AddAttribute(relation.NewAttribute(attr, distinct))
	c.owner[attr] = rel
	return nil
}

// Relation returns a copy of the named base relation.
func (c *Catalogue) Relation(name string) (*relation.Relation, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	r, ok := c.tree.Get(key(name))
	if !ok {
		return nil, errors.Wrapf(ErrRelationNotFound, "%q", name)
	}
	return r.Copy(), nil
}

// Names returns the relation names in ascending order.
func (c *Catalogue) Names() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := make([]string, 0, c.tree.Len())
	c.tree.Ascend(func(r *relation.Relation) bool {
		names = append(names, r.Name())
		return true
	})
	return names
}

func (c *Catalogue) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.tree.Len()
}

func key(name string) *relation.Relation {
	return relation.NewNamed(name, 0)
}
