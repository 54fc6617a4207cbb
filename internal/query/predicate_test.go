package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/sjdb/internal/relation"
)

func testRelation() *relation.Relation {
	r := relation.NewNamed("B", 150)
	r.AddAttribute(relation.NewAttribute("b1", 150))
	r.AddAttribute(relation.NewAttribute("b2", 100))
	r.AddAttribute(relation.NewAttribute("b3", 5))
	return r
}

func TestValuePredicate(t *testing.T) {
	pred := NewValuePredicate(relation.Named("b3"), *NewStringConstant("x"))

	assert.True(t, pred.EqualsValue())
	assert.Equal(t, "b3", pred.LeftAttribute().Name)
	assert.Equal(t, relation.Attribute{}, pred.RightAttribute())
	require.NotNil(t, pred.Value())
	assert.Equal(t, "x", pred.Value().AsString())
	assert.Equal(t, []string{"b3"}, pred.Attributes())
	assert.Equal(t, `b3="x"`, pred.String())

	intPred := NewValuePredicate(relation.Named("b1"), *NewIntConstant(7))
	assert.Equal(t, "b1=7", intPred.String())
}

func TestAttributePredicate(t *testing.T) {
	pred := NewAttributePredicate(relation.Named("a2"), relation.Named("b3"))

	assert.False(t, pred.EqualsValue())
	assert.Equal(t, "a2", pred.LeftAttribute().Name)
	assert.Equal(t, "b3", pred.RightAttribute().Name)
	assert.Nil(t, pred.Value())
	assert.Equal(t, []string{"a2", "b3"}, pred.Attributes())
	assert.Equal(t, "a2=b3", pred.String())
}

func TestPredicateAppliesTo(t *testing.T) {
	rel := testRelation()

	assert.True(t, NewValuePredicate(relation.Named("b2"), *NewIntConstant(1)).AppliesTo(rel))
	assert.False(t, NewValuePredicate(relation.Named("a1"), *NewIntConstant(1)).AppliesTo(rel))
	assert.True(t, NewAttributePredicate(relation.Named("b1"), relation.Named("b3")).AppliesTo(rel))

	// Only one side present
	assert.False(t, NewAttributePredicate(relation.Named("a2"), relation.Named("b3")).AppliesTo(rel))
}
