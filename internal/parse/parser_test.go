package parse

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserField(t *testing.T) {
	p := NewParser(NewLexer("MyField"))
	require.NotNil(t, p)

	f, err := p.field()
	require.NoError(t, err)
	assert.Equal(t, "MyField", f)

	// Next token should not be an id; expect error
	_, err = p.field()
	assert.Error(t, err)
	assert.Equal(t, ErrBadSyntax, err)
}

func TestParserConstant(t *testing.T) {
	// Integer constant
	p1 := NewParser(NewLexer("123"))
	c, err := p1.constant()
	require.NoError(t, err)
	assert.True(t, c.IsInt())
	assert.Equal(t, 123, c.AsInt())

	// Single-quoted string
	p2 := NewParser(NewLexer("'hello'"))
	c, err = p2.constant()
	require.NoError(t, err)
	assert.Equal(t, "hello", c.AsString())

	// Double-quoted string
	p3 := NewParser(NewLexer(`"world"`))
	c, err = p3.constant()
	require.NoError(t, err)
	assert.Equal(t, "world", c.AsString())

	// Error case
	p4 := NewParser(NewLexer("select"))
	_, err = p4.constant()
	assert.Equal(t, ErrBadSyntax, err)
}

func TestParserTerm(t *testing.T) {
	t.Run("AttributeEqualsValue", func(t *testing.T) {
		pred, err := NewParserFromString("a2 = 25").term()
		require.NoError(t, err)
		assert.True(t, pred.EqualsValue())
		assert.Equal(t, "a2=25", pred.String())
	})

	t.Run("ValueEqualsAttribute", func(t *testing.T) {
		pred, err := NewParserFromString(`"x" = a2`).term()
		require.NoError(t, err)
		assert.True(t, pred.EqualsValue())
		assert.Equal(t, "a2", pred.LeftAttribute().Name)
		assert.Equal(t, `a2="x"`, pred.String())
	})

	t.Run("AttributeEqualsAttribute", func(t *testing.T) {
		pred, err := NewParserFromString("a2 = b3").term()
		require.NoError(t, err)
		assert.False(t, pred.EqualsValue())
		assert.Equal(t, "a2=b3", pred.String())
	})

	t.Run("ValueEqualsValue", func(t *testing.T) {
		_, err := NewParserFromString("1 = 2").term()
		assert.Equal(t, ErrBadSyntax, err)
	})
}

func TestParserPredicates(t *testing.T) {
	preds, err := NewParserFromString("a2 = 25 AND b1 = c1 and a1 = 'John'").predicates()
	require.NoError(t, err)
	require.Len(t, preds, 3)
	assert.Equal(t, "a2=25", preds[0].String())
	assert.Equal(t, "b1=c1", preds[1].String())
	assert.Equal(t, `a1="John"`, preds[2].String())
}

func TestParserQuery(t *testing.T) {
	t.Run("WithoutWhere", func(t *testing.T) {
		qd, err := NewParserFromString("SELECT a2, b1 FROM A, B").Query()
		require.NoError(t, err)
		require.NotNil(t, qd)
		assert.False(t, qd.SelectAll())
		assert.Equal(t, []string{"a2", "b1"}, qd.Fields())
		assert.Equal(t, []string{"A", "B"}, qd.Tables())
		assert.Empty(t, qd.Predicates())
	})

	t.Run("WithWhere", func(t *testing.T) {
		qd, err := NewParserFromString(`SELECT a2, b1 FROM A, B, C WHERE a2 = "v" AND b1 = c1`).Query()
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, qd.Tables())
		require.Len(t, qd.Predicates(), 2)
		assert.Equal(t, `a2="v"`, qd.Predicates()[0].String())
		assert.Equal(t, "b1=c1", qd.Predicates()[1].String())
	})

	t.Run("SelectAll", func(t *testing.T) {
		qd, err := NewParserFromString("select * from A;").Query()
		require.NoError(t, err)
		assert.True(t, qd.SelectAll())
		assert.Nil(t, qd.Fields())
		assert.Equal(t, []string{"A"}, qd.Tables())
	})

	t.Run("MissingFromError", func(t *testing.T) {
		_, err := NewParserFromString("select a1 A").Query()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSyntax))
	})

	t.Run("TrailingInputError", func(t *testing.T) {
		_, err := NewParserFromString("select a1 from A where a1 = 1 or a1 = 2").Query()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSyntax))
	})
}

func TestParserHelpers(t *testing.T) {
	t.Run("fieldList", func(t *testing.T) {
		p := NewParser(NewLexer("Name, Age, Address"))
		fields, err := p.fieldList()
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Age", "Address"}, fields)
	})

	t.Run("tableList", func(t *testing.T) {
		p := NewParser(NewLexer("Students, Classes"))
		tables, err := p.tableList()
		require.NoError(t, err)
		assert.Equal(t, []string{"Students", "Classes"}, tables)
	})
}
