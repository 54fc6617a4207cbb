package parse

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/sjdb/internal/parse/parserdata"
	"github.com/yashagw/sjdb/internal/query"
	"github.com/yashagw/sjdb/internal/relation"
)

// Parser is a recursive-descent parser for the query language:
//
//	SELECT (* | field {, field}) FROM table {, table} [WHERE term {AND term}]
//	term := field = (field | int | 'string' | "string")
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser.
func NewParser(lexer *Lexer) *Parser {
	return &Parser{
		lexer: lexer,
	}
}

// NewParserFromString creates a new Parser from a string.
func NewParserFromString(sql string) *Parser {
	lexer := NewLexer(sql)
	return NewParser(lexer)
}

func (p *Parser) field() (string, error) {
	id, err := p.lexer.EatId()
	if err != nil {
		return "", err
	}
	return id, nil
}

func (p *Parser) constant() (*query.Constant, error) {
	if p.lexer.MatchIntConstant() {
		val, err := p.lexer.EatIntConstant()
		if err != nil {
			return nil, err
		}
		return query.NewIntConstant(val), nil
	}
	if p.lexer.MatchStringConstant() {
		val, err := p.lexer.EatStringConstant()
		if err != nil {
			return nil, err
		}
		return query.NewStringConstant(val), nil
	}
	return nil, ErrBadSyntax
}

// term parses one equality. A literal on the left is moved to the right so
// value predicates always have the attribute on the left.
func (p *Parser) term() (*query.Predicate, error) {
	if !p.lexer.MatchId() {
		c, err := p.constant()
		if err != nil {
			return nil, err
		}
		if err := p.lexer.EatDelim('='); err != nil {
			return nil, err
		}
		attr, err := p.field()
		if err != nil {
			return nil, err
		}
		return query.NewValuePredicate(relation.Named(attr), *c), nil
	}

	left, err := p.field()
	if err != nil {
		return nil, err
	}
	if err := p.lexer.EatDelim('='); err != nil {
		return nil, err
	}
	if p.lexer.MatchId() {
		right, err := p.field()
		if err != nil {
			return nil, err
		}
		return query.NewAttributePredicate(relation.Named(left), relation.Named(right)), nil
	}
	c, err := p.constant()
	if err != nil {
		return nil, err
	}
	return query.NewValuePredicate(relation.Named(left), *c), nil
}

func (p *Parser) predicates() ([]*query.Predicate, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	preds := []*query.Predicate{first}
	for p.lexer.MatchKeyword("and") {
		if err := p.lexer.EatKeyword("and"); err != nil {
			return nil, err
		}
		pred, err := p.term()
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	return preds, nil
}

// Query parses a complete query. Trailing input after the query is an error.
func (p *Parser) Query() (*parserdata.QueryData, error) {
	qd, err := p.query()
	if err != nil {
		return nil, errors.Wrapf(err, "at offset %d", p.lexer.Position())
	}
	return qd, nil
}

func (p *Parser) query() (*parserdata.QueryData, error) {
	// Select
	err := p.lexer.EatKeyword("select")
	if err != nil {
		return nil, err
	}
	// Field List
	var fields []string
	if p.lexer.MatchDelim('*') {
		if err := p.lexer.EatDelim('*'); err != nil {
			return nil, err
		}
	} else {
		fields, err = p.fieldList()
		if err != nil {
			return nil, err
		}
	}
	// From
	err = p.lexer.EatKeyword("from")
	if err != nil {
		return nil, err
	}
	// Table List
	tableNames, err := p.tableList()
	if err != nil {
		return nil, err
	}

	var preds []*query.Predicate
	if p.lexer.MatchKeyword("where") {
		err = p.lexer.EatKeyword("where")
		if err != nil {
			return nil, err
		}
		preds, err = p.predicates()
		if err != nil {
			return nil, err
		}
	}

	if p.lexer.MatchDelim(';') {
		if err := p.lexer.EatDelim(';'); err != nil {
			return nil, err
		}
	}
	if !p.lexer.AtEnd() {
		return nil, ErrBadSyntax
	}

	return parserdata.NewQueryData(fields, tableNames, preds), nil
}

func (p *Parser) fieldList() ([]string, error) {
	fields := []string{}

	firstField, err := p.field()
	if err != nil {
		return nil, err
	}
	fields = append(fields, firstField)

	// Now look for ", field" patterns.
	for p.lexer.MatchDelim(',') {
		err = p.lexer.EatDelim(',')
		if err != nil {
			return nil, err
		}
		field, err := p.field()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return fields, nil
}

func (p *Parser) tableList() ([]string, error) {
	tableNames := []string{}

	firstTable, err := p.lexer.EatId()
	if err != nil {
		return nil, err
	}
	tableNames = append(tableNames, firstTable)

	// Now look for ", table" patterns.
	for p.lexer.MatchDelim(',') {
		err = p.lexer.EatDelim(',')
		if err != nil {
			return nil, err
		}
		table, err := p.lexer.EatId()
		if err != nil {
			return nil, err
		}
		tableNames = append(tableNames, table)
	}

	return tableNames, nil
}
