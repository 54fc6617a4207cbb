package plan

import (
	"github.com/yashagw/sjdb/internal/parse"
	"github.com/yashagw/sjdb/internal/parse/parserdata"
)

type QueryPlanner interface {
	CreatePlan(queryData *parserdata.QueryData) (Operator, error)
}

// Planner turns query text into an unestimated canonical plan.
type Planner struct {
	queryPlanner QueryPlanner
}

func NewPlanner(queryPlanner QueryPlanner) *Planner {
	return &Planner{
		queryPlanner: queryPlanner,
	}
}

func (p *Planner) CreatePlan(sql string) (Operator, error) {
	parser := parse.NewParserFromString(sql)
	queryData, err := parser.Query()
	if err != nil {
		return nil, err
	}
	return p.queryPlanner.CreatePlan(queryData)
}
