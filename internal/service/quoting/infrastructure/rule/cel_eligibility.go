package rule

import (
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"depotquote/internal/service/quoting/domain"
)

// CELEligibility 实现了 port.QuoteFilter，使用 CEL 表达式决定报价是否返回。
// 表达式可以使用的变量：depot, distance_miles, container_cost, delivery_cost, total_cost
type CELEligibility struct {
	expr    string
	program cel.Program
}

// NewCELEligibility 编译表达式。空表达式返回 nil，表示不过滤。
func NewCELEligibility(expr string) (*CELEligibility, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("depot", cel.StringType),
		cel.Variable("distance_miles", cel.DoubleType),
		cel.Variable("container_cost", cel.DoubleType),
		cel.Variable("delivery_cost", cel.DoubleType),
		cel.Variable("total_cost", cel.DoubleType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create cel env")
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		// 规则定义本身存在语法或类型错误
		return nil, errors.Wrapf(iss.Err(), "compile eligibility rule %q", expr)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Errorf("eligibility rule %q must return bool, got %s", expr, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrap(err, "build cel program")
	}
	return &CELEligibility{expr: expr, program: program}, nil
}

// Expression 返回编译前的表达式
func (e *CELEligibility) Expression() string {
	return e.expr
}

// Allow 实现了 port.QuoteFilter
func (e *CELEligibility) Allow(q domain.Quote) (bool, error) {
	out, _, err := e.program.Eval(map[string]any{
		"depot":          q.DepotName,
		"distance_miles": q.DistanceMiles,
		"container_cost": q.ContainerCost,
		"delivery_cost":  q.DeliveryCost,
		"total_cost":     q.TotalCost,
	})
	if err != nil {
		return false, errors.Wrapf(err, "evaluate eligibility rule for depot %s", q.DepotName)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, errors.Errorf("eligibility rule returned %T", out.Value())
	}
	return allowed, nil
}
