package apitour

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New()

// Rule names a constraint. The names are reported back to clients.
type Rule string

const (
	RuleGt        Rule = "gt"
	RuleGe        Rule = "ge"
	RuleLt        Rule = "lt"
	RuleLe        Rule = "le"
	RulePattern   Rule = "pattern"
	RuleMinLength Rule = "min_length"
	RuleMaxLength Rule = "max_length"
)

// Constraint is a validation rule applied to a coerced value.
type Constraint struct {
	Rule   Rule
	Bound  float64
	Length int
	Expr   string
	re     *regexp.Regexp
}

// Gt requires value > n.
func Gt(n float64) Constraint { return Constraint{Rule: RuleGt, Bound: n} }

// Ge requires value >= n.
func Ge(n float64) Constraint { return Constraint{Rule: RuleGe, Bound: n} }

// Lt requires value < n.
func Lt(n float64) Constraint { return Constraint{Rule: RuleLt, Bound: n} }

// Le requires value <= n.
func Le(n float64) Constraint { return Constraint{Rule: RuleLe, Bound: n} }

// MinLength requires a string of at least n characters.
func MinLength(n int) Constraint { return Constraint{Rule: RuleMinLength, Length: n} }

// MaxLength requires a string of at most n characters.
func MaxLength(n int) Constraint { return Constraint{Rule: RuleMaxLength, Length: n} }

// Pattern requires the whole string to match expr. It panics if expr does
// not compile, like regexp.MustCompile, since specs are declared statically.
func Pattern(expr string) Constraint {
	return Constraint{
		Rule: RulePattern,
		Expr: expr,
		re:   regexp.MustCompile(`^(?:` + expr + `)$`),
	}
}

func (c Constraint) String() string {
	switch c.Rule {
	case RulePattern:
		return fmt.Sprintf("%s=%s", c.Rule, c.Expr)
	case RuleMinLength, RuleMaxLength:
		return fmt.Sprintf("%s=%d", c.Rule, c.Length)
	default:
		return fmt.Sprintf("%s=%s", c.Rule, formatBound(c.Bound))
	}
}

func (c Constraint) validateFor(kind Kind) error {
	switch c.Rule {
	case RuleGt, RuleGe, RuleLt, RuleLe:
		if kind != KindInt && kind != KindFloat {
			return fmt.Errorf("constraint %s needs a numeric field, got %s", c, kind)
		}
	case RulePattern:
		if kind != KindString {
			return fmt.Errorf("constraint %s needs a string field, got %s", c.Rule, kind)
		}
		if c.re == nil {
			return fmt.Errorf("constraint %s was not built with Pattern", c.Rule)
		}
	case RuleMinLength, RuleMaxLength:
		if kind != KindString {
			return fmt.Errorf("constraint %s needs a string field, got %s", c, kind)
		}
		if c.Length < 0 {
			return fmt.Errorf("constraint %s: negative length", c)
		}
	default:
		return fmt.Errorf("unknown constraint rule %q", c.Rule)
	}
	return nil
}

// satisfied reports whether v, already coerced to the field kind, passes.
func (c Constraint) satisfied(v any) bool {
	switch c.Rule {
	case RulePattern:
		s, ok := v.(string)
		return ok && c.re != nil && c.re.MatchString(s)
	case RuleMinLength:
		return validate.Var(v, "min="+strconv.Itoa(c.Length)) == nil
	case RuleMaxLength:
		return validate.Var(v, "max="+strconv.Itoa(c.Length)) == nil
	}

	tag := map[Rule]string{RuleGt: "gt", RuleGe: "gte", RuleLt: "lt", RuleLe: "lte"}[c.Rule]
	switch n := v.(type) {
	case int:
		if c.Bound == math.Trunc(c.Bound) && math.Abs(c.Bound) < math.MaxInt64 {
			return validate.Var(n, tag+"="+strconv.FormatInt(int64(c.Bound), 10)) == nil
		}
		return validate.Var(float64(n), tag+"="+formatBound(c.Bound)) == nil
	case float64:
		return validate.Var(n, tag+"="+formatBound(c.Bound)) == nil
	default:
		return false
	}
}

func (c Constraint) message() string {
	switch c.Rule {
	case RuleGt:
		return "Input should be greater than " + formatBound(c.Bound)
	case RuleGe:
		return "Input should be greater than or equal to " + formatBound(c.Bound)
	case RuleLt:
		return "Input should be less than " + formatBound(c.Bound)
	case RuleLe:
		return "Input should be less than or equal to " + formatBound(c.Bound)
	case RulePattern:
		return fmt.Sprintf("String should match pattern '%s'", c.Expr)
	case RuleMinLength:
		return fmt.Sprintf("String should have at least %d characters", c.Length)
	case RuleMaxLength:
		return fmt.Sprintf("String should have at most %d characters", c.Length)
	default:
		return "Input is invalid"
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// checkConstraints returns one error per violated constraint.
func checkConstraints(f Field, src Source, path string, v any, raw string) []*FieldError {
	var errs []*FieldError
	for _, c := range f.Constraints {
		if c.satisfied(v) {
			continue
		}
		errs = append(errs, &FieldError{
			Kind:    ErrConstraintViolation,
			Source:  src,
			Field:   path,
			Rule:    string(c.Rule),
			Value:   raw,
			Message: c.message(),
		})
	}
	return errs
}
