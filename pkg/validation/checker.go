package validation

import "github.com/go-playground/validator/v10"

// Rule pairs a validator tag with the message reported when the tag fails.
type Rule struct {
	Tag     string
	Message string
}

// Checker evaluates every rule of every field and keeps all failures.
// Struct-tag validation stops at the first failing tag per field, so each
// rule runs as its own Var call instead.
type Checker struct {
	v    *validator.Validate
	errs Errors
}

func NewChecker(v *validator.Validate) *Checker {
	if v == nil {
		v = New()
	}
	return &Checker{v: v}
}

// Required runs rules against value unconditionally.
func (c *Checker) Required(path, value string, rules ...Rule) {
	for _, r := range rules {
		if err := c.v.Var(value, r.Tag); err != nil {
			c.Add(path, value, r.Message)
		}
	}
}

// Optional runs rules only when value is non-empty.
func (c *Checker) Optional(path, value string, rules ...Rule) {
	if value == "" {
		return
	}
	c.Required(path, value, rules...)
}

func (c *Checker) Add(path string, value interface{}, msg string) {
	c.errs = append(c.errs, FieldError{
		Type:     "field",
		Value:    value,
		Msg:      msg,
		Path:     path,
		Location: "body",
	})
}

func (c *Checker) Errors() Errors {
	return c.errs
}
