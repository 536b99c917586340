// Package recipient knows which bank details each payout currency needs and
// checks caller-supplied details against those rules.
package recipient

import (
	"regexp"
	"strings"
)

// Field describes one bank detail the agent has to collect from the user.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Requirements lists the fields needed to pay out in a currency.
type Requirements struct {
	Currency     string  `json:"currency"`
	Instructions string  `json:"instructions"`
	Fields       []Field `json:"fields"`
}

// Validation is the verdict for a set of bank details.
type Validation struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields,omitempty"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
}

// check normalizes and validates a single value.
type check struct {
	strip   string
	pattern *regexp.Regexp
}

func (c check) ok(value string) bool {
	if c.pattern == nil {
		return true
	}
	for _, r := range c.strip {
		value = strings.ReplaceAll(value, string(r), "")
	}
	return c.pattern.MatchString(strings.ToUpper(value))
}

type rule struct {
	requirements Requirements
	checks       map[string]check
	optional     map[string]check
}

// Registry holds the per-currency rules. It is read-only after construction
// and safe for concurrent use.
type Registry struct {
	rules map[string]rule
}

// Requirements returns what must be collected for currency. ok is false when
// the currency needs no bank details.
func (r *Registry) Requirements(currency string) (Requirements, bool) {
	rl, ok := r.rules[currency]
	if !ok {
		return Requirements{}, false
	}
	req := rl.requirements
	req.Fields = append([]Field(nil), rl.requirements.Fields...)
	return req, true
}

// Validate checks details against the currency's rules. Currencies without
// rules always validate.
func (r *Registry) Validate(currency string, details map[string]string) Validation {
	rl, ok := r.rules[currency]
	if !ok {
		return Validation{Valid: true}
	}

	var v Validation
	for _, f := range rl.requirements.Fields {
		value := strings.TrimSpace(details[f.Name])
		if value == "" {
			v.MissingFields = append(v.MissingFields, f.Name)
			continue
		}
		if !rl.checks[f.Name].ok(value) {
			v.InvalidFields = append(v.InvalidFields, f.Name)
		}
	}
	for name, c := range rl.optional {
		value := strings.TrimSpace(details[name])
		if value != "" && !c.ok(value) {
			v.InvalidFields = append(v.InvalidFields, name)
		}
	}

	v.Valid = len(v.MissingFields) == 0 && len(v.InvalidFields) == 0
	return v
}
