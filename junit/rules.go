package junit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fields a FieldRule can fill
const (
	FieldParameter        = "parameter"
	FieldExpected         = "expected"
	FieldActualCategories = "actual_categories"
	FieldExperienceTypes  = "experience_types"
)

// Transforms applied to a captured value
const (
	TransformNone        = ""
	TransformTitleWords  = "title_words"
	TransformStripQuotes = "strip_quotes"
)

// FieldRule captures one value out of a case's console output
type FieldRule struct {
	Field     string `yaml:"field"`
	Pattern   string `yaml:"pattern"`
	Group     int    `yaml:"group"`
	Transform string `yaml:"transform"`
}

// MethodRule classifies cases whose method name contains MethodContains.
// The first matching rule wins.
type MethodRule struct {
	MethodContains string      `yaml:"method_contains"`
	Category       string      `yaml:"category"`
	DisplayName    string      `yaml:"display_name"`
	Fields         []FieldRule `yaml:"fields"`
}

// Rules is the complete extraction table. Common rules run for every case
// after the method rule.
type Rules struct {
	Methods []MethodRule `yaml:"methods"`
	Common  []FieldRule  `yaml:"common"`
}

// DefaultRules reproduces the extraction used for the experience category
// suites
func DefaultRules() Rules {
	typePattern := `Starting Experience Categories Generation Test for: category_(.+)`
	return Rules{
		Methods: []MethodRule{
			{
				MethodContains: "testGenerateCategoriesWithDescription",
				Category:       "Category Generation with Description",
				DisplayName:    "AI Category Generation from Description",
				Fields: []FieldRule{
					{Field: FieldParameter, Pattern: `Starting Category Generation with Description Test for: (.+)`, Group: 1, Transform: TransformTitleWords},
					{Field: FieldExpected, Pattern: `Expected category for [^:]+: (.+)`, Group: 1},
				},
			},
			{
				MethodContains: "testGenerateExperienceCategories",
				Category:       "Category Generation",
				DisplayName:    "AI Category Generation by Type",
				Fields: []FieldRule{
					{Field: FieldParameter, Pattern: typePattern, Group: 1},
					{Field: FieldExpected, Pattern: typePattern, Group: 1},
				},
			},
		},
		Common: []FieldRule{
			{Field: FieldActualCategories, Pattern: `"experienceCategory":\[([^\]]+)\]`, Group: 1, Transform: TransformStripQuotes},
			{Field: FieldExperienceTypes, Pattern: `"experienceTypes":\[([^\]]+)\]`, Group: 1, Transform: TransformStripQuotes},
		},
	}
}

type compiledField struct {
	FieldRule
	re *regexp.Regexp
}

type compiledMethod struct {
	MethodRule
	fields []compiledField
}

type compiledRules struct {
	methods []compiledMethod
	common  []compiledField
}

func compileRules(rules Rules) (*compiledRules, error) {
	out := &compiledRules{}
	for _, m := range rules.Methods {
		if m.MethodContains == "" {
			return nil, fmt.Errorf("method rule %q: method_contains must not be empty", m.Category)
		}
		fields, err := compileFields(m.Fields)
		if err != nil {
			return nil, fmt.Errorf("method rule %q: %w", m.MethodContains, err)
		}
		out.methods = append(out.methods, compiledMethod{MethodRule: m, fields: fields})
	}

	common, err := compileFields(rules.Common)
	if err != nil {
		return nil, fmt.Errorf("common rules: %w", err)
	}
	out.common = common
	return out, nil
}

func compileFields(rules []FieldRule) ([]compiledField, error) {
	out := make([]compiledField, 0, len(rules))
	for _, r := range rules {
		switch r.Field {
		case FieldParameter, FieldExpected, FieldActualCategories, FieldExperienceTypes:
		default:
			return nil, fmt.Errorf("unknown field %q", r.Field)
		}
		switch r.Transform {
		case TransformNone, TransformTitleWords, TransformStripQuotes:
		default:
			return nil, fmt.Errorf("unknown transform %q for field %s", r.Transform, r.Field)
		}

		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for field %s: %w", r.Field, err)
		}
		if r.Group < 0 || r.Group > re.NumSubexp() {
			return nil, fmt.Errorf("pattern for field %s has no group %d", r.Field, r.Group)
		}
		out = append(out, compiledField{FieldRule: r, re: re})
	}
	return out, nil
}

// extract builds the row for a single case
func (c *compiledRules) extract(tc XMLTestCase, output string) CaseDetail {
	detail := CaseDetail{
		MethodName: tc.Name,
		ClassName:  tc.ClassName,
		Status:     tc.Status(),
		Time:       tc.Time,
	}

	for _, m := range c.methods {
		if !strings.Contains(tc.Name, m.MethodContains) {
			continue
		}
		detail.Category = m.Category
		detail.DisplayName = m.DisplayName
		applyFields(&detail, m.fields, output)
		break
	}

	applyFields(&detail, c.common, output)
	return detail
}

// applyFields sets each field from the first match of its pattern. A field
// that already holds a value is left alone.
func applyFields(detail *CaseDetail, rules []compiledField, output string) {
	for _, r := range rules {
		target := fieldRef(detail, r.Field)
		if target == nil || *target != "" {
			continue
		}
		match := r.re.FindStringSubmatch(output)
		if match == nil {
			continue
		}
		*target = transform(match[r.Group], r.Transform)
	}
}

func fieldRef(detail *CaseDetail, field string) *string {
	switch field {
	case FieldParameter:
		return &detail.Parameter
	case FieldExpected:
		return &detail.Expected
	case FieldActualCategories:
		return &detail.ActualCategories
	case FieldExperienceTypes:
		return &detail.ExperienceTypes
	default:
		return nil
	}
}

func transform(value, name string) string {
	switch name {
	case TransformTitleWords:
		return FormatExperienceName(value)
	case TransformStripQuotes:
		return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
	default:
		return value
	}
}

// FormatExperienceName turns "beach_yoga_retreat" into "Beach Yoga Retreat"
func FormatExperienceName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
