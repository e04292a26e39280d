package junit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptionOutput = `Starting Category Generation with Description Test for: beach_yoga_retreat
Expected category for beach_yoga_retreat: Wellness
Response: {"experienceCategory":["Wellness", "Outdoor"],"experienceTypes":["Yoga"]}`

func defaultCompiled(t *testing.T) *compiledRules {
	t.Helper()
	rules, err := compileRules(DefaultRules())
	require.NoError(t, err)
	return rules
}

func TestExtract_DescriptionMethod(t *testing.T) {
	// Arrange
	rules := defaultCompiled(t)
	tc := XMLTestCase{Name: "testGenerateCategoriesWithDescription(String)[1]", Time: "2.5"}

	// Act
	d := rules.extract(tc, descriptionOutput)

	// Assert
	assert.Equal(t, "Category Generation with Description", d.Category)
	assert.Equal(t, "AI Category Generation from Description", d.DisplayName)
	assert.Equal(t, "Beach Yoga Retreat", d.Parameter)
	assert.Equal(t, "Wellness", d.Expected)
	assert.Equal(t, "Wellness, Outdoor", d.ActualCategories)
	assert.Equal(t, "Yoga", d.ExperienceTypes)
	assert.Equal(t, StatusPass, d.Status)
	assert.Equal(t, "2.5", d.Time)
	assert.Equal(t, "category-match", d.MatchClass())
}

func TestExtract_TypeMethod(t *testing.T) {
	rules := defaultCompiled(t)
	tc := XMLTestCase{Name: "testGenerateExperienceCategories(String)[2]", Failures: []XMLProblem{{}}}
	output := "Starting Experience Categories Generation Test for: category_Adventure\n" +
		`{"experienceCategory":["Culture"]}`

	d := rules.extract(tc, output)

	assert.Equal(t, "Category Generation", d.Category)
	assert.Equal(t, "AI Category Generation by Type", d.DisplayName)
	assert.Equal(t, "Adventure", d.Parameter)
	assert.Equal(t, "Adventure", d.Expected)
	assert.Equal(t, "Culture", d.ActualCategories)
	assert.Empty(t, d.ExperienceTypes)
	assert.Equal(t, StatusFail, d.Status)
	assert.Equal(t, "category-mismatch", d.MatchClass())
}

func TestExtract_UnmatchedMethod(t *testing.T) {
	rules := defaultCompiled(t)

	d := rules.extract(XMLTestCase{Name: "testSomethingElse"}, `"experienceTypes":["Tour"]`)

	assert.Empty(t, d.Category)
	assert.Empty(t, d.DisplayName)
	assert.Empty(t, d.Parameter)
	assert.False(t, d.HasExpected())
	assert.Equal(t, "", d.MatchClass())
	assert.Equal(t, "Tour", d.ExperienceTypes)
}

func TestExtract_FirstMatchOnly(t *testing.T) {
	rules := defaultCompiled(t)
	output := `"experienceCategory":["First"] then "experienceCategory":["Second"]`

	d := rules.extract(XMLTestCase{Name: "x"}, output)

	assert.Equal(t, "First", d.ActualCategories)
}

func TestMatchClass_CaseInsensitive(t *testing.T) {
	d := CaseDetail{Expected: "wellness", ActualCategories: "Outdoor, WELLNESS"}
	assert.Equal(t, "category-match", d.MatchClass())
}

func TestFormatExperienceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"beach_yoga_retreat", "Beach Yoga Retreat"},
		{"single", "Single"},
		{"already_Upper", "Already Upper"},
		{"double__underscore", "Double  Underscore"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExperienceName(tt.in))
		})
	}
}

func TestCompileRules_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
	}{
		{
			name:  "invalid pattern",
			rules: Rules{Common: []FieldRule{{Field: FieldExpected, Pattern: "([a-z"}}},
		},
		{
			name:  "unknown field",
			rules: Rules{Common: []FieldRule{{Field: "nope", Pattern: "x"}}},
		},
		{
			name:  "missing group",
			rules: Rules{Common: []FieldRule{{Field: FieldExpected, Pattern: "(x)", Group: 2}}},
		},
		{
			name:  "unknown transform",
			rules: Rules{Common: []FieldRule{{Field: FieldExpected, Pattern: "x", Transform: "upper"}}},
		},
		{
			name:  "empty method match",
			rules: Rules{Methods: []MethodRule{{Category: "Any"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileRules(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestGroupCases_FirstSeenOrder(t *testing.T) {
	groups := groupCases([]CaseDetail{
		{MethodName: "a", Category: "Second"},
		{MethodName: "b"},
		{MethodName: "c", Category: "First"},
		{MethodName: "d", Category: "Second"},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "Second", groups[0].Category)
	assert.Len(t, groups[0].Cases, 2)
	assert.Equal(t, UnclassifiedCategory, groups[1].Category)
	assert.Equal(t, "First", groups[2].Category)
}
