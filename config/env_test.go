package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyEnvKeepsSubjectPadding(t *testing.T) {
	t.Setenv("SOC_SUBJECTS", "CSE ,MATH, ,ECE ")
	t.Setenv("RATINGS_DEPARTMENT_KEYWORDS", " physics ,chemistry")
	t.Setenv("SOC_PAGE_TIMEOUT", "45s")
	t.Setenv("OUTPUT_INDENT", "false")

	config := &Config{}
	if err := applyEnv(config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subjects := config.Schedule.Subjects
	if len(subjects) != 3 || subjects[0] != "CSE " || subjects[1] != "MATH" || subjects[2] != "ECE " {
		t.Fatalf("expected padded subjects, got %q", subjects)
	}
	keywords := config.Ratings.DepartmentKeywords
	if len(keywords) != 2 || keywords[0] != "physics" {
		t.Fatalf("expected trimmed keywords, got %q", keywords)
	}
	if config.Schedule.PageTimeout != 45*time.Second || config.Output.Indent {
		t.Fatalf("unexpected overrides %v %v", config.Schedule.PageTimeout, config.Output.Indent)
	}
}

func TestApplyEnvLeavesUnsetFields(t *testing.T) {
	config := &Config{}
	config.Ratings.Source = SourcePostgres
	if err := applyEnv(config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Ratings.Source != SourcePostgres {
		t.Fatalf("expected source untouched, got %q", config.Ratings.Source)
	}
}

func TestApplyEnvNamesTheField(t *testing.T) {
	t.Setenv("RATINGS_AGGREGATE", "sometimes")
	err := applyEnv(&Config{})
	if err == nil || !strings.Contains(err.Error(), "RATINGS_AGGREGATE (ratings.aggregate)") {
		t.Fatalf("expected error naming the variable and field, got %v", err)
	}
}

func TestEnvBindingsUnsupportedType(t *testing.T) {
	var target struct {
		Ratio float64 `yaml:"ratio" env:"SOC_RATIO"`
	}
	bindings := envBindings(reflect.ValueOf(&target).Elem(), "")
	if len(bindings) != 1 || bindings[0].path != "ratio" {
		t.Fatalf("unexpected bindings %+v", bindings)
	}
	if err := bindings[0].set("0.5"); err == nil || !strings.Contains(err.Error(), "unsupported type float64") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}
