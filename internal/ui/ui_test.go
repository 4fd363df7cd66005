package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHeadlessManagerForce(t *testing.T) {
	hm := NewHeadlessManager()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("expected headless after ForceHeadless(true)")
	}

	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("expected interactive after ForceHeadless(false)")
	}
}

func TestHeadlessManagerDefaults(t *testing.T) {
	hm := NewHeadlessManager()

	if hm.HasDefaults() {
		t.Error("expected no defaults on fresh manager")
	}
	if _, ok := hm.GetDefault("target"); ok {
		t.Error("expected missing key lookup to report not found")
	}

	hm.SetDefaults(map[string]string{"target": "cursor", "level": "expert"})
	if !hm.HasDefaults() {
		t.Error("expected HasDefaults after SetDefaults")
	}
	if v, ok := hm.GetDefault("target"); !ok || v != "cursor" {
		t.Errorf("GetDefault(target) = %q, %v; want cursor, true", v, ok)
	}

	hm.SetDefaults(nil)
	if hm.HasDefaults() {
		t.Error("expected SetDefaults(nil) to clear defaults")
	}
}

func TestProgressHeadlessBar(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf bytes.Buffer
	p := NewProgressTo(DefaultTheme(), hm, &buf)

	bar := p.Start("writing bundle", 3)
	bar.Increment(1)
	bar.Increment(1)
	bar.SetTitle("finishing")
	bar.Done()

	out := buf.String()
	if !strings.Contains(out, "[1/3] writing bundle") {
		t.Errorf("missing first increment line in output:\n%s", out)
	}
	if !strings.Contains(out, "[3/3] finishing") {
		t.Errorf("missing completion line in output:\n%s", out)
	}
}

func TestProgressHeadlessBarClampsToTotal(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf bytes.Buffer
	p := NewProgressTo(DefaultTheme(), hm, &buf)

	bar := p.Start("task", 2)
	bar.Increment(5)

	if !strings.Contains(buf.String(), "[2/2] task") {
		t.Errorf("expected increment clamped to total, got:\n%s", buf.String())
	}
}

func TestProgressHeadlessSpinner(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf bytes.Buffer
	p := NewProgressTo(DefaultTheme(), hm, &buf)

	s := p.Spinner("loading corpus")
	s.SetTitle("resolving paths")
	s.Stop()

	out := buf.String()
	for _, want := range []string{"loading corpus", "resolving paths"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestProgressNoColorFallsBackToPlain(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf bytes.Buffer
	p := NewProgressTo(Monochrome(), hm, &buf)

	bar := p.Start("task", 1)
	if _, ok := bar.(*plainBar); !ok {
		t.Errorf("expected plain bar when NoColor is set, got %T", bar)
	}
}

func TestWizardHeadlessUsesDefaults(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	hm.SetDefaults(map[string]string{
		"project_name": "payments",
		"target":       "cursor",
		"level":        "expert",
		"language":     "go",
	})

	w := NewWizard(DefaultTheme(), hm)
	result, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.ProjectName != "payments" {
		t.Errorf("ProjectName = %q, want payments", result.ProjectName)
	}
	if result.Target != "cursor" {
		t.Errorf("Target = %q, want cursor", result.Target)
	}
	if result.Level != "expert" {
		t.Errorf("Level = %q, want expert", result.Level)
	}
	if result.Language != "go" {
		t.Errorf("Language = %q, want go", result.Language)
	}
}

func TestWizardHeadlessPartialDefaults(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	hm.SetDefaults(map[string]string{"project_name": "api"})

	w := NewWizard(DefaultTheme(), hm)
	result, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Target != "claude" {
		t.Errorf("Target = %q, want claude default", result.Target)
	}
	if result.Level != "standard" {
		t.Errorf("Level = %q, want standard default", result.Level)
	}
}

func TestWizardHeadlessNoDefaults(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	w := NewWizard(DefaultTheme(), hm)
	if _, err := w.Run(context.Background()); !errors.Is(err, ErrHeadlessNoDefaults) {
		t.Errorf("Run() error = %v, want ErrHeadlessNoDefaults", err)
	}
}

func TestWizardRespectsContextCancellation(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	hm.SetDefaults(map[string]string{"project_name": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWizard(DefaultTheme(), hm)
	if _, err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
