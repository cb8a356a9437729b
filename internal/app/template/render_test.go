package template

import (
	"testing"

	"github.com/sammiviz/sammi/internal/domain"
)

const marker = "//MATLAB_CODE_HERE//"

func TestInjectSingleMarker(t *testing.T) {
	out, err := Inject("<script>"+marker+"</script>", marker, "e = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<script>e = 1;</script>" {
		t.Fatalf("expected injected page, got %q", out)
	}
}

func TestInjectEveryOccurrence(t *testing.T) {
	out, err := Inject(marker+"|"+marker, marker, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x|x" {
		t.Fatalf("expected both markers replaced, got %q", out)
	}
}

func TestInjectKeepsCodeVerbatim(t *testing.T) {
	code := `shelveList("(?:^h_.$)");$1 ${x}`
	out, err := Inject("a"+marker+"b", marker, code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a"+code+"b" {
		t.Fatalf("expected code copied as is, got %q", out)
	}
}

func TestInjectMissingMarker(t *testing.T) {
	_, err := Inject("<html></html>", marker, "x")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestInjectEmptyMarker(t *testing.T) {
	if _, err := Inject("page", " ", "x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHasMarker(t *testing.T) {
	if !HasMarker("a"+marker, marker) {
		t.Fatalf("expected marker to be found")
	}
	if HasMarker("a", marker) || HasMarker("a", "") {
		t.Fatalf("expected no marker")
	}
}
