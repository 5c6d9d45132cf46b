package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/pvkg/pvqa/internal/toolerrors"
)

// These tests exercise the "invalid args fail before any store access"
// contract: every case here must return before touching the (nil)
// gateway, so a nil Library.gw is safe to construct directly.
func newValidationLibrary() *Library {
	return &Library{}
}

func assertInvalidArgs(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var te *toolerrors.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected a *toolerrors.ToolError, got %T: %v", err, err)
	}
	if te.Kind != toolerrors.KindInvalidArgs {
		t.Fatalf("expected KindInvalidArgs, got %v", te.Kind)
	}
}

func TestResolveDrugsRejectsEmptyNames(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.ResolveDrugsFn(context.Background(), nil)
	assertInvalidArgs(t, err)
}

func TestResolveDrugsRejectsBlankEntry(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.ResolveDrugsFn(context.Background(), []string{"aspirin", "  "})
	assertInvalidArgs(t, err)
}

func TestGetDrugTargetsRejectsNonPositiveKey(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.GetDrugTargetsFn(context.Background(), 0)
	assertInvalidArgs(t, err)
	_, err = l.GetDrugTargetsFn(context.Background(), -5)
	assertInvalidArgs(t, err)
}

func TestGetGeneDiseasesRejectsOutOfRangeScore(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.GetGeneDiseasesFn(context.Background(), 1, 1.5)
	assertInvalidArgs(t, err)
	_, err = l.GetGeneDiseasesFn(context.Background(), 1, -0.1)
	assertInvalidArgs(t, err)
}

func TestGetEntityClaimsRejectsUnknownKind(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.GetEntityClaimsFn(context.Background(), "widget", 1, nil, 0)
	assertInvalidArgs(t, err)
}

func TestBuildSubgraphRejectsEmptyDrugKeysAndNoCategories(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.BuildSubgraphFn(context.Background(), BuildSubgraphRequest{})
	assertInvalidArgs(t, err)

	_, err = l.BuildSubgraphFn(context.Background(), BuildSubgraphRequest{DrugKeys: []int64{1}})
	assertInvalidArgs(t, err)
}

func TestExpandGeneContextRejectsEmptyKeys(t *testing.T) {
	l := newValidationLibrary()
	_, err := l.ExpandGeneContextFn(context.Background(), nil, 0.5)
	assertInvalidArgs(t, err)
}

func TestClampLimitFallsBackAndCaps(t *testing.T) {
	if got := clampLimit(0, 20, 100); got != 20 {
		t.Fatalf("expected fallback 20, got %d", got)
	}
	if got := clampLimit(500, 20, 100); got != 100 {
		t.Fatalf("expected cap 100, got %d", got)
	}
	if got := clampLimit(10, 20, 100); got != 10 {
		t.Fatalf("expected passthrough 10, got %d", got)
	}
}
