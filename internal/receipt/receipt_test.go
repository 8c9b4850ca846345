package receipt

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

func kinds(lines []Line) []LineKind {
	out := make([]LineKind, len(lines))
	for i, l := range lines {
		out[i] = l.Kind
	}
	return out
}

func TestBuildLinesGroupsByProductFirstSeen(t *testing.T) {
	t.Parallel()

	items := types.CartLines{
		teeLine("a", "M", "M", 1),
		bundleLine("b", 1),
		teeLine("c", "S", "S", 2),
	}

	lines := BuildLines(items)

	want := []LineKind{
		KindProductHeader, KindVariantRow, // tee M
		KindProductHeader, KindVariantRow, // tee S, still in the tee group
		KindDivider,
		KindProductHeader, KindSetDetail, KindSetDetail, KindSetDetail,
	}
	if !reflect.DeepEqual(kinds(lines), want) {
		t.Fatalf("unexpected shape:\n got %v\nwant %v", kinds(lines), want)
	}
}

func TestBuildLinesMergesIdenticalSelections(t *testing.T) {
	t.Parallel()

	items := types.CartLines{
		teeLine("a", "M", "M", 1),
		teeLine("b", "M", "M", 2),
	}

	lines := BuildLines(items)
	if len(lines) != 2 {
		t.Fatalf("expected merged header plus variant row, got %d lines", len(lines))
	}

	header := lines[0]
	if header.Qty != 3 {
		t.Fatalf("quantities must merge, got %d", header.Qty)
	}
	if !header.Total.Equal(decimal.NewFromInt(837)) {
		t.Fatalf("expected total 837, got %s", header.Total)
	}
	if lines[1].VariantStr != "M" {
		t.Fatalf("unexpected variant row: %q", lines[1].VariantStr)
	}
}

func TestBuildLinesKeepsDifferentSelectionsApart(t *testing.T) {
	t.Parallel()

	items := types.CartLines{
		teeLine("a", "M", "M", 1),
		teeLine("b", "S", "S", 1),
	}

	lines := BuildLines(items)
	headers := 0
	for _, l := range lines {
		if l.Kind == KindProductHeader {
			headers++
		}
		if l.Kind == KindDivider {
			t.Fatal("same product must not get a divider")
		}
	}
	if headers != 2 {
		t.Fatalf("expected 2 headers, got %d", headers)
	}
}

func TestBuildLinesSetDetails(t *testing.T) {
	t.Parallel()

	lines := BuildLines(types.CartLines{bundleLine("a", 1)})

	if lines[0].Kind != KindProductHeader || !lines[0].IsSet {
		t.Fatalf("expected set header first, got %+v", lines[0])
	}
	if lines[1].Detail != "Tee: M" {
		t.Fatalf("member with variant must render name: label, got %q", lines[1].Detail)
	}
	if lines[3].Detail != "Sticker" {
		t.Fatalf("member without variant renders bare name, got %q", lines[3].Detail)
	}
}

func TestBuildLinesNoVariantRowWithoutSelections(t *testing.T) {
	t.Parallel()

	items := types.CartLines{{
		CartID:      "a",
		ProductID:   "mug",
		ProductName: "Mug",
		ProductCode: "MUG",
		UnitPrice:   decimal.NewFromInt(120),
		Qty:         1,
	}}

	lines := BuildLines(items)
	if len(lines) != 1 || lines[0].Kind != KindProductHeader {
		t.Fatalf("plain product renders only a header, got %v", kinds(lines))
	}
}

func TestBuildLinesPureAndIdempotent(t *testing.T) {
	t.Parallel()

	items := types.CartLines{
		teeLine("a", "M", "M", 1),
		bundleLine("b", 2),
	}
	snapshot := append(types.CartLines{}, items...)

	first := BuildLines(items)
	second := BuildLines(items)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over the same input must agree")
	}
	if !reflect.DeepEqual(items, snapshot) {
		t.Fatal("input must not be modified")
	}
}

func TestBuildLinesEmpty(t *testing.T) {
	t.Parallel()

	if lines := BuildLines(nil); len(lines) != 0 {
		t.Fatalf("empty cart renders nothing, got %d lines", len(lines))
	}
}
