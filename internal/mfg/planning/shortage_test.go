package planning

import (
	"reflect"
	"testing"
)

func TestShortagesDropsCoveredMaterials(t *testing.T) {
	totals := map[string]*RawRequirement{
		"RAW-C": {SKUID: "RAW-C", Code: "RAW-C", Needed: 40, Available: 30, Consumers: []string{"PACK-A"}},
		"RAW-D": {SKUID: "RAW-D", Code: "RAW-D", Needed: 10, Available: 100, Consumers: []string{"PACK-A"}},
		"RAW-E": {SKUID: "RAW-E", Code: "RAW-E", Needed: 5, Available: 5, Consumers: []string{"PACK-B"}},
	}

	out := Shortages(totals)
	if len(out) != 1 {
		t.Fatalf("shortages = %+v, want exactly RAW-C", out)
	}
	got := out[0]
	if got.Code != "RAW-C" || got.Shortfall != 10 {
		t.Errorf("shortage = %+v, want RAW-C shortfall 10", got)
	}
	if !reflect.DeepEqual(got.Consumers, []string{"PACK-A"}) {
		t.Errorf("consumers = %v", got.Consumers)
	}
}

func TestShortagesSortedByCode(t *testing.T) {
	totals := map[string]*RawRequirement{
		"z": {SKUID: "z", Code: "RAW-Z", Needed: 10},
		"a": {SKUID: "a", Code: "RAW-A", Needed: 10},
		"m": {SKUID: "m", Code: "RAW-M", Needed: 10},
	}
	out := Shortages(totals)
	var codes []string
	for _, s := range out {
		codes = append(codes, s.Code)
	}
	if !reflect.DeepEqual(codes, []string{"RAW-A", "RAW-M", "RAW-Z"}) {
		t.Errorf("order = %v", codes)
	}
}

func TestShortagesEmptyInput(t *testing.T) {
	if out := Shortages(nil); len(out) != 0 {
		t.Errorf("got %+v for nil input", out)
	}
}
