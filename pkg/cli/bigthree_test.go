package cli

import (
	"reflect"
	"testing"
)

func TestBigThreeSummary(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{
			name: "full response",
			data: map[string]any{
				"Sun":  map[string]any{"sign": "Aries", "degree": 15.3},
				"Moon": map[string]any{"sign": "Taurus", "degree": 2.0},
				"Asc":  map[string]any{"sign": "Leo", "degree": 28.1},
			},
			want: []string{
				"Sun: Aries 15.3°",
				"Moon: Taurus 2°",
				"Ascendant: Leo 28.1°",
			},
		},
		{
			name: "lowercase keys",
			data: map[string]any{
				"sun": map[string]any{"sign": "Pisces", "degree": 9.9},
			},
			want: []string{"Sun: Pisces 9.9°"},
		},
		{
			name: "missing sign defaults",
			data: map[string]any{
				"Sun": map[string]any{"degree": 1.0},
			},
			want: []string{"Sun: N/A 1°"},
		},
		{
			name: "missing degree leaves it empty",
			data: map[string]any{
				"Moon": map[string]any{"sign": "Virgo"},
			},
			want: []string{"Moon: Virgo °"},
		},
		{
			name: "partial response keeps order",
			data: map[string]any{
				"Asc": map[string]any{"sign": "Libra", "degree": 3.5},
				"Sun": map[string]any{"sign": "Gemini", "degree": 11.0},
			},
			want: []string{
				"Sun: Gemini 11°",
				"Ascendant: Libra 3.5°",
			},
		},
		{
			name: "array response yields nothing",
			data: []any{"Sun", "Moon"},
			want: nil,
		},
		{
			name: "empty object yields nothing",
			data: map[string]any{},
			want: nil,
		},
		{
			name: "body entry with wrong shape is skipped",
			data: map[string]any{
				"Sun":  "Aries",
				"Moon": map[string]any{"sign": "Cancer", "degree": 20.0},
			},
			want: []string{"Moon: Cancer 20°"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bigThreeSummary(tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bigThreeSummary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupFold(t *testing.T) {
	m := map[string]any{"Sun": 1, "moon": 2}

	if v, ok := lookupFold(m, "Sun"); !ok || v != 1 {
		t.Errorf("exact match failed: %v %v", v, ok)
	}
	if v, ok := lookupFold(m, "Moon"); !ok || v != 2 {
		t.Errorf("case-insensitive match failed: %v %v", v, ok)
	}
	if _, ok := lookupFold(m, "Venus"); ok {
		t.Error("expected no match for Venus")
	}
}
