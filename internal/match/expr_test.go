package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantmatch/core/internal/match"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOp  match.Operator
		wantVal float64
		wantErr bool
	}{
		{name: "bare number defaults to equal", input: "120", wantOp: match.OpEqual, wantVal: 120},
		{name: "greater-equal", input: ">= 100", wantOp: match.OpGreaterEqual, wantVal: 100},
		{name: "less-equal no space", input: "<=150", wantOp: match.OpLessEqual, wantVal: 150},
		{name: "strict greater", input: "> 80", wantOp: match.OpGreater, wantVal: 80},
		{name: "strict less", input: "< 12.5", wantOp: match.OpLess, wantVal: 12.5},
		{name: "decimal comma", input: "= 12,5", wantOp: match.OpEqual, wantVal: 12.5},
		{name: "malformed", input: "banana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := match.ParseExpr(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, match.ErrMalformedExpr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOp, got.Op)
			assert.Equal(t, tt.wantVal, got.Value)
		})
	}
}

func TestExprSatisfiesRange(t *testing.T) {
	min, max := 80.0, 150.0

	assert.True(t, match.Expr{Op: match.OpGreaterEqual, Value: 100}.SatisfiesRange(&min, &max))
	assert.False(t, match.Expr{Op: match.OpEqual, Value: 50}.SatisfiesRange(&min, &max))
	assert.False(t, match.Expr{Op: match.OpGreater, Value: 80}.SatisfiesRange(&min, &max))
	assert.True(t, match.Expr{Op: match.OpGreater, Value: 81}.SatisfiesRange(&min, &max))
	assert.False(t, match.Expr{Op: match.OpEqual, Value: 200}.SatisfiesRange(&min, &max))
	assert.False(t, match.Expr{Op: match.OpLess, Value: 150}.SatisfiesRange(&min, &max))
	assert.True(t, match.Expr{Op: match.OpLess, Value: 149}.SatisfiesRange(&min, &max))
}

func TestExprSatisfiesRangeOpenBounds(t *testing.T) {
	max := 10.0
	assert.True(t, match.Expr{Op: match.OpEqual, Value: -1000}.SatisfiesRange(nil, &max))
	assert.False(t, match.Expr{Op: match.OpEqual, Value: 11}.SatisfiesRange(nil, &max))
}

func TestExprSatisfiesDiscrete(t *testing.T) {
	values := []float64{100, 150}

	assert.False(t, match.Expr{Op: match.OpEqual, Value: 120}.SatisfiesDiscrete(values))
	assert.True(t, match.Expr{Op: match.OpEqual, Value: 100}.SatisfiesDiscrete(values))
	assert.True(t, match.Expr{Op: match.OpGreaterEqual, Value: 120}.SatisfiesDiscrete(values))
	assert.False(t, match.Expr{Op: match.OpGreaterEqual, Value: 200}.SatisfiesDiscrete(values))
	assert.True(t, match.Expr{Op: match.OpLess, Value: 120}.SatisfiesDiscrete(values))
}

func TestExprSatisfiesComparison(t *testing.T) {
	assert.True(t, match.Expr{Op: match.OpGreaterEqual, Value: 5}.SatisfiesComparison(5))
	assert.False(t, match.Expr{Op: match.OpGreater, Value: 5}.SatisfiesComparison(5))
	assert.True(t, match.Expr{Op: match.OpLess, Value: 5}.SatisfiesComparison(4.9))
}
