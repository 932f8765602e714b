package errors

import (
	"math"
	"testing"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"half", "1/2", 0.5, false},
		{"two thirds", "2/3", 2.0 / 3.0, false},
		{"decimal", "0.75", 0.75, false},
		{"whitespace", "  7/8 ", 0.875, false},
		{"integer", "1", 1, false},
		{"negative", "-1/2", -0.5, false},
		{"exponent", "5e-1", 0.5, false},
		{"large ratio", "123456789012345678/2", 61728394506172839, false},

		{"empty", "", 0, true},
		{"blank", "   ", 0, true},
		{"garbage", "half", 0, true},
		{"zero denominator", "1/0", 0, true},
		{"expression", "1/2+1", 0, true},
		{"control char", "1/\x002", 0, true},
		{"huge exponent", "1e1000000", 0, true},
		{"overflow", "1e400", 0, true},
		{"nan", "NaN", 0, true},
		{"inf", "-Inf", 0, true},
		{"long numerator", "1234567890123456789/2", 0, true},
		{"decimal ratio", "1.5/2", 0, true},
		{"double slash", "1/2/3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFraction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFraction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidInput) {
					t.Errorf("ParseFraction(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("ParseFraction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateJump(t *testing.T) {
	tests := []struct {
		jump    float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{2, false},
		{-0.1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateJump(tt.jump)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateJump(%v) error = %v, wantErr %v", tt.jump, err, tt.wantErr)
		}
	}
}

func TestValidatePolygon(t *testing.T) {
	for _, n := range []int{3, 4, 200} {
		if err := ValidatePolygon(n); err != nil {
			t.Errorf("ValidatePolygon(%d) unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{-1, 0, 2} {
		if err := ValidatePolygon(n); err == nil {
			t.Errorf("ValidatePolygon(%d) should fail", n)
		}
	}
}

func TestValidateOffset(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		polygon   int
		symmetric bool
		wantErr   bool
	}{
		{"zero", 0, 4, false, false},
		{"full turn", 4, 4, false, false},
		{"negative full turn", -4, 4, false, false},
		{"beyond", 5, 4, false, true},
		{"symmetric half", 2, 4, true, false},
		{"symmetric beyond half", 3, 4, true, true},
		{"symmetric odd", 1, 3, true, false},
		{"symmetric odd beyond", -2, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOffset(tt.offset, tt.polygon, tt.symmetric)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOffset(%d, %d, %v) error = %v, wantErr %v",
					tt.offset, tt.polygon, tt.symmetric, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSteps(t *testing.T) {
	if err := ValidateSteps(0); err != nil {
		t.Errorf("zero steps should be valid: %v", err)
	}
	if err := ValidateSteps(MaxSteps); err != nil {
		t.Errorf("MaxSteps should be valid: %v", err)
	}
	if err := ValidateSteps(-1); err == nil {
		t.Error("negative steps should fail")
	}
	if err := ValidateSteps(MaxSteps + 1); err == nil {
		t.Error("steps above MaxSteps should fail")
	}
}

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "sierpt", false},
		{"with dash", "my-fern", false},
		{"with underscore", "fern_2", false},

		{"empty", "", true},
		{"uppercase", "XTREME", true},
		{"leading dash", "-fern", true},
		{"path", "a/b", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePresetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
