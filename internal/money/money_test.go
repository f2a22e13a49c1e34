package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/money"
)

func TestBRL(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "Zero", cents: 0, want: "R$ 0,00"},
		{name: "Cents", cents: 50, want: "R$ 0,50"},
		{name: "Simple", cents: 3000, want: "R$ 30,00"},
		{name: "Thousands", cents: 123456, want: "R$ 1.234,56"},
		{name: "Millions", cents: 123456789, want: "R$ 1.234.567,89"},
		{name: "Negative", cents: -1250, want: "-R$ 12,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.BRL(tt.cents))
		})
	}
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "DecimalComma", in: "12,50", want: 1250},
		{name: "ThousandsAndComma", in: "1.234,56", want: 123456},
		{name: "PlainInteger", in: "30", want: 3000},
		{name: "DecimalPoint", in: "7.5", want: 750},
		{name: "CurrencyPrefix", in: "R$ 99,90", want: 9990},
		{name: "Garbage", in: "abc", wantErr: true},
		{name: "Empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseBRL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
