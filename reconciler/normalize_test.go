package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents and punctuation", "Ação Civil-Pública!", "acao civilpublica"},
		{"whitespace kept", "  Resultado Final ", "  resultado final "},
		{"slash removed", "São Paulo/SP", "sao paulosp"},
		{"underscore and digits kept", "Ñandú_1", "nandu_1"},
		{"cedilla", "CITAÇÃO", "citacao"},
		{"non latin letters dropped", "straße", "strae"},
		{"empty", "", ""},
		{"no-break and ideographic spaces kept", "a\u00a0b\u3000c", "a\u00a0b\u3000c"},
		{"byte order mark kept", "a\ufeffb", "a\ufeffb"},
		{"line separators kept", "a\u2028b\u2029c\vd", "a\u2028b\u2029c\vd"},
		{"next line dropped", "a\u0085b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeValueNonString(t *testing.T) {
	assert.Equal(t, "", NormalizeValue(nil))
	assert.Equal(t, "", NormalizeValue(42.0))
	assert.Equal(t, "", NormalizeValue(true))
	assert.Equal(t, "caso sul", NormalizeValue("Caso Sul."))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, in := range []string{"Ação Civil-Pública!", "Pedido nº 12/2024", "ÉÊË çÇ"} {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once), in)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "100", FormatValue(100.0))
	assert.Equal(t, "1.5", FormatValue(1.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "TRUE", FormatValue(true))
	assert.Equal(t, "texto", FormatValue("texto"))
}
