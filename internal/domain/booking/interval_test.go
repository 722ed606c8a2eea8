package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
}

func iv(h0, m0, h1, m1 int) Interval {
	return Interval{Start: at(h0, m0), End: at(h1, m1)}
}

// O predicado canônico a0 < b1 && b0 < a1 substitui os três ramos
// disjuntivos redundantes da lógica original; os casos de borda abaixo
// verificam a equivalência.
func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identicos", iv(8, 0, 8, 30), iv(8, 0, 8, 30), true},
		{"parcial_direita", iv(8, 0, 9, 0), iv(8, 30, 9, 30), true},
		{"parcial_esquerda", iv(8, 30, 9, 30), iv(8, 0, 9, 0), true},
		{"contido", iv(8, 0, 10, 0), iv(8, 30, 9, 0), true},
		{"contem", iv(8, 30, 9, 0), iv(8, 0, 10, 0), true},

		// encostados não se sobrepõem: fim == início do próximo
		{"encostado_depois", iv(8, 0, 8, 30), iv(8, 30, 9, 0), false},
		{"encostado_antes", iv(8, 30, 9, 0), iv(8, 0, 8, 30), false},

		{"disjuntos", iv(8, 0, 8, 30), iv(10, 0, 10, 30), false},

		// intervalo de duração zero nunca cruza nada
		{"zero_duracao", iv(8, 15, 8, 15), iv(8, 0, 9, 0), false},
		{"contra_zero_duracao", iv(8, 0, 9, 0), iv(8, 15, 8, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// o predicado é simétrico
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalHelpers(t *testing.T) {
	i := NewInterval(at(9, 0), 45*time.Minute)

	assert.True(t, i.Valid())
	assert.Equal(t, 45*time.Minute, i.Duration())
	assert.Equal(t, at(9, 45), i.End)

	assert.True(t, i.Contains(at(9, 0)))
	assert.True(t, i.Contains(at(9, 44)))
	assert.False(t, i.Contains(at(9, 45))) // semiaberto

	assert.False(t, Interval{Start: at(9, 0), End: at(9, 0)}.Valid())
}
