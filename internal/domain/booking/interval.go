package booking

import "time"

// Intervalo semiaberto [Start, End).
// Todo o motor de reservas usa este tipo e este único predicado de
// sobreposição — nada de duplicar a comparação em outros lugares.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps: [a0,a1) cruza [b0,b1) sse a0 < b1 && b0 < a1.
// Intervalos encostados (a1 == b0) NÃO se sobrepõem.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}
