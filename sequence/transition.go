package sequence

// Transition selects the interpolation law used while moving into a
// step's target color
type Transition uint8

const (
	// Discrete jumps to the target color immediately and holds it for
	// the step duration. The only transition valid on zero-duration steps
	Discrete Transition = iota

	// Linear interpolates from the previous color at constant speed
	Linear

	// EaseIn starts slow and accelerates (quadratic)
	EaseIn

	// EaseOut starts fast and decelerates (quadratic)
	EaseOut

	// EaseInOut is a symmetric S-curve: slow, fast, slow
	EaseInOut

	// EaseOutIn is the inverted S-curve: fast, slow, fast
	EaseOutIn
)

// Interpolates reports whether the transition blends from the previous
// color rather than jumping straight to the target
func (t Transition) Interpolates() bool {
	return t != Discrete
}

func (t Transition) String() string {
	switch t {
	case Discrete:
		return "Discrete"
	case Linear:
		return "Linear"
	case EaseIn:
		return "EaseIn"
	case EaseOut:
		return "EaseOut"
	case EaseInOut:
		return "EaseInOut"
	case EaseOutIn:
		return "EaseOutIn"
	}
	return "Unknown"
}

// ease maps linear progress t in [0,1] to eased progress. Endpoints are
// exact for every curve: ease(0)=0 and ease(1)=1
func ease(t float64, tr Transition) float64 {
	switch tr {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return (4-2*t)*t - 1
	case EaseOutIn:
		if t < 0.5 {
			return 2 * t * (1 - t)
		}
		u := 2*t - 1
		return 0.5 + 0.5*u*u
	}
	return t
}
