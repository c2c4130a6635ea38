// Package location obtains the user's coordinates once per session, gated
// behind an explicit confirmation prompt. The platform pieces (the dialog
// and the geolocation capability) sit behind interfaces so UIs plug in
// their own and tests substitute fakes.
package location

import "context"

// Point is a user location fix.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Confirmer shows a yes/no prompt asking whether to enable location access.
type Confirmer interface {
	Confirm(message string) bool
}

// PositionProvider requests a single position fix from the platform. A nil
// provider models a platform without geolocation support.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (Point, error)
}

const promptMessage = "Enable location access to show nearby restaurants?"

// Gate guards the location prompt with a one-shot flag so the user is asked
// at most once per session, regardless of how many views request the
// location. It is idempotence, not a lock: Gate is meant for the
// single-threaded UI event flow and one instance per session.
type Gate struct {
	confirm  Confirmer
	provider PositionProvider

	asked bool
	point *Point
}

// NewGate builds a gate over the given platform pieces. provider may be nil
// when the platform has no geolocation capability.
func NewGate(c Confirmer, p PositionProvider) *Gate {
	return &Gate{confirm: c, provider: p}
}

// Location returns the stored fix, or nil when the user declined, the
// platform failed, or the prompt has not run yet.
func (g *Gate) Location() *Point { return g.point }

// Request runs the permission flow. The first call prompts the user; on
// consent and a capable platform it requests a single fix and stores it.
// Denial, provider absence or provider error all leave the location nil;
// there are no retries and no continuous tracking. Subsequent calls return
// the stored result without prompting again.
func (g *Gate) Request(ctx context.Context) (*Point, error) {
	if g.asked {
		return g.point, nil
	}
	g.asked = true

	if !g.confirm.Confirm(promptMessage) {
		return nil, nil
	}
	if g.provider == nil {
		return nil, nil
	}
	p, err := g.provider.CurrentPosition(ctx)
	if err != nil {
		return nil, err
	}
	g.point = &p
	return g.point, nil
}
