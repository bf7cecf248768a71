package geo

import (
	"testing"

	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestSelectRoute_PicksNearest(t *testing.T) {
	north := Route{{1, 0}, {1, 1}}
	south := Route{{0, 0}, {0, 1}}

	got, ok := SelectRoute([]Route{north, south}, Position{Lat: 0.001, Lon: 0.5}, 90, DefaultSnapDistance)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got[0], Position{0, 0})
	testutil.AssertEqual(t, got[1], Position{0, 1})
}

func TestSelectRoute_ReversesAgainstHeading(t *testing.T) {
	r := Route{{0, 0}, {0, 1}, {0, 2}}

	got, ok := SelectRoute([]Route{r}, Position{Lat: 0, Lon: 1.2}, 270, DefaultSnapDistance)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got[0], Position{0, 2})
	testutil.AssertEqual(t, got[2], Position{0, 0})
	testutil.AssertEqual(t, r[0], Position{0, 0})
}

func TestSelectRoute_KeepsOrientationWithinNinetyDegrees(t *testing.T) {
	r := Route{{0, 0}, {0, 1}}

	got, ok := SelectRoute([]Route{r}, Position{Lat: 0, Lon: 0.5}, 45, DefaultSnapDistance)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got[0], Position{0, 0})
}

func TestSelectRoute_NoneInRange(t *testing.T) {
	r := Route{{0, 0}, {0, 1}}

	got, ok := SelectRoute([]Route{r, {{5, 5}}, nil}, Position{Lat: 0.5, Lon: 0.5}, 90, DefaultSnapDistance)
	testutil.AssertFalse(t, ok)
	testutil.AssertEqual(t, len(got), 0)

	_, ok = SelectRoute(nil, Position{}, 0, DefaultSnapDistance)
	testutil.AssertFalse(t, ok)
}

func TestAngleBetween(t *testing.T) {
	testutil.AssertFloatEqual(t, angleBetween(10, 350), 20, eps)
	testutil.AssertFloatEqual(t, angleBetween(90, 270), 180, eps)
	testutil.AssertFloatEqual(t, angleBetween(0, 0), 0, eps)
	testutil.AssertFloatEqual(t, angleBetween(-30, 30), 60, eps)
}
