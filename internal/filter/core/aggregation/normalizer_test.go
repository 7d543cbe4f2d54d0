package aggregation

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-analytics-service/internal/filter/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustNormalizer(t *testing.T, g domain.Granularity) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(g)
	require.NoError(t, err)
	return n
}

// sampleTimes returns a fixed pseudo-random spread of instants across several
// decades, including non-UTC zones and sub-day offsets.
func sampleTimes() []time.Time {
	rng := rand.New(rand.NewPCG(7, 42))
	zones := []*time.Location{time.UTC, time.FixedZone("CEST", 2*3600), time.FixedZone("PST", -8*3600)}
	base := date(1995, time.January, 1)
	out := make([]time.Time, 0, 300)
	for range 300 {
		offset := time.Duration(rng.Int64N(int64(40 * 365 * 24 * time.Hour)))
		out = append(out, base.Add(offset).In(zones[rng.IntN(len(zones))]))
	}
	return out
}

func TestNewNormalizer_UnknownGranularity(t *testing.T) {
	_, err := NewNormalizer("HOUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, g := range domain.Granularities {
		t.Run(string(g), func(t *testing.T) {
			n := mustNormalizer(t, g)
			for _, ts := range sampleTimes() {
				k := n.Normalize(ts)
				assert.Equal(t, k, n.Normalize(k.Time()), "granularity %s, time %s", g, ts)
			}
		})
	}
}

func TestNormalize_CanonicalInstants(t *testing.T) {
	ts := time.Date(2014, time.March, 13, 17, 45, 0, 0, time.UTC) // Thursday

	tests := []struct {
		granularity domain.Granularity
		want        time.Time
		label       string
	}{
		{domain.Year, date(2014, time.January, 1), "2014"},
		{domain.Month, date(2014, time.March, 1), "2014-03"},
		{domain.MonthOfYear, date(monthReferenceYear, time.March, 1), "March"},
		{domain.WeekOfYear, date(2014, time.March, 10), "2014-W11"},
		{domain.DayOfWeek, weekAnchor.AddDate(0, 0, 3), "Thursday"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			n := mustNormalizer(t, tt.granularity)
			k := n.Normalize(ts)
			assert.Equal(t, tt.want, k.Time())
			assert.Equal(t, tt.label, n.Format(k))
		})
	}
}

func TestNormalize_DayOfWeekOrdersMondayFirst(t *testing.T) {
	n := mustNormalizer(t, domain.DayOfWeek)

	// 2014-01-05 is a Sunday, 2014-01-06 a Monday.
	sunday := n.Normalize(date(2014, time.January, 5))
	monday := n.Normalize(date(2014, time.January, 6))
	saturday := n.Normalize(date(2014, time.January, 11))

	assert.Less(t, monday, saturday)
	assert.Less(t, saturday, sunday)
	assert.Equal(t, "Monday", n.Format(monday))
	assert.Equal(t, "Sunday", n.Format(sunday))
}

func TestNormalize_MonthKeepsYearButMonthOfYearCollapses(t *testing.T) {
	month := mustNormalizer(t, domain.Month)
	collapsed := mustNormalizer(t, domain.MonthOfYear)

	jan14 := date(2014, time.January, 20)
	jan15 := date(2015, time.January, 3)

	assert.NotEqual(t, month.Normalize(jan14), month.Normalize(jan15))
	assert.Equal(t, collapsed.Normalize(jan14), collapsed.Normalize(jan15))
}

func TestNormalize_ConvertsToUTCFirst(t *testing.T) {
	n := mustNormalizer(t, domain.Year)
	// Local new year in UTC+2 is still the previous year in UTC.
	ts := time.Date(2015, time.January, 1, 1, 0, 0, 0, time.FixedZone("EET", 2*3600))
	assert.Equal(t, "2014", n.Format(n.Normalize(ts)))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	for _, g := range domain.Granularities {
		t.Run(string(g), func(t *testing.T) {
			n := mustNormalizer(t, g)
			for _, ts := range sampleTimes() {
				k := n.Normalize(ts)
				label := n.Format(k)
				parsed, err := n.Parse(label)
				require.NoError(t, err, "label %q", label)
				assert.Equal(t, k, parsed)
			}
		})
	}
}

func TestFormatParse_RoundTripOutsideFourDigitYears(t *testing.T) {
	extremes := []time.Time{
		date(10000, time.March, 15),
		date(12345, time.December, 31),
		date(9999, time.December, 31),
		date(0, time.June, 1),
		date(-1, time.February, 10),
	}

	for _, g := range []domain.Granularity{domain.Year, domain.Month, domain.WeekOfYear} {
		t.Run(string(g), func(t *testing.T) {
			n := mustNormalizer(t, g)
			for _, ts := range extremes {
				k := n.Normalize(ts)
				label := n.Format(k)
				parsed, err := n.Parse(label)
				require.NoError(t, err, "label %q", label)
				assert.Equal(t, k, parsed, "label %q", label)
			}
		})
	}
}

func TestFormat_FiveDigitYears(t *testing.T) {
	ts := date(10000, time.March, 15)
	year := mustNormalizer(t, domain.Year)
	month := mustNormalizer(t, domain.Month)

	assert.Equal(t, "10000", year.Format(year.Normalize(ts)))
	assert.Equal(t, "10000-03", month.Format(month.Normalize(ts)))
}

func TestParse_ISOWeekEdges(t *testing.T) {
	n := mustNormalizer(t, domain.WeekOfYear)

	k, err := n.Parse("2015-W53")
	require.NoError(t, err)
	assert.Equal(t, date(2015, time.December, 28), k.Time())

	k, err = n.Parse("2015-W01")
	require.NoError(t, err)
	assert.Equal(t, date(2014, time.December, 29), k.Time())
}

func TestParse_FormatError(t *testing.T) {
	tests := []struct {
		granularity domain.Granularity
		label       string
	}{
		{domain.DayOfWeek, "Funday"},
		{domain.DayOfWeek, "monday"},
		{domain.Month, "2014-13"},
		{domain.Month, "2014-3"},
		{domain.Month, "-03"},
		{domain.Month, "March"},
		{domain.MonthOfYear, "2014-03"},
		{domain.Year, "twenty"},
		{domain.Year, "02014"},
		{domain.WeekOfYear, "2014-W53"},
		{domain.WeekOfYear, "2014-W1"},
		{domain.WeekOfYear, "2014-03"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity)+"/"+tt.label, func(t *testing.T) {
			n := mustNormalizer(t, tt.granularity)
			_, err := n.Parse(tt.label)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.label, fe.Label)
			assert.Equal(t, tt.granularity, fe.Granularity)
		})
	}
}
