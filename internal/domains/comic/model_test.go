package comic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestQuery_Offsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       int
		wantOffset int
	}{
		{"first page", 1, 0},
		{"second page", 2, 10},
		{"fifth page", 5, 40},
		{"zero clamps to first", 0, 0},
		{"negative clamps to first", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := PageRequest{Page: tt.page}.Query()
			assert.Equal(t, tt.wantOffset, q.Offset)
			assert.Equal(t, PageSize, q.Limit)
		})
	}
}

func TestPageRequestQuery_CarriesOrderAndFilters(t *testing.T) {
	t.Parallel()

	q := PageRequest{Page: 2, OrderPrice: OrderDesc, Username: "alice", Title: "bat"}.Query()

	assert.Equal(t, OrderDesc, q.OrderPrice)
	assert.Equal(t, "alice", q.Username)
	assert.Equal(t, "bat", q.Title)
}

func TestParseOrderDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   OrderDirection
		wantOK bool
	}{
		{"", OrderNone, true},
		{"asc", OrderAsc, true},
		{"desc", OrderDesc, true},
		{"ASC", OrderAsc, true},
		{"Desc", OrderDesc, true},
		{"sideways", OrderNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseOrderDirection(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewDate(2011, time.February, 3)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2011-02-03"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDate_UnmarshalRejectsBadFormat(t *testing.T) {
	t.Parallel()

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"02/03/2011"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDate_ScanFromTime(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan(time.Date(1986, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1986-09-01", d.Format("2006-01-02"))

	assert.Error(t, d.Scan(42))
}
