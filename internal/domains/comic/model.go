// Package comic defines the comics collection domain: the record model, the
// list-query specification, request DTOs, and the repository/service
// contracts implemented in the sub-packages.
package comic

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// PageSize is the fixed number of records per list page. Callers cannot
// change it.
const PageSize = 10

// Comic is the collection record. Username is set at creation from the
// requester's identity and never changes afterwards; it is the sole basis
// for ownership decisions.
type Comic struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Title         string    `json:"title"`
	IssueNumber   string    `json:"issue_number"`
	MainCharacter string    `json:"main_character"`
	Genre         string    `json:"genre"`
	CoverYear     Date      `json:"cover_year"`
	Publisher     string    `json:"publisher"`
	Grade         float64   `json:"grade"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderDirection orders list results by price. The empty value leaves the
// store-default order.
type OrderDirection string

const (
	OrderNone OrderDirection = ""
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// ParseOrderDirection maps the order[price] query value. ok is false for
// anything other than asc/desc/empty.
func ParseOrderDirection(s string) (OrderDirection, bool) {
	switch strings.ToLower(s) {
	case "":
		return OrderNone, true
	case "asc":
		return OrderAsc, true
	case "desc":
		return OrderDesc, true
	}
	return OrderNone, false
}

// PageRequest captures the list query parameters as parsed from the request.
type PageRequest struct {
	Page       int
	OrderPrice OrderDirection
	Username   string // exact owner filter, empty = all
	Title      string // substring title filter, empty = all
}

// ListQuery is the bounded, deterministic fetch specification consumed by
// the repository. It never performs the fetch itself.
type ListQuery struct {
	Limit      int
	Offset     int
	OrderPrice OrderDirection
	Username   string
	Title      string
}

// Query translates a PageRequest into a ListQuery. Non-positive pages are
// clamped to page 1 so a negative offset never reaches the store.
func (p PageRequest) Query() ListQuery {
	page := p.Page
	if page < 1 {
		page = 1
	}

	return ListQuery{
		Limit:      PageSize,
		Offset:     (page - 1) * PageSize,
		OrderPrice: p.OrderPrice,
		Username:   p.Username,
		Title:      p.Title,
	}
}

const dateLayout = "2006-01-02"

// Date is a calendar date marshalled as YYYY-MM-DD, matching the cover_year
// wire format and the DATE column type.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// Scan implements sql.Scanner so pgx can read DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Date: %w", v, err)
		}
		d.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

// Value implements driver.Valuer for DATE parameters.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
