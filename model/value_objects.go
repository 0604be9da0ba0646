// Package model provides value objects for API parameter validation.
package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stsysd/kusa/activity"
)

// Date represents a calendar date value object.
type Date struct {
	value string
}

// NewDate creates a new date value object. An empty string means today in
// the local time zone. RFC3339 timestamps are reduced to their calendar date
// in their own offset.
func NewDate(dateStr string) (*Date, error) {
	if dateStr == "" {
		return &Date{value: time.Now().Format(activity.DateFormat)}, nil
	}

	t, err := parseDateTime(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
	}
	return &Date{value: t.Format(activity.DateFormat)}, nil
}

// String returns the date as YYYY-MM-DD.
func (d *Date) String() string {
	return d.value
}

// DateRange represents an inclusive range of calendar dates.
type DateRange struct {
	from string
	to   string
}

// NewDateRange creates a new date range value object. Empty parameters take
// the given defaults.
func NewDateRange(fromStr, toStr, defaultFrom, defaultTo string) (*DateRange, error) {
	from := defaultFrom
	if fromStr != "" {
		t, err := parseDateTime(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
		from = t.Format(activity.DateFormat)
	}

	to := defaultTo
	if toStr != "" {
		t, err := parseDateTime(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
		to = t.Format(activity.DateFormat)
	}

	// ISO dates compare correctly as strings
	if from > to {
		return nil, fmt.Errorf("from must not be after to")
	}

	return &DateRange{from: from, to: to}, nil
}

// From returns the first date of the range.
func (d *DateRange) From() string {
	return d.from
}

// To returns the last date of the range.
func (d *DateRange) To() string {
	return d.to
}

// parseDateTime parses date string with flexible format support.
func parseDateTime(dateStr string) (time.Time, error) {
	// Try RFC3339 format first (with time)
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	// Try date-only format (YYYY-MM-DD)
	if t, err := time.Parse(activity.DateFormat, dateStr); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date")
}

// RecordID represents a record ID value object.
type RecordID struct {
	value uuid.UUID
}

// NewRecordID creates a new record ID value object.
func NewRecordID(idStr string) (*RecordID, error) {
	if idStr == "" {
		return nil, fmt.Errorf("record ID is required")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format")
	}

	return &RecordID{value: id}, nil
}

// UUID returns the UUID value.
func (r *RecordID) UUID() uuid.UUID {
	return r.value
}

// Count represents a positive contribution count value object.
type Count struct {
	value int
}

// NewCount creates a new count value object.
func NewCount(val *int) (*Count, error) {
	if val == nil {
		// Use default value 1 for nil
		return &Count{value: 1}, nil
	}

	if *val < 1 {
		return nil, fmt.Errorf("count must be a positive integer greater than 0")
	}

	return &Count{value: *val}, nil
}

// Int returns the integer value.
func (c *Count) Int() int {
	return c.value
}

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Pagination represents pagination parameters value object.
type Pagination struct {
	limit  int
	offset int
}

// NewPagination creates a new pagination value object.
func NewPagination(limitStr, offsetStr string) (*Pagination, error) {
	limit := defaultLimit
	offset := 0

	// Process limit parameter
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid limit parameter: must be a positive integer")
		}
		if parsedLimit <= 0 {
			return nil, fmt.Errorf("limit must be greater than 0")
		}
		if parsedLimit > maxLimit {
			parsedLimit = maxLimit
		}
		limit = parsedLimit
	}

	// Process offset parameter
	if offsetStr != "" {
		parsedOffset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
		}
		if parsedOffset < 0 {
			return nil, fmt.Errorf("offset must be non-negative")
		}
		offset = parsedOffset
	}

	return &Pagination{limit: limit, offset: offset}, nil
}

// Limit returns the limit value.
func (p *Pagination) Limit() int {
	return p.limit
}

// Offset returns the offset value.
func (p *Pagination) Offset() int {
	return p.offset
}
