// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolfee_backend/internals/configs"
)

// Locals opsional; kalau di-set, menang atas SCHOOL_TIMEZONE.
const LocSchoolLoc = "school_loc" // *time.Location

const DateLayout = "2006-01-02"

var (
	defaultLocOnce sync.Once
	defaultLoc     *time.Location
)

// Urutan: Locals "school_loc" → configs.SchoolTimezone → Asia/Jakarta → UTC
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	defaultLocOnce.Do(func() {
		defaultLoc = loadLocation(configs.SchoolTimezone, "Asia/Jakarta")
	})
	return defaultLoc
}

func loadLocation(names ...string) *time.Location {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if loc, err := time.LoadLocation(n); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ParseDay: "YYYY-MM-DD" → 00:00 di loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// EndOfDay: detik terakhir hari yang sama (inklusif).
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDayRange: date_from / date_to opsional; field berisi nama param yang salah format.
func ParseDayRange(from, to string, loc *time.Location) (start, end *time.Time, field string, err error) {
	if s := strings.TrimSpace(from); s != "" {
		t, e := ParseDay(s, loc)
		if e != nil {
			return nil, nil, "date_from", e
		}
		start = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, e := ParseDay(s, loc)
		if e != nil {
			return nil, nil, "date_to", e
		}
		t = EndOfDay(t)
		end = &t
	}
	return start, end, "", nil
}
