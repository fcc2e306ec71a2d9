package services

import (
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// defaultPeriod fills in missing period bounds: an unset end defaults to
// today, an unset start to the first day of the end's month, and a reversed
// range is swapped rather than rejected.
func defaultPeriod(from, to time.Time) domain.ReportPeriod {
	if to.IsZero() {
		to = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	if from.After(to) {
		from, to = to, from
	}
	return domain.ReportPeriod{From: from, To: to}
}

// pageWindow clamps paging inputs and returns the slice bounds for a row set
// of the given length.
func pageWindow(total, page, pageSize int) (start, end int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// truncateLabel caps disclosure labels the way list renderers expect.
func truncateLabel(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
