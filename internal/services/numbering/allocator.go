package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/repository"
)

// Kind is the document family a number is minted for. Invoices and orders
// share the scheme but draw from disjoint counter scopes.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindOrder   Kind = "order"
)

var kindLetters = map[Kind]byte{
	KindInvoice: 'I',
	KindOrder:   'O',
}

// sequenceWidth is the base-36 width of the sequence field. With the five
// fixed positions in front this yields the 10-character code.
const sequenceWidth = 5

// maxSequence is 36^sequenceWidth - 1; a scope that exceeds it fails loudly
// instead of silently wrapping.
const maxSequence = int64(60466175)

// Allocator mints fiscal-year-scoped document numbers. Each call costs exactly
// one atomic counter increment; numbers burned by a later persistence failure
// are never reclaimed, so sequences may have gaps but never duplicates.
type Allocator struct {
	counters *repository.CounterRepository
	logger   *logger.Logger
}

func NewAllocator(counters *repository.CounterRepository, log *logger.Logger) *Allocator {
	return &Allocator{counters: counters, logger: log}
}

// FiscalYear returns the fiscal year containing when. Indian fiscal years run
// April 1 through March 31; start is the calendar year of April 1.
func FiscalYear(when time.Time) (start, end int) {
	start = when.Year()
	if when.Month() < time.April {
		start--
	}
	return start, start + 1
}

// Scope builds the counter scope string for a kind and date, e.g.
// "invoice_FY2024_25".
func Scope(kind Kind, when time.Time) string {
	fyStart, fyEnd := FiscalYear(when)
	return fmt.Sprintf("%s_FY%d_%02d", kind, fyStart, fyEnd%100)
}

// Allocate mints the next document number for the given kind and issuance
// date. The returned code is exactly 10 ASCII characters:
//
//	[kind letter][fy-end digit][fy-start digit][month b36][day b36][sequence b36, 5 chars]
//
// The fiscal-year digits are the last digit of each year only; codes are
// unambiguous within a decade, which is an accepted trade-off of the scheme.
func (a *Allocator) Allocate(ctx context.Context, kind Kind, when time.Time) (string, int64, error) {
	letter, ok := kindLetters[kind]
	if !ok {
		return "", 0, apperrors.Newf(apperrors.ErrValidation, "unknown document kind %q", kind)
	}

	fyStart, fyEnd := FiscalYear(when)
	scope := Scope(kind, when)
	prefix := fmt.Sprintf("%c%d%d", letter, fyEnd%10, fyStart%10)

	seq, err := a.counters.Increment(ctx, scope, prefix)
	if err != nil {
		return "", 0, err
	}
	if seq > maxSequence {
		return "", 0, apperrors.Newf(apperrors.ErrAllocation, "sequence space exhausted for scope %s", scope)
	}

	code := fmt.Sprintf("%s%s%s%s",
		prefix,
		base36(int64(when.Month()), 1),
		base36(int64(when.Day()), 1),
		base36(seq, sequenceWidth),
	)

	a.logger.Infow("allocated document number",
		"kind", kind,
		"scope", scope,
		"sequence", seq,
		"code", code)

	return code, seq, nil
}

// base36 encodes n in uppercase base 36, left-padded with zeros to width.
func base36(n int64, width int) string {
	s := strings.ToUpper(strconv.FormatInt(n, 36))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
