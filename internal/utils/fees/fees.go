package fees

import (
	"regexp"
	"strings"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// DefaultRefineWindow bounds the linear refinement around the binary search
// result when solving a base from a gross amount, in minor currency units.
const DefaultRefineWindow int64 = 10_000

// effectiveValues normalises a rule's flat/percent components per its type,
// so legacy rules that stored a single value still compute.
func effectiveValues(rule domain.FeeRule) (flatFee, percentBps int64) {
	flatFee = max64(0, rule.FlatFee)
	percentBps = max64(0, rule.PercentBps)
	switch rule.FeeType {
	case domain.FeeFlat:
		percentBps = 0
	case domain.FeePercent:
		flatFee = 0
	case domain.FeeHybrid:
		// Both components as stored.
	default:
		flatFee, percentBps = 0, 0
	}
	return flatFee, percentBps
}

// AmountForBase computes the fee for a base amount under a rule:
// percent fee = round(base * bps / 10000) rounding exact halves up, combined
// per the rule type, then capped when a cap is set. The second result reports
// whether the cap fired.
func AmountForBase(base int64, rule domain.FeeRule) (int64, bool) {
	base = max64(0, base)
	if rule.FeeType == domain.FeeFree {
		return 0, false
	}
	flatFee, percentBps := effectiveValues(rule)
	percentFee := (base*percentBps + 5_000) / 10_000
	var fee int64
	switch rule.FeeType {
	case domain.FeeFlat:
		fee = flatFee
	case domain.FeePercent:
		fee = percentFee
	default:
		fee = flatFee + percentFee
	}
	capApplied := false
	if rule.MaxFee != nil {
		maxFee := max64(0, *rule.MaxFee)
		if fee > maxFee {
			fee = maxFee
			capApplied = true
		}
	}
	return max64(0, fee), capApplied
}

func grossForBase(base int64, rule domain.FeeRule) int64 {
	fee, _ := AmountForBase(base, rule)
	return base + fee
}

// SolveBaseFromGross finds the base whose base+fee best reconstructs the
// gross amount. Fee is monotonic non-decreasing in base for all supported
// shapes, so a binary search over [0, gross] finds the largest base whose
// base+fee stays within gross; a bounded linear scan then refines around it to handle
// rounding steps and cap plateaus. Under a cap the reconstruction is an
// approximation, not an exact algebraic inverse.
func SolveBaseFromGross(gross int64, rule domain.FeeRule, window int64) int64 {
	gross = max64(0, gross)
	if gross == 0 || rule.FeeType == domain.FeeFree {
		return gross
	}
	if window <= 0 {
		window = DefaultRefineWindow
	}

	lo, hi := int64(0), gross
	var best int64
	for lo <= hi {
		mid := lo + (hi-lo)/2
		total := grossForBase(mid, rule)
		if total == gross {
			return mid
		}
		if total < gross {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	start := max64(0, best-window)
	end := min64(gross, best+window)
	nearest := best
	nearestDelta := abs64(grossForBase(best, rule) - gross)
	for base := start; base <= end; base++ {
		delta := abs64(grossForBase(base, rule) - gross)
		if delta < nearestDelta {
			nearest = base
			nearestDelta = delta
			if delta == 0 {
				return base
			}
		}
	}
	return nearest
}

// CalculateTotalWithFee runs the fee math in either direction. In net mode
// the amount is the base and the gross is base+fee. In gross mode the base
// is solved from the gross; if the reconstructed total still differs from
// the requested gross, the residual is absorbed into the fee so that
// base + fee == gross holds exactly for downstream reconciliation.
func CalculateTotalWithFee(amount int64, rule domain.FeeRule, mode domain.AmountMode, window int64) domain.FeeComputation {
	if mode != domain.AmountModeGross {
		mode = domain.AmountModeNet
	}
	input := max64(0, amount)

	if mode == domain.AmountModeGross {
		gross := input
		base := SolveBaseFromGross(gross, rule, window)
		fee, capApplied := AmountForBase(base, rule)
		if exact := base + fee; exact != gross {
			fee = max64(0, fee+(gross-exact))
		}
		return domain.FeeComputation{
			AmountMode:  domain.AmountModeGross,
			InputAmount: input,
			BaseAmount:  base,
			FeeAmount:   fee,
			GrossAmount: gross,
			NetAmount:   base,
			CapApplied:  capApplied,
		}
	}

	base := input
	fee, capApplied := AmountForBase(base, rule)
	return domain.FeeComputation{
		AmountMode:  domain.AmountModeNet,
		InputAmount: input,
		BaseAmount:  base,
		FeeAmount:   fee,
		GrossAmount: base + fee,
		NetAmount:   base,
		CapApplied:  capApplied,
	}
}

var methodKeyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// MethodKey slugs a payment method display name into its stable lookup key,
// e.g. "Card-to-Card" becomes "card_to_card".
func MethodKey(name string) string {
	raw := strings.ToLower(strings.TrimSpace(name))
	raw = strings.ReplaceAll(raw, "&", " and ")
	raw = methodKeyPattern.ReplaceAllString(raw, "_")
	raw = strings.Trim(raw, "_")
	if raw == "" {
		return "method"
	}
	return raw
}

// BuildFeeLines returns the balanced pair of journal lines a caller appends
// when posting a fee: a debit on the fee expense account and a matching
// credit on the bank account. A non-positive fee yields no lines.
func BuildFeeLines(fee int64, methodName, bankName, feeExpenseCode, bankCode string) []domain.TransactionLine {
	if fee <= 0 {
		return nil
	}
	note := "Transaction fee - " + strings.TrimSpace(methodName) + " via " + strings.TrimSpace(bankName)
	return []domain.TransactionLine{
		{AccountCode: feeExpenseCode, Debit: fee, Note: note},
		{AccountCode: bankCode, Credit: fee, Note: "Bank fee deduction - " + strings.TrimSpace(bankName)},
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
