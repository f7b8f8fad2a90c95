package pricing

import (
	"sort"
	"strings"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MinCopies = 1
	MaxCopies = 50

	places = 2
)

var hundred = decimal.NewFromInt(100)

type Threshold struct {
	MinCopies  int
	Multiplier decimal.Decimal
}

type Config struct {
	Prices           map[string]decimal.Decimal
	DefaultUnitPrice decimal.Decimal
	Thresholds       []Threshold
}

func DefaultConfig() Config {
	return Config{
		Prices: map[string]decimal.Decimal{
			"10x15":      decimal.NewFromInt(20),
			"13x18":      decimal.NewFromInt(30),
			"15x21":      decimal.NewFromInt(40),
			"21x30 (A4)": decimal.NewFromInt(50),
			"30x40":      decimal.NewFromInt(60),
			"30x45":      decimal.NewFromInt(70),
		},
		DefaultUnitPrice: decimal.NewFromInt(20),
		Thresholds: []Threshold{
			{MinCopies: 50, Multiplier: decimal.RequireFromString("0.95")},
			{MinCopies: 100, Multiplier: decimal.RequireFromString("0.90")},
		},
	}
}

type Breakdown struct {
	Copies            int
	RawTotal          decimal.Decimal
	AfterThreshold    decimal.Decimal
	ThresholdDiscount decimal.Decimal
}

type Format struct {
	Name  string
	Price decimal.Decimal
}

// Engine prices line items. It holds no state besides its tables.
type Engine struct {
	prices           map[string]decimal.Decimal
	defaultUnitPrice decimal.Decimal
	thresholds       []Threshold
}

func New(cfg Config) *Engine {
	thresholds := make([]Threshold, len(cfg.Thresholds))
	copy(thresholds, cfg.Thresholds)
	sort.Slice(thresholds, func(i, j int) bool {
		return thresholds[i].MinCopies < thresholds[j].MinCopies
	})

	prices := make(map[string]decimal.Decimal, len(cfg.Prices))
	for name, price := range cfg.Prices {
		prices[name] = price
	}

	return &Engine{
		prices:           prices,
		defaultUnitPrice: cfg.DefaultUnitPrice,
		thresholds:       thresholds,
	}
}

// UnitPrice returns the table price for format, or the default unit price
// with ok=false when the format is not in the table.
func (e *Engine) UnitPrice(format string) (decimal.Decimal, bool) {
	price, ok := e.prices[format]
	if !ok {
		return e.defaultUnitPrice, false
	}
	return price, true
}

func (e *Engine) Formats() []Format {
	formats := make([]Format, 0, len(e.prices))
	for name, price := range e.prices {
		formats = append(formats, Format{Name: name, Price: price})
	}
	sort.Slice(formats, func(i, j int) bool {
		if formats[i].Price.Equal(formats[j].Price) {
			return formats[i].Name < formats[j].Name
		}
		return formats[i].Price.LessThan(formats[j].Price)
	})
	return formats
}

// Price totals items and applies the volume multiplier. It accepts any
// positive copy count; the per-photo bound is checked by ValidateItems.
func (e *Engine) Price(items []domain.LineItem) (Breakdown, error) {
	if len(items) == 0 {
		return Breakdown{}, domain.NewValidationError("items", "at least one photo is required")
	}
	for _, item := range items {
		if item.Copies < MinCopies {
			return Breakdown{}, domain.NewValidationError("copies", "must be positive")
		}
	}

	raw := decimal.Zero
	copies := 0
	for _, item := range items {
		unit, ok := e.UnitPrice(item.Format)
		if !ok {
			zap.L().Debug("unknown format, using default unit price",
				zap.String("format", item.Format), zap.String("price", unit.String()))
		}
		raw = raw.Add(unit.Mul(decimal.NewFromInt(int64(item.Copies)))).Round(places)
		copies += item.Copies
	}

	multiplier := decimal.NewFromInt(1)
	for _, t := range e.thresholds {
		if copies >= t.MinCopies {
			multiplier = t.Multiplier
		}
	}

	after := raw.Mul(multiplier).Round(places)
	return Breakdown{
		Copies:            copies,
		RawTotal:          raw,
		AfterThreshold:    after,
		ThresholdDiscount: raw.Sub(after).Round(places),
	}, nil
}

func ValidateItems(items []domain.LineItem) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "at least one photo is required")
	}
	for _, item := range items {
		if strings.TrimSpace(item.Format) == "" {
			return domain.NewValidationError("format", "format is required")
		}
		if err := ValidateCopies(item.Copies); err != nil {
			return err
		}
	}
	return nil
}

func ValidateCopies(copies int) error {
	if copies < MinCopies || copies > MaxCopies {
		return domain.NewValidationError("copies", "must be between 1 and 50")
	}
	return nil
}

// Percent takes percent off amount. Both results are rounded to cents.
func Percent(amount decimal.Decimal, percent int) (decimal.Decimal, decimal.Decimal) {
	discount := amount.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(places)
	return amount.Sub(discount).Round(places), discount
}

// Sum adds discount amounts, rounding to cents.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total.Round(places)
}
