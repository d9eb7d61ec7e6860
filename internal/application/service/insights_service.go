package service

import (
	"sort"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
)

// StatusLevel classifies how far through the monthly budget a user is
type StatusLevel string

const (
	StatusGood    StatusLevel = "good"
	StatusWarning StatusLevel = "warning"
	StatusDanger  StatusLevel = "danger"
)

var (
	warningThreshold = decimal.NewFromInt(80)
	dangerThreshold  = decimal.NewFromInt(90)
	hundred          = decimal.NewFromInt(100)
)

// BudgetStatus is the spent-percentage alert shown on the dashboard
type BudgetStatus struct {
	Level        StatusLevel     `json:"level"`
	Message      string          `json:"message"`
	SpentPercent decimal.Decimal `json:"spentPercent"`
}

// CategoryTotal is one slice of the expense breakdown
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentMethodTotal is the expense total per payment method
type PaymentMethodTotal struct {
	Method entity.PaymentMethod `json:"method"`
	Total  decimal.Decimal      `json:"total"`
}

// SavingsProgress reports progress towards the savings goal
type SavingsProgress struct {
	CurrentSavings decimal.Decimal `json:"currentSavings"`
	SavingsGoal    decimal.Decimal `json:"savingsGoal"`
	Remaining      decimal.Decimal `json:"remaining"`
	Percent        decimal.Decimal `json:"percent"`
}

// Challenge is one micro-saving challenge with progress against the user's
// current savings
type Challenge struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Target      decimal.Decimal `json:"target"`
	Current     decimal.Decimal `json:"current"`
	Difficulty  string          `json:"difficulty"`
	Completed   bool            `json:"completed"`
}

// Tip is one piece of financial advice
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

// TipCategory groups tips by theme
type TipCategory struct {
	Category string `json:"category"`
	Tips     []Tip  `json:"tips"`
}

type challengeDef struct {
	title       string
	description string
	target      int64
	difficulty  string
}

// Fixed micro-saving challenge catalog
var challengeCatalog = []challengeDef{
	{"₹10 Daily Challenge", "Save ₹10 every day for 30 days", 300, "Easy"},
	{"Skip One Treat", "Skip one expensive snack/drink daily", 500, "Medium"},
	{"Transport Saver", "Walk/cycle instead of auto for short distances", 200, "Easy"},
	{"Weekend Warrior", "Limit weekend entertainment spending", 800, "Hard"},
}

// Static tips catalog, grouped by theme
var tipsCatalog = []TipCategory{
	{
		Category: "Budgeting",
		Tips: []Tip{
			{"Track Every Expense", "Record even small purchases like tea, snacks, or auto rides. Small amounts add up quickly!", "Easy"},
			{"Use the Envelope Method", "Allocate fixed amounts for different categories: food, transport, entertainment, etc.", "Medium"},
			{"Plan Weekly Budgets", "Instead of monthly budgets, plan weekly. It's easier to track and adjust.", "Easy"},
		},
	},
	{
		Category: "Smart Spending",
		Tips: []Tip{
			{"Compare Prices Online", "Before buying anything above ₹200, check prices on different platforms.", "Easy"},
			{"Use Student Discounts", "Many brands offer student discounts. Always ask or check online for student deals.", "Easy"},
			{"Buy Generic Brands", "For basic items like stationery, medicines, choose generic brands to save 30-50%.", "Easy"},
		},
	},
	{
		Category: "Saving Strategies",
		Tips: []Tip{
			{"Save First, Spend Later", "As soon as you get money, save 20% immediately. Spend from the remaining 80%.", "Medium"},
			{"Use Loose Change Jar", "Put all coins and small notes in a jar. You'll be surprised how much you save!", "Easy"},
			{"Automate Savings", "Set up automatic transfers to savings account right after getting pocket money.", "Medium"},
		},
	},
	{
		Category: "Digital Safety",
		Tips: []Tip{
			{"Secure Your UPI", "Never share UPI PIN. Always verify merchant details before making payments.", "Easy"},
			{"Check Bank Statements", "Review your bank statements weekly to catch any unauthorized transactions.", "Easy"},
			{"Use Trusted Apps Only", "Download financial apps only from official app stores. Avoid third-party sources.", "Easy"},
		},
	},
}

// InsightsService derives read-only dashboard figures from snapshots and
// ledgers. It never mutates core state.
type InsightsService struct {
	logger logger.Logger
}

// NewInsightsService creates a new insights service
func NewInsightsService(log logger.Logger) *InsightsService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &InsightsService{logger: log}
}

// Status classifies budget usage: 90% spent or more is danger, 80% or more
// is a warning, anything below is on track. A zero budget counts as 0%.
func (s *InsightsService) Status(snapshot entity.BudgetSnapshot) BudgetStatus {
	spentPercent := decimal.Zero
	if snapshot.MonthlyBudget.IsPositive() {
		spentPercent = snapshot.TotalExpenses.Div(snapshot.MonthlyBudget).Mul(hundred)
	}

	switch {
	case spentPercent.GreaterThanOrEqual(dangerThreshold):
		return BudgetStatus{Level: StatusDanger, Message: "Budget Exceeded!", SpentPercent: spentPercent}
	case spentPercent.GreaterThanOrEqual(warningThreshold):
		return BudgetStatus{Level: StatusWarning, Message: "Budget Alert!", SpentPercent: spentPercent}
	default:
		return BudgetStatus{Level: StatusGood, Message: "On Track", SpentPercent: spentPercent}
	}
}

// ExpenseBreakdown sums expenses per category, largest first
func (s *InsightsService) ExpenseBreakdown(ledger []entity.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range ledger {
		if tx.Type != entity.TypeExpense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})

	return out
}

// PaymentBreakdown sums expenses per payment method. Both methods are always
// present in the result, zero when unused.
func (s *InsightsService) PaymentBreakdown(ledger []entity.Transaction) []PaymentMethodTotal {
	totals := map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentUPI:  decimal.Zero,
		entity.PaymentCash: decimal.Zero,
	}

	for _, tx := range ledger {
		if tx.Type != entity.TypeExpense {
			continue
		}
		totals[tx.PaymentMethod] = totals[tx.PaymentMethod].Add(tx.Amount)
	}

	return []PaymentMethodTotal{
		{Method: entity.PaymentUPI, Total: totals[entity.PaymentUPI]},
		{Method: entity.PaymentCash, Total: totals[entity.PaymentCash]},
	}
}

// Progress reports how far current savings are towards the goal. The percent
// is not clamped; display clamping is the presentation layer's concern.
func (s *InsightsService) Progress(snapshot entity.BudgetSnapshot) SavingsProgress {
	percent := decimal.Zero
	if snapshot.SavingsGoal.IsPositive() {
		percent = snapshot.CurrentSavings.Div(snapshot.SavingsGoal).Mul(hundred)
	}

	remaining := snapshot.SavingsGoal.Sub(snapshot.CurrentSavings)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return SavingsProgress{
		CurrentSavings: snapshot.CurrentSavings,
		SavingsGoal:    snapshot.SavingsGoal,
		Remaining:      remaining,
		Percent:        percent,
	}
}

// Challenges returns the micro-saving catalog with per-challenge progress
// derived from current savings
func (s *InsightsService) Challenges(currentSavings decimal.Decimal) []Challenge {
	out := make([]Challenge, 0, len(challengeCatalog))

	for _, def := range challengeCatalog {
		target := decimal.NewFromInt(def.target)

		current := currentSavings
		if current.GreaterThan(target) {
			current = target
		}
		if current.IsNegative() {
			current = decimal.Zero
		}

		out = append(out, Challenge{
			Title:       def.title,
			Description: def.description,
			Target:      target,
			Current:     current,
			Difficulty:  def.difficulty,
			Completed:   current.GreaterThanOrEqual(target),
		})
	}

	return out
}

// Tips returns the static financial tips catalog
func (s *InsightsService) Tips() []TipCategory {
	return tipsCatalog
}
