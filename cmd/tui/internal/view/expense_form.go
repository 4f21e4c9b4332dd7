package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// newCategoryOption is the picker value that reveals the free-text input.
const newCategoryOption = "new"

// expenseForm holds the bindings of the add/edit expense form.
type expenseForm struct {
	amount      string
	date        string
	description string
	choice      string
	newName     string
}

func newExpenseForm(today time.Time) *expenseForm {
	return &expenseForm{date: FormatDate(today)}
}

func editExpenseForm(e *ledger.Expense) *expenseForm {
	return &expenseForm{
		amount:      FormatAmount(e.Amount),
		date:        FormatDate(e.Date),
		description: e.Description,
		choice:      e.Category.ID.String(),
	}
}

// categoryOptions lists cats in picker order followed by the new-category entry.
func categoryOptions(cats []*ledger.Category) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(cats)+1)
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Name, c.ID.String()))
	}

	return append(opts, huh.NewOption("+ New category", newCategoryOption))
}

func (f *expenseForm) build(title string, cats []*ledger.Category) *huh.Form {
	if f.choice == "" && len(cats) > 0 {
		f.choice = cats[0].ID.String()
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&f.amount).
				Validate(validateAmount),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(validateDate),
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.description),
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions(cats)...).
				Value(&f.choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("new_category").
				Title("New category").
				Value(&f.newName).
				Validate(func(s string) error {
					_, err := ledger.CleanCategoryName(s)
					return err
				}),
		).WithHideFunc(func() bool { return f.choice != newCategoryOption }),
	).WithWidth(50).WithShowHelp(false)
}

// selection turns the picker state into a category selection.
func (f *expenseForm) selection() (ledger.CategorySelection, error) {
	if f.choice == newCategoryOption {
		return ledger.NewName(f.newName), nil
	}

	id, err := uuid.Parse(f.choice)
	if err != nil {
		return ledger.CategorySelection{}, fmt.Errorf("%w: no category selected", ledger.ErrEmptyCategoryName)
	}

	return ledger.Existing(id), nil
}

type expenseInput struct {
	amount      decimal.Decimal
	date        time.Time
	description string
	category    ledger.CategorySelection
}

func (f *expenseForm) parse() (expenseInput, error) {
	amount, err := ledger.ParseAmount(f.amount)
	if err != nil {
		return expenseInput{}, err
	}

	date, err := ledger.ParseDate(f.date)
	if err != nil {
		return expenseInput{}, err
	}

	sel, err := f.selection()
	if err != nil {
		return expenseInput{}, err
	}

	return expenseInput{amount: amount, date: date, description: f.description, category: sel}, nil
}
