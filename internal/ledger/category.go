package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

const maxCategoryName = 100

// Category is a named tag grouping expenses. Names are unique under
// case-insensitive, whitespace-trimmed comparison.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NormalizeName returns the comparison key for a category name.
// A Caser is stateful, so each call gets its own.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Equal reports whether both categories carry the same normalized name.
func (c Category) Equal(other Category) bool {
	return NormalizeName(c.Name) == NormalizeName(other.Name)
}

func (c Category) String() string {
	return c.Name
}

// CleanCategoryName trims name and checks it can be stored.
func CleanCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategoryName
	}

	if err := validateLength("category name", name, maxCategoryName); err != nil {
		return "", err
	}

	return name, nil
}

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionExisting
	selectionNewName
)

// CategorySelection is what a form hands over for an expense category:
// either a category picked from the list or free text typed by the user.
type CategorySelection struct {
	kind selectionKind
	id   uuid.UUID
	name string
}

// Existing selects an already persisted category.
func Existing(id uuid.UUID) CategorySelection {
	return CategorySelection{kind: selectionExisting, id: id}
}

// NewName selects a category by typed name; it may or may not exist yet.
func NewName(name string) CategorySelection {
	return CategorySelection{kind: selectionNewName, name: name}
}

func (s CategorySelection) IsZero() bool     { return s.kind == selectionNone }
func (s CategorySelection) IsExisting() bool { return s.kind == selectionExisting }
func (s CategorySelection) IsNewName() bool  { return s.kind == selectionNewName }
func (s CategorySelection) ID() uuid.UUID    { return s.id }
func (s CategorySelection) Name() string     { return s.name }
