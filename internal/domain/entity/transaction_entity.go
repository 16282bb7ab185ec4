package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

func (t TransactionType) Valid() bool { return t == Debit || t == Credit }

// Category is the fixed transaction category enumeration.
type Category string

const (
	CategoryGroceries      Category = "Groceries"
	CategoryJunkFood       Category = "Junk Food (Non-Essential)"
	CategoryClothing       Category = "Clothing"
	CategoryStationery     Category = "Stationery"
	CategoryMedicine       Category = "Medicine"
	CategoryPersonalCare   Category = "Personal Care"
	CategoryHousehold      Category = "Household Items"
	CategoryElectronics    Category = "Electronics"
	CategoryEntertainment  Category = "Entertainment"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryEducation      Category = "Education"
	CategoryDiningOut      Category = "Dining Out"
	CategoryFeesTaxes      Category = "Fees/Taxes"
	CategorySalary         Category = "Salary"
	CategoryRefund         Category = "Refund"
	CategoryBusiness       Category = "Business"
	CategoryOther          Category = "Other"
)

var Categories = []Category{
	CategoryGroceries, CategoryJunkFood, CategoryClothing, CategoryStationery,
	CategoryMedicine, CategoryPersonalCare, CategoryHousehold, CategoryElectronics,
	CategoryEntertainment, CategoryTransportation, CategoryUtilities, CategoryEducation,
	CategoryDiningOut, CategoryFeesTaxes, CategorySalary, CategoryRefund,
	CategoryBusiness, CategoryOther,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceManual   Source = "manual"
	SourceBillscan Source = "billscan"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// LineItem is a single scanned bill entry.
type LineItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CategoryBreakdown groups the line items of a billscan transaction.
type CategoryBreakdown struct {
	Category       Category        `json:"category"`
	IsNonEssential bool            `json:"is_non_essential"`
	CategoryTotal  decimal.Decimal `json:"category_total"`
	Items          []LineItem      `json:"items"`
}

type Transaction struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	User        *UserRef            `json:"user,omitempty"`
	Type        TransactionType     `json:"type"`
	Category    Category            `json:"category"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
	Date        time.Time           `json:"date"`
	Source      Source              `json:"source"`
	Categories  []CategoryBreakdown `json:"categories,omitempty"`
	Status      Status              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

func (t Transaction) OwnerID() string { return t.UserID }
func (t Transaction) Owner() *UserRef { return t.User }
func (t Transaction) Value() decimal.Decimal { return t.Amount }
func (t Transaction) CreatedTime() time.Time { return t.CreatedAt }
func (t Transaction) RecordID() string { return t.ID }
