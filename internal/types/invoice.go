// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// InvoiceRequest is the payload shape selected by the "invoice" discriminator.
type InvoiceRequest struct {
	Invoice InvoiceBody `json:"invoice"`
}

// InvoiceBody carries the invoice metadata, parties and line items.
// Numeric fields stay raw until composition so that a missing or
// non-numeric value can be reported with its exact field path.
type InvoiceBody struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	IssueDate     string          `json:"issueDate,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	From          Party           `json:"from"`
	To            Party           `json:"to"`
	Items         []InvoiceItem   `json:"items"`
	TaxRate       json.RawMessage `json:"taxRate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Party is an issuer or recipient on an invoice.
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// InvoiceItem is one raw line item as received.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    json.RawMessage `json:"quantity"`
	UnitPrice   json.RawMessage `json:"unitPrice"`
}

// LineItem is a validated line item with amounts in minor units (cents).
type LineItem struct {
	Description    string
	Quantity       string // normalized decimal text, e.g. "2" or "1.5"
	UnitPriceCents int64
	LineTotalCents int64
}

// InvoiceTotals holds the computed totals in minor units.
type InvoiceTotals struct {
	SubtotalCents   int64
	TaxRate         string // normalized decimal text, empty when no tax applies
	TaxCents        int64
	GrandTotalCents int64
}

// DefaultCurrency applies when an invoice names none.
const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatCents renders an amount in minor units with grouping, e.g. 123456 USD -> "$1,234.56".
// Currencies without a known symbol are suffixed with their code.
func FormatCents(cents int64, currency string) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	amount := fmt.Sprintf("%s.%02d", sb.String(), cents%100)

	if currency == "" {
		currency = DefaultCurrency
	}
	sign := ""
	if neg {
		sign = "-"
	}
	if sym, ok := currencySymbols[currency]; ok {
		return sign + sym + amount
	}
	return sign + amount + " " + currency
}
