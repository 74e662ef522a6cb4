// Package compose turns a validated document request into an ordered block sequence.
package compose

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/types"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

var partyValidator = newPartyValidator()

func newPartyValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Invoice composes an invoice: a header, one block per line item, a totals block,
// and a notes block when notes are present. Every numeric field is checked before
// any block is built; on failure no blocks are returned.
func Invoice(body *types.InvoiceBody) ([]types.RenderedBlock, error) {
	if body == nil {
		return nil, errs.NewValidationError("invoice", "is required")
	}

	verr := &errs.ValidationError{}

	currency := strings.ToUpper(strings.TrimSpace(body.Currency))
	if currency == "" {
		currency = types.DefaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		verr.Add("invoice.currency", "must be a three-letter currency code")
	}
	validateParty(verr, "invoice.from", body.From)
	validateParty(verr, "invoice.to", body.To)

	items := make([]types.LineItem, 0, len(body.Items))
	var subtotal int64
	for i, raw := range body.Items {
		field := fmt.Sprintf("invoice.items[%d]", i)
		item, ok := lineItem(verr, field, raw)
		if !ok {
			continue
		}
		subtotal += item.LineTotalCents
		items = append(items, item)
	}

	totals := types.InvoiceTotals{SubtotalCents: subtotal}
	if len(strings.TrimSpace(string(body.TaxRate))) > 0 && string(body.TaxRate) != "null" {
		rate, err := parseAmount(body.TaxRate)
		if err != nil {
			verr.Add("invoice.taxRate", err.Error())
		} else {
			tax, err := roundHalfUp(new(big.Rat).Mul(new(big.Rat).SetInt64(subtotal), rate))
			if err != nil {
				verr.Add("invoice.taxRate", err.Error())
			}
			totals.TaxRate = formatDecimal(rate)
			totals.TaxCents = tax
		}
	}
	totals.GrandTotalCents = totals.SubtotalCents + totals.TaxCents

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	blocks := make([]types.RenderedBlock, 0, len(items)+3)
	blocks = append(blocks, types.RenderedBlock{
		Kind:  types.BlockInvoiceHeader,
		Title: "Invoice",
		Header: &types.InvoiceHeader{
			Number:    strings.TrimSpace(body.InvoiceNumber),
			IssueDate: body.IssueDate,
			DueDate:   body.DueDate,
			From:      body.From,
			To:        body.To,
		},
		Currency: currency,
	})
	for i := range items {
		blocks = append(blocks, types.RenderedBlock{
			Kind:     types.BlockLineItem,
			Item:     &items[i],
			Currency: currency,
		})
	}
	blocks = append(blocks, types.RenderedBlock{
		Kind:     types.BlockTotals,
		Totals:   &totals,
		Currency: currency,
	})
	if strings.TrimSpace(body.Notes) != "" {
		blocks = append(blocks, types.RenderedBlock{
			Kind:  types.BlockNotes,
			Title: "Notes",
			Body:  body.Notes,
		})
	}
	return number(blocks), nil
}

func lineItem(verr *errs.ValidationError, field string, raw types.InvoiceItem) (types.LineItem, bool) {
	qty, qtyErr := parseAmount(raw.Quantity)
	if qtyErr != nil {
		verr.Add(field+".quantity", qtyErr.Error())
	}
	price, priceErr := parseAmount(raw.UnitPrice)
	if priceErr != nil {
		verr.Add(field+".unitPrice", priceErr.Error())
	}
	if qtyErr != nil || priceErr != nil {
		return types.LineItem{}, false
	}

	unitCents, err := toCents(price)
	if err != nil {
		verr.Add(field+".unitPrice", err.Error())
		return types.LineItem{}, false
	}
	lineCents, err := toCents(new(big.Rat).Mul(qty, price))
	if err != nil {
		verr.Add(field+".quantity", err.Error())
		return types.LineItem{}, false
	}

	return types.LineItem{
		Description:    strings.TrimSpace(raw.Description),
		Quantity:       formatDecimal(qty),
		UnitPriceCents: unitCents,
		LineTotalCents: lineCents,
	}, true
}

func validateParty(verr *errs.ValidationError, prefix string, p types.Party) {
	err := partyValidator.Struct(p)
	if err == nil {
		return
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add(prefix, err.Error())
		return
	}
	for _, fe := range validationErrs {
		verr.Add(prefix+"."+fe.Field(), fmt.Sprintf("failed %s check", fe.Tag()))
	}
}

func number(blocks []types.RenderedBlock) []types.RenderedBlock {
	for i := range blocks {
		blocks[i].Position = i
	}
	return blocks
}
