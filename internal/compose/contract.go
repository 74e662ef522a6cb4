// Package compose turns a validated document request into an ordered block sequence.
package compose

import (
	"strings"

	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/types"
)

// Contract composes a contract as a single block holding the title and the full
// body. Plain text is kept verbatim. Content carrying editor markup is not: it is
// flattened to paragraphs, entities are decoded and anything the HTML parser reads
// as a tag is dropped, so "a <b>c</b>" renders as "a c".
func Contract(c *types.ContractRequest) ([]types.RenderedBlock, error) {
	if c == nil {
		return nil, errs.NewValidationError("content", "is required")
	}

	body := c.Content
	if looksLikeHTML(body) {
		flat, err := flattenHTML(body)
		if err != nil {
			return nil, errs.NewValidationError("content", "could not be parsed as HTML: "+err.Error())
		}
		body = flat
	}

	return []types.RenderedBlock{{
		Kind:     types.BlockContractBody,
		Position: 0,
		Title:    strings.TrimSpace(c.Title),
		Body:     body,
	}}, nil
}
