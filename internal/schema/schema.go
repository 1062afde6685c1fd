// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package schema validates the JSON-LD structured data embedded in a page
// and generates schema.org documents for common page types.
package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitescope/sitescope/internal/fetch"
	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/util/mapst"
)

// schemaContext is the @context every generated document declares.
const schemaContext = "https://schema.org"

// Fetcher is the subset of the HTTP client schema validation needs.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Response, error)
}

// Handler validates on-page schema markup.
type Handler struct {
	fetcher Fetcher
}

// NewHandler returns a Handler backed by fetcher.
func NewHandler(fetcher Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// Validate fetches a page and checks every application/ld+json block on it.
// Broken JSON and documents missing @type or @context are recorded as
// issues; Valid is true only when none were found.
func (h *Handler) Validate(ctx context.Context, pageURL string) (*model.SchemaValidation, error) {
	resp, err := h.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", pageURL, err)
	}

	result := &model.SchemaValidation{Schemas: []map[string]any{}}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			result.Issues = append(result.Issues, "invalid JSON-LD format")
			return
		}
		result.Schemas = append(result.Schemas, parsed)
		if _, ok := parsed["@type"]; !ok {
			result.Issues = append(result.Issues, "missing @type in schema")
		}
		if _, ok := parsed["@context"]; !ok {
			result.Issues = append(result.Issues, "missing @context in schema")
		}
	})

	result.SchemasFound = len(result.Schemas)
	result.Valid = len(result.Issues) == 0
	return result, nil
}

// FAQItem is one question/answer pair of an FAQ page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Input carries the fields for any generated schema type; each builder
// reads only the fields relevant to it.
type Input struct {
	// Article
	Title       string
	Description string
	Author      string
	Date        time.Time

	// Product / LocalBusiness
	Name     string
	Price    float64
	Currency string

	// LocalBusiness address
	Street     string
	City       string
	Region     string
	PostalCode string

	// FAQ
	Questions []FAQItem
}

// builders maps schema type names to their document builders.
var builders = map[string]func(Input) map[string]any{
	"Article":       articleSchema,
	"Product":       productSchema,
	"LocalBusiness": localBusinessSchema,
	"FAQ":           faqSchema,
}

// SupportedTypes lists the schema types Generate accepts, sorted.
func SupportedTypes() []string {
	return mapst.SortedKeys(builders)
}

// Generate builds a JSON-LD document of the given type along with its
// <script>-wrapped embed form.
func Generate(schemaType string, in Input) (*model.SchemaDoc, error) {
	build, ok := builders[schemaType]
	if !ok {
		return nil, fmt.Errorf("unsupported schema type %q; supported types: %s",
			schemaType, strings.Join(SupportedTypes(), ", "))
	}
	doc := build(in)
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return &model.SchemaDoc{
		Schema: doc,
		JSONLD: fmt.Sprintf("<script type=\"application/ld+json\">\n%s\n</script>", encoded),
	}, nil
}

func articleSchema(in Input) map[string]any {
	dateStr := ""
	if !in.Date.IsZero() {
		dateStr = in.Date.Format(time.RFC3339)
	}
	return map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": in.Title,
		"author": map[string]any{
			"@type": "Person",
			"name":  in.Author,
		},
		"datePublished": dateStr,
		"description":   in.Description,
	}
}

func productSchema(in Input) map[string]any {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	return map[string]any{
		"@context":      schemaContext,
		"@type":         "Product",
		"name":          in.Name,
		"description":   in.Description,
		"price":         in.Price,
		"priceCurrency": currency,
	}
}

func localBusinessSchema(in Input) map[string]any {
	return map[string]any{
		"@context": schemaContext,
		"@type":    "LocalBusiness",
		"name":     in.Name,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   in.Street,
			"addressLocality": in.City,
			"addressRegion":   in.Region,
			"postalCode":      in.PostalCode,
		},
	}
}

func faqSchema(in Input) map[string]any {
	entities := make([]any, 0, len(in.Questions))
	for _, qa := range in.Questions {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  qa.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  qa.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}
