// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/schema"
)

var schemaType string
var schemaTitle string
var schemaDescription string
var schemaAuthor string
var schemaDate string
var schemaName string
var schemaPrice float64
var schemaCurrency string
var schemaStreet string
var schemaCity string
var schemaRegion string
var schemaPostalCode string
var schemaFAQFile string
var schemaOutFile string

func registerSchemaFlags() {
	if schemaGenerateCmd.Flags().Lookup("type") == nil {
		schemaGenerateCmd.Flags().StringVarP(&schemaType, "type", "t", "Article",
			fmt.Sprintf("Schema type (%s)", strings.Join(schema.SupportedTypes(), ", ")))
		schemaGenerateCmd.Flags().StringVar(&schemaTitle, "title", "", "Article title")
		schemaGenerateCmd.Flags().StringVar(&schemaDescription, "description", "", "Article or product description")
		schemaGenerateCmd.Flags().StringVar(&schemaAuthor, "author", "", "Article author")
		schemaGenerateCmd.Flags().StringVar(&schemaDate, "date", "", "Article publication date (YYYY-MM-DD)")
		schemaGenerateCmd.Flags().StringVar(&schemaName, "name", "", "Product or business name")
		schemaGenerateCmd.Flags().Float64Var(&schemaPrice, "price", 0, "Product price")
		schemaGenerateCmd.Flags().StringVar(&schemaCurrency, "currency", "USD", "Product price currency")
		schemaGenerateCmd.Flags().StringVar(&schemaStreet, "street", "", "Business street address")
		schemaGenerateCmd.Flags().StringVar(&schemaCity, "city", "", "Business city")
		schemaGenerateCmd.Flags().StringVar(&schemaRegion, "region", "", "Business region/state")
		schemaGenerateCmd.Flags().StringVar(&schemaPostalCode, "postal-code", "", "Business postal code")
		schemaGenerateCmd.Flags().StringVar(&schemaFAQFile, "questions", "", "JSON file with FAQ question/answer pairs")
		schemaGenerateCmd.Flags().StringVarP(&schemaOutFile, "output", "o", "", "Write the JSON-LD to a file instead of stdout")
	}
}

// schemaCmd groups the structured-data tools.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Validate or generate schema.org JSON-LD markup",
}

func init() {
	schemaCmd.AddCommand(schemaValidateCmd, schemaGenerateCmd)
}

// schemaValidateCmd checks the JSON-LD blocks embedded in a page.
var schemaValidateCmd = &cobra.Command{
	Use:     "validate <url>",
	Short:   "Validate the JSON-LD markup on a page",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		handler := schema.NewHandler(newFetchClient())
		result, err := handler.Validate(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("%s", i18n.T("schema.validate_failed", err))
		}

		if result.Valid {
			fmt.Println(i18n.T("schema.valid", result.SchemasFound))
		} else {
			fmt.Println(i18n.T("schema.invalid", result.SchemasFound, len(result.Issues)))
			for _, issue := range result.Issues {
				fmt.Printf("  - %s\n", issue)
			}
		}
		for _, s := range result.Schemas {
			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				continue
			}
			fmt.Printf("%s\n", out)
		}
	},
}

// schemaGenerateCmd builds a JSON-LD document from the typed flags.
var schemaGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schema.org JSON-LD document",
	Long: `Generates JSON-LD markup for a page type. Each type reads its own
flags:

  Article:       --title, --description, --author, --date
  Product:       --name, --description, --price, --currency
  LocalBusiness: --name, --street, --city, --region, --postal-code
  FAQ:           --questions file.json ([{"question":"..","answer":".."}])`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		in := schema.Input{
			Title:       schemaTitle,
			Description: schemaDescription,
			Author:      schemaAuthor,
			Name:        schemaName,
			Price:       schemaPrice,
			Currency:    schemaCurrency,
			Street:      schemaStreet,
			City:        schemaCity,
			Region:      schemaRegion,
			PostalCode:  schemaPostalCode,
		}

		if schemaDate != "" {
			d, err := time.Parse("2006-01-02", schemaDate)
			if err != nil {
				log.Fatalf("%s", i18n.T("schema.invalid_date", schemaDate))
			}
			in.Date = d
		}

		if schemaFAQFile != "" {
			data, err := os.ReadFile(schemaFAQFile)
			if err != nil {
				log.Fatalf("%s", i18n.T("schema.error_questions", err))
			}
			if err := json.Unmarshal(data, &in.Questions); err != nil {
				log.Fatalf("%s", i18n.T("schema.error_questions", err))
			}
		}

		doc, err := schema.Generate(schemaType, in)
		if err != nil {
			log.Fatalf("%s", i18n.T("schema.generate_failed", err))
		}

		if schemaOutFile != "" {
			if err := os.WriteFile(schemaOutFile, []byte(doc.JSONLD), 0644); err != nil {
				log.Fatalf("%s", i18n.T("schema.error_write", err))
			}
			fmt.Println(i18n.T("schema.generate_written", schemaOutFile))
		} else {
			fmt.Println(doc.JSONLD)
		}
	},
}
