// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package export renders analysis reports in portable formats.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/util/slicest"
)

// ReportCSV renders the meta, heading and link sections of a report as a
// multi-section CSV document, one section per analysis table.
func ReportCSV(r *model.Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Meta section
	if err := w.WriteAll([][]string{
		{"url", "title", "meta_description", "meta_keywords", "canonical", "robots", "status_code"},
		{r.URL, r.Meta.Title, r.Meta.MetaDescription, r.Meta.MetaKeywords, r.Meta.Canonical, r.Meta.Robots, strconv.Itoa(r.Meta.StatusCode)},
	}); err != nil {
		return "", fmt.Errorf("write meta section: %w", err)
	}

	buf.WriteString("\nHeader Analysis\n")
	headingRows := slicest.Map(r.Headings, func(h model.Heading) []string {
		return []string{h.Tag(), h.Text, strconv.Itoa(h.Words)}
	})
	if err := w.WriteAll(append([][]string{{"type", "content", "words"}}, headingRows...)); err != nil {
		return "", fmt.Errorf("write heading section: %w", err)
	}

	buf.WriteString("\nLinks Analysis\n")
	linkRows := slicest.Map(r.Links, func(l model.Link) []string {
		return []string{l.Text, l.URL, strconv.FormatBool(l.Internal)}
	})
	if err := w.WriteAll(append([][]string{{"text", "url", "internal"}}, linkRows...)); err != nil {
		return "", fmt.Errorf("write link section: %w", err)
	}

	return buf.String(), nil
}
