// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package page

import (
	"bytes"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/sitescope/sitescope/internal/logging"
)

// MainText extracts the boilerplate-free article text of the document using
// a readability pass. Pages without a recognizable article body fall back to
// the visible body text so short pages still get content metrics.
func (d *Document) MainText() string {
	article, err := readability.FromReader(bytes.NewReader(d.raw), d.pageURL)
	if err != nil {
		logging.Debugf("page: readability extraction failed for %s: %v", d.pageURL, err)
		return d.bodyText()
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return d.bodyText()
	}
	return article.TextContent
}

// bodyText returns the visible text of the body with script, style and
// noscript content removed.
func (d *Document) bodyText() string {
	body := d.doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return strings.TrimSpace(body.Text())
}
