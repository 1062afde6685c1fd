// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"strings"
	"testing"
)

func TestTranslatesEnglish(t *testing.T) {
	Init("en")
	got := T("report.title")
	if got != "Title" {
		t.Errorf("T(report.title) = %q, want Title", got)
	}
}

func TestTranslatesGerman(t *testing.T) {
	Init("de")
	defer Init("en")
	got := T("report.title")
	if got != "Titel" {
		t.Errorf("T(report.title) = %q, want Titel", got)
	}
}

func TestFormatsArguments(t *testing.T) {
	Init("en")
	got := T("report.links_summary", 10, 7, 3)
	if !strings.Contains(got, "10") || !strings.Contains(got, "7") || !strings.Contains(got, "3") {
		t.Errorf("T(report.links_summary, ...) = %q", got)
	}
}

func TestUnknownKeyFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("T(no.such.key) = %q, want the ID itself", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("xx")
	defer Init("en")
	if got := T("report.title"); got != "Title" {
		t.Errorf("T(report.title) in unknown language = %q, want Title", got)
	}
}

func TestSetLang(t *testing.T) {
	Init("en")
	SetLang("de")
	defer Init("en")
	if got := T("report.none"); got != "(keine)" {
		t.Errorf("T(report.none) after SetLang(de) = %q, want (keine)", got)
	}
}
