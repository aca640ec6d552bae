// Package report writes analysis results to an Excel workbook and reads
// workbooks back for inspection.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/gap"
	"github.com/cosmolaser/content-gap/internal/model"
)

// Sheet names with fixed meaning.
const (
	SheetTarget = "Target_Keywords"
	SheetGaps   = "Content_Gaps"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

var keywordHeader = []string{
	"Source", "Keyword", "Rank", "URL", "Title",
	"Search_Volume", "Competition", "CPC", "Competition_Level",
}

var gapHeader = []string{
	"Competitor", "Missing_Keyword", "Search_Volume", "Competition", "Competition_Level",
	"CPC", "Priority_Score", "Priority_Level", "Competitor_Rank", "Competitor_URL",
}

var sheetNameReplacer = strings.NewReplacer(
	".", "_", ":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// Build lays out res as a workbook. Sheets without rows are left out, but the
// workbook always holds at least the Content_Gaps sheet.
func Build(res *analyzer.Result) (*xlsx.File, error) {
	if res == nil {
		return nil, eris.New("report: result is required")
	}

	f := xlsx.NewFile()
	used := map[string]bool{strings.ToLower(SheetTarget): true, strings.ToLower(SheetGaps): true}

	if len(res.Target.Keywords) > 0 {
		if err := addKeywordSheet(f, SheetTarget, res.Target); err != nil {
			return nil, err
		}
	}

	for _, c := range res.Competitors {
		if len(c.Keywords) == 0 {
			continue
		}
		if err := addKeywordSheet(f, SheetName(c.Domain, used), c); err != nil {
			return nil, err
		}
	}

	if len(res.Ranked) > 0 || len(f.Sheets) == 0 {
		if err := addGapSheet(f, res.Ranked); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Write encodes res as an xlsx workbook to w.
func Write(w io.Writer, res *analyzer.Result) error {
	f, err := Build(res)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write workbook")
	}
	return nil
}

// WriteFile saves res as an xlsx workbook at path.
func WriteFile(path string, res *analyzer.Result) error {
	f, err := Build(res)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}

	names := make([]string, len(f.Sheets))
	for i, s := range f.Sheets {
		names[i] = s.Name
	}
	zap.L().Info("report written",
		zap.String("component", "report"),
		zap.String("path", path),
		zap.Strings("sheets", names),
		zap.Int("gaps", len(res.Ranked)),
	)
	return nil
}

// SheetName derives a valid, unused sheet name from a domain and marks it
// used. Characters Excel rejects become underscores and the name is cut to 31
// characters; clashes get a numeric suffix. Excel compares sheet names
// case-insensitively, so used is keyed by lowercased name.
func SheetName(domain string, used map[string]bool) string {
	base := truncate(sheetNameReplacer.Replace(domain), maxSheetName)
	if base == "" {
		base = "Sheet"
	}

	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func addKeywordSheet(f *xlsx.File, name string, dk model.DomainKeywords) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %s", name)
	}
	addHeader(sheet, keywordHeader)

	for _, k := range dk.Keywords {
		row := sheet.AddRow()
		row.AddCell().SetString(dk.Domain)
		row.AddCell().SetString(k.Keyword)
		row.AddCell().SetInt(k.Rank)
		row.AddCell().SetString(k.URL)
		row.AddCell().SetString(k.Title)
		row.AddCell().SetInt64(k.SearchVolume)
		row.AddCell().SetFloat(k.Competition)
		row.AddCell().SetFloat(k.CPC)
		row.AddCell().SetString(k.CompetitionLevel)
	}
	return nil
}

func addGapSheet(f *xlsx.File, gaps []gap.Gap) error {
	sheet, err := f.AddSheet(SheetGaps)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %s", SheetGaps)
	}
	addHeader(sheet, gapHeader)

	for _, g := range gaps {
		row := sheet.AddRow()
		row.AddCell().SetString(g.Competitor)
		row.AddCell().SetString(g.Keyword.Keyword)
		row.AddCell().SetInt64(g.Keyword.SearchVolume)
		row.AddCell().SetFloat(gap.RoundTo(g.Keyword.Competition, 3))
		row.AddCell().SetString(g.Keyword.CompetitionLevel)
		row.AddCell().SetFloat(gap.RoundTo(g.Keyword.CPC, 2))
		row.AddCell().SetFloat(g.Score)
		row.AddCell().SetString(string(g.Tier))
		row.AddCell().SetInt(g.Keyword.Rank)
		row.AddCell().SetString(g.Keyword.URL)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, header []string) {
	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	row := sheet.AddRow()
	for _, h := range header {
		cell := row.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}
}
