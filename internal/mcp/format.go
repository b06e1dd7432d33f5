package mcp

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

// FormatSnapshot renders the dashboard as markdown.
func FormatSnapshot(s dashboard.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("# Dashboard\n\n")
	sb.WriteString(fmt.Sprintf("**Today:** %s\n", s.Today))
	sb.WriteString(fmt.Sprintf("**Next update:** %s (%s) at %s\n", s.NextSession.Label, s.NextSession.Name, s.NextSession.TimeStr))
	sb.WriteString(fmt.Sprintf("> %s\n\n", s.Quote))

	if s.Error != nil {
		sb.WriteString(fmt.Sprintf("**Error:** %s\n\n", *s.Error))
	}

	sb.WriteString("## Watchlist\n\n")
	if len(s.Watchlist) == 0 {
		sb.WriteString("The watchlist is empty.\n\n")
	} else {
		sb.WriteString("| Symbol | Name | Type | ID |\n")
		sb.WriteString("|--------|------|------|----|\n")
		for _, item := range s.Watchlist {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", item.Symbol, item.Name, item.AssetType, item.ID))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Daily Briefing\n\n")
	switch {
	case s.LoadingBriefing:
		sb.WriteString("_Briefing is being generated._\n\n")
	case s.Briefing == nil:
		sb.WriteString("No briefing yet. Call refresh_briefing to generate one.\n\n")
	default:
		formatBriefing(&sb, s.Briefing)
	}

	sb.WriteString("## Economic Events\n\n")
	switch {
	case s.LoadingEvents:
		sb.WriteString("_Calendar is loading._\n\n")
	case len(s.Events) == 0:
		sb.WriteString("No events.\n\n")
	default:
		if len(s.TodayEvents) > 0 {
			sb.WriteString("### Today\n\n")
			formatEvents(&sb, s.TodayEvents)
		}
		if len(s.OtherEvents) > 0 {
			sb.WriteString("### This Week\n\n")
			formatEvents(&sb, s.OtherEvents)
		}
	}

	return sb.String()
}

func formatBriefing(sb *strings.Builder, b *models.MarketBriefing) {
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", b.Date))
	sb.WriteString(fmt.Sprintf("**Sentiment:** %.0f/100 (%s)\n\n", b.SentimentScore, b.Sentiment()))
	sb.WriteString(strings.TrimSpace(b.Summary))
	sb.WriteString("\n\n")

	if len(b.KeyTakeaways) > 0 {
		sb.WriteString("### Key Takeaways\n\n")
		for _, k := range b.KeyTakeaways {
			sb.WriteString(fmt.Sprintf("- %s\n", k))
		}
		sb.WriteString("\n")
	}

	if len(b.Sources) > 0 {
		sb.WriteString("### Sources\n\n")
		for _, src := range b.Sources {
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", src.Title, src.URI))
		}
		sb.WriteString("\n")
	}
}

func formatEvents(sb *strings.Builder, events []models.EconomicEvent) {
	sb.WriteString("| Date | Time | Event | Impact | Forecast | Previous | Asset |\n")
	sb.WriteString("|------|------|-------|--------|----------|----------|-------|\n")
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			e.Date, e.Time, cell(e.Event), e.Impact.Label(), cell(e.Forecast), cell(e.Previous), cell(e.RelatedAsset)))
	}
	sb.WriteString("\n")
}

// cell escapes pipes and substitutes "-" for empty table cells.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
