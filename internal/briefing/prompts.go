package briefing

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"google.golang.org/genai"

	"github.com/bobmcallan/briefing-portal/internal/models"
)

// languageName renders a tag as "English name (native name)", e.g.
// "Simplified Chinese (简体中文)".
func languageName(tag language.Tag) string {
	english := display.English.Tags().Name(tag)
	self := display.Self.Name(tag)
	switch {
	case english == "":
		return tag.String()
	case self == "" || self == english:
		return english
	default:
		return fmt.Sprintf("%s (%s)", english, self)
	}
}

func briefingPrompt(today string, symbols []string, locale language.Tag) string {
	lang := languageName(locale)

	var b strings.Builder
	b.WriteString("You are an expert financial analyst for a professional trader.\n")
	fmt.Fprintf(&b, "Today is %s (YYYY-MM-DD).\n\n", today)
	b.WriteString("Determine the current global market session based on the current time:\n")
	b.WriteString("- Asian Session (UTC 00:00 - 08:00)\n")
	b.WriteString("- European Session (UTC 07:00 - 16:00)\n")
	b.WriteString("- US Session (UTC 13:30 - 20:00)\n\n")
	fmt.Fprintf(&b, "Review the market performance for the following assets: %s.\n\n", strings.Join(symbols, ", "))
	fmt.Fprintf(&b, "Provide a \"Session Market Observation\" report in %s.\n", lang)
	b.WriteString("1. Focus on the LATEST news and price action relevant to the CURRENT or UPCOMING session.\n")
	fmt.Fprintf(&b, "2. Identify the primary catalyst (news, data, or technicals) driving the moves (in %s).\n", lang)
	b.WriteString("3. Provide a sentiment score from 0 (Extreme Fear) to 100 (Extreme Greed).\n\n")
	b.WriteString("Use Google Search to ensure all data is up-to-the-minute.\n")
	return b.String()
}

func eventsPrompt(today string, symbols []string, locale language.Tag) string {
	lang := languageName(locale)

	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s (YYYY-MM-DD).\n", today)
	fmt.Fprintf(&b, "Find the major economic events, earnings releases, and data prints specifically relevant to these assets: %s.\n", strings.Join(symbols, ", "))
	b.WriteString("Focus on the current week.\n\n")
	b.WriteString("Return a raw JSON list of events.\n")
	fmt.Fprintf(&b, "Translate the 'event' description, 'forecast', and 'relatedAsset' into %s.\n", lang)
	b.WriteString("ENSURE the 'date' field is strictly in \"YYYY-MM-DD\" format.\n")
	return b.String()
}

func briefingSchema(locale language.Tag) *genai.Schema {
	lang := display.English.Tags().Name(locale)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "Detailed Markdown summary of session market action in " + lang + ".",
			},
			"keyTakeaways": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of 3-5 bullet points of crucial info in " + lang + ".",
			},
			"sentimentScore": {
				Type:        genai.TypeNumber,
				Description: "0-100 score",
			},
		},
		Required: []string{"summary", "keyTakeaways", "sentimentScore"},
	}
}

func eventsSchema(locale language.Tag) *genai.Schema {
	lang := display.English.Tags().Name(locale)
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date":  {Type: genai.TypeString, Description: "Date of event (YYYY-MM-DD)"},
				"time":  {Type: genai.TypeString, Description: "Time of event (include timezone if possible)"},
				"event": {Type: genai.TypeString, Description: "Name of the event in " + lang},
				"impact": {
					Type: genai.TypeString,
					Enum: []string{string(models.ImpactHigh), string(models.ImpactMedium), string(models.ImpactLow)},
				},
				"forecast":     {Type: genai.TypeString, Description: "Consensus forecast in " + lang + " if available"},
				"previous":     {Type: genai.TypeString, Description: "Previous reading if available"},
				"relatedAsset": {Type: genai.TypeString, Description: "The specific asset affected"},
			},
		},
	}
}
