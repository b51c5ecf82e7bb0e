package speaker

import (
	"fmt"
	"strings"
	"time"

	"zephyr/internal/conversation"
	"zephyr/internal/weather"
)

// Fallback replies used when the completion service itself is unreachable
// while producing a canned message. The engine never surfaces raw errors.
const (
	fallbackError      = "Something went wrong on our side. Please try again."
	fallbackNoLocation = "To do that, please enable your device's location services and try again."
	fallbackConfused   = "Sorry, I didn't quite understand that. Could you try again?"
)

const (
	errorPrompt = `Please explain to the user that something has gone wrong and suggest that they try again.
Just give one response with no explanation.`

	noLocationPrompt = `Please explain to the user that if they want to do that action they need to enable their device's location services.
Just give one response with no explanation.`

	confusedPrompt = `Please explain to the user that you didn't quite understand what they meant, and ask that they try again.
Just give one response with no explanation.`
)

func conversationalPrompt(userMessage, name, greeting string, entries []conversation.Entry, now time.Time) string {
	return fmt.Sprintf(`Here is the user's message: %s.
Their name is %s.
%s
Please respond to them in a polite and brief manner.
Here is some general information that may help your response:
the current time is %s, the current date is %s;
only use this information if it relates to the user's message.
Here is context of the chat: %s; this does not need to be used.`,
		userMessage,
		name,
		greeting,
		now.Format("15:04:05"),
		now.Format("2006-01-02"),
		renderEntries(entries),
	)
}

func forecastPrompt(userMessage, name, place, greeting string, series weather.ForecastSeries, diffs []weather.Disagreement, entries []conversation.Entry, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the user's request: %s.\n", userMessage)
	fmt.Fprintf(&b, "Their name is %s.\n", name)
	b.WriteString(greeting + "\n")
	if place != "" {
		fmt.Fprintf(&b, "The forecast location is %s.\n", place)
	}
	fmt.Fprintf(&b, "Here is the information needed for that request:\n%s", renderSeries(series))
	if len(diffs) > 0 {
		b.WriteString("A second source reports different values at these points; mention this as a caveat:\n")
		b.WriteString(renderDisagreements(diffs))
	}
	b.WriteString("Do not use ellipses. Do not mention other sources beyond the caveat above.\n")
	fmt.Fprintf(&b, "Here is context of the chat: %s; this does not need to be used.\n", renderEntries(entries))
	fmt.Fprintf(&b, "The current time is %s; only relay this if it is relevant to the user's request.\n", now.Format("15:04:05"))
	b.WriteString("There is no room for notes or extra comments; focus on providing the information the user has requested.\n")
	b.WriteString("Please relay this information to the user in a brief, polite and understandable manner.")
	return b.String()
}

func renderEntries(entries []conversation.Entry) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s; ", e.Speaker, e.Message)
	}
	return strings.TrimSuffix(b.String(), "; ")
}

func renderSeries(s weather.ForecastSeries) string {
	var b strings.Builder
	for _, field := range s.Fields {
		fmt.Fprintf(&b, "%s:", field)
		for _, sample := range s.Samples[field] {
			if sample.Missing {
				continue
			}
			fmt.Fprintf(&b, " %s=%.1f", sample.Time.UTC().Format("Mon 15:04"), sample.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderDisagreements(diffs []weather.Disagreement) string {
	var b strings.Builder
	for _, d := range diffs {
		fmt.Fprintf(&b, "%s at %s: primary source %.1f, secondary source %.1f\n",
			d.Field, d.Time.UTC().Format("2006-01-02 15:04"), d.Primary, d.Secondary)
	}
	return b.String()
}
