package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// render prints a completed view as plain text.
func render(w io.Writer, view weather.View) error {
	if !view.Ready() {
		return fmt.Errorf("no weather data to render")
	}

	cur := view.Current
	fmt.Fprintf(w, "%s (%.2f, %.2f)\n", view.Location.DisplayName(), view.Location.Latitude, view.Location.Longitude)
	fmt.Fprintf(w, "%s %s  %d° (feels like %d°)\n", cur.Classification.Icon, cur.Classification.Label, round(cur.Temperature), round(cur.FeelsLike))
	fmt.Fprintf(w, "Humidity %.0f%%  Wind %d km/h  Updated %s\n\n", cur.Humidity, round(cur.WindSpeed), cur.ObservedAt.Format("15:04"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, day := range view.Forecast {
		fmt.Fprintf(tw, "%s\t%s %s\t%d°\tMin %d°\n",
			day.Date.Format("Mon, 02 Jan"),
			day.Classification.Icon,
			day.Classification.Label,
			round(day.TempMax),
			round(day.TempMin),
		)
	}
	return tw.Flush()
}

func round(v float64) int {
	return int(math.Round(v))
}
