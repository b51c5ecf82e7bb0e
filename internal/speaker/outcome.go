package speaker

import (
	"zephyr/internal/intent"
	"zephyr/internal/weather"
)

// outcomeKind enumerates every terminal branch of the fulfilment decision
// tree, so each one can be classified and tested on its own.
type outcomeKind int

const (
	outcomeError outcomeKind = iota
	outcomeConversational
	outcomeSingleForecast
	outcomeReconciledForecast
	outcomeNeedsLocation
	outcomeNeedsRetry
)

// outcome is the classified fulfilment decision. coords is set for the
// single-provider path, place for the dual-provider path.
type outcome struct {
	kind   outcomeKind
	coords weather.Coordinates
	place  string
}

// classify walks the decision tree in fixed order; the first match wins.
// Extraction failures are handled before classification.
func classify(it intent.Intent, deviceCoords *weather.Coordinates) outcome {
	switch {
	case it.GeneralConversation:
		return outcome{kind: outcomeConversational}

	case it.WeatherRequested:
		if it.UseDeviceLocation {
			if it.DeviceLocationAvailable && it.NamedLocation == "" && deviceCoords != nil {
				return outcome{kind: outcomeSingleForecast, coords: *deviceCoords}
			}
			// Device location requested but not provided.
			return outcome{kind: outcomeNeedsLocation}
		}
		if it.NamedLocation != "" {
			return outcome{kind: outcomeReconciledForecast, place: it.NamedLocation}
		}
		// Weather wanted but no usable location at all; ask the user to
		// rephrase rather than geocode an empty string.
		return outcome{kind: outcomeNeedsRetry}

	case it.Ambiguous:
		return outcome{kind: outcomeNeedsRetry}

	default:
		return outcome{kind: outcomeError}
	}
}
