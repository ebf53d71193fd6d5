package weather

// Classify maps an Open-Meteo (WMO) weather code to a label and icon.
// Codes outside the known bands yield ConditionUnknown; it never fails.
func Classify(code int) Classification {
	cond := conditionForCode(code)
	info := conditionInfo[cond]
	return Classification{
		Condition: cond,
		Label:     info.label,
		Icon:      info.icon,
	}
}

// See https://open-meteo.com/en/docs for the code table.
func conditionForCode(code int) Condition {
	switch code {
	case 0:
		return ConditionClear
	case 1, 2:
		return ConditionPartlyCloudy
	case 3:
		return ConditionOvercast
	case 45, 48:
		return ConditionFog
	case 51, 53, 55:
		return ConditionDrizzle
	case 56, 57:
		return ConditionFreezingDrizzle
	case 61, 63, 65:
		return ConditionRain
	case 66, 67:
		return ConditionFreezingRain
	case 71, 73, 75:
		return ConditionSnow
	case 77:
		return ConditionSnowGrains
	case 80, 81, 82:
		return ConditionRainShowers
	case 85, 86:
		return ConditionSnowShowers
	case 95:
		return ConditionThunderstorm
	case 96, 99:
		return ConditionThunderstormHail
	default:
		return ConditionUnknown
	}
}

var conditionInfo = map[Condition]struct {
	label string
	icon  string
}{
	ConditionClear:            {"Clear sky", "☀️"},
	ConditionPartlyCloudy:     {"Partly cloudy", "🌤️"},
	ConditionOvercast:         {"Overcast", "☁️"},
	ConditionFog:              {"Fog", "🌫️"},
	ConditionDrizzle:          {"Drizzle", "🌦️"},
	ConditionFreezingDrizzle:  {"Freezing drizzle", "🌧️"},
	ConditionRain:             {"Rain", "🌧️"},
	ConditionFreezingRain:     {"Freezing rain", "🌧️"},
	ConditionSnow:             {"Snow", "❄️"},
	ConditionSnowGrains:       {"Snow grains", "🌨️"},
	ConditionRainShowers:      {"Rain showers", "🌧️"},
	ConditionSnowShowers:      {"Snow showers", "🌨️"},
	ConditionThunderstorm:     {"Thunderstorm", "⛈️"},
	ConditionThunderstormHail: {"Thunderstorm + hail", "⛈️"},
	ConditionUnknown:          {"Weather", "🌡️"},
}

// ThemeFor selects the visual theme for the current weather code.
// Storm wins over rain, rain over snow, snow over sun, sun over cloud.
func ThemeFor(code int) Theme {
	switch conditionForCode(code) {
	case ConditionThunderstorm, ConditionThunderstormHail:
		return ThemeStorm
	case ConditionDrizzle, ConditionFreezingDrizzle, ConditionRain, ConditionFreezingRain, ConditionRainShowers:
		return ThemeRain
	case ConditionSnow, ConditionSnowGrains, ConditionSnowShowers:
		return ThemeSnow
	case ConditionClear:
		return ThemeSun
	case ConditionOvercast, ConditionFog:
		return ThemeCloud
	case ConditionPartlyCloudy:
		// Code 1 reads as mostly sunny, code 2 as cloudy.
		if code == 1 {
			return ThemeSun
		}
		return ThemeCloud
	default:
		return ThemeDefault
	}
}
