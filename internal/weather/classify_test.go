package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	tests := []struct {
		codes []int
		cond  Condition
		label string
	}{
		{[]int{0}, ConditionClear, "Clear sky"},
		{[]int{1, 2}, ConditionPartlyCloudy, "Partly cloudy"},
		{[]int{3}, ConditionOvercast, "Overcast"},
		{[]int{45, 48}, ConditionFog, "Fog"},
		{[]int{51, 53, 55}, ConditionDrizzle, "Drizzle"},
		{[]int{56, 57}, ConditionFreezingDrizzle, "Freezing drizzle"},
		{[]int{61, 63, 65}, ConditionRain, "Rain"},
		{[]int{66, 67}, ConditionFreezingRain, "Freezing rain"},
		{[]int{71, 73, 75}, ConditionSnow, "Snow"},
		{[]int{77}, ConditionSnowGrains, "Snow grains"},
		{[]int{80, 81, 82}, ConditionRainShowers, "Rain showers"},
		{[]int{85, 86}, ConditionSnowShowers, "Snow showers"},
		{[]int{95}, ConditionThunderstorm, "Thunderstorm"},
		{[]int{96, 99}, ConditionThunderstormHail, "Thunderstorm + hail"},
	}

	seen := make(map[int]bool)
	for _, tt := range tests {
		t.Run(string(tt.cond), func(t *testing.T) {
			for _, code := range tt.codes {
				assert.False(t, seen[code], "code %d listed in more than one band", code)
				seen[code] = true

				got := Classify(code)
				assert.Equal(t, tt.cond, got.Condition, "code %d", code)
				assert.Equal(t, tt.label, got.Label, "code %d", code)
				assert.NotEmpty(t, got.Icon, "code %d", code)
			}
		})
	}
}

func TestClassify_UnknownFallback(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 50, 52, 60, 70, 78, 83, 90, 97, 100, 1000} {
		got := Classify(code)
		assert.Equal(t, Classification{Condition: ConditionUnknown, Label: "Weather", Icon: "🌡️"}, got, "code %d", code)
	}
}

func TestThemeFor(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  Theme
	}{
		{"storm", []int{95, 96, 99}, ThemeStorm},
		{"rain", []int{51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82}, ThemeRain},
		{"snow", []int{71, 73, 75, 77, 85, 86}, ThemeSnow},
		{"sun", []int{0, 1}, ThemeSun},
		{"cloud", []int{2, 3, 45, 48}, ThemeCloud},
		{"default", []int{4, 42, 100}, ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, code := range tt.codes {
				assert.Equal(t, tt.want, ThemeFor(code), "code %d", code)
			}
		})
	}
}

func TestLocationDisplayName(t *testing.T) {
	assert.Equal(t, "Delhi, India", Location{Name: "Delhi", Country: "India"}.DisplayName())
	assert.Equal(t, "Antarctica Station", Location{Name: "Antarctica Station"}.DisplayName())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "City not found!", Message(ErrNotFound))
	assert.Equal(t, "Weather not available!", Message(ErrUnavailable))
	assert.Equal(t, "Something went wrong!", Message(assert.AnError))
}
