package weather

// Advisory returns the field-work hint for an OpenWeatherMap "main" condition.
func Advisory(condition string) string {
	switch condition {
	case "Rain":
		return "Rain expected. Consider delaying field work and irrigation."
	case "Clear":
		return "Clear skies. Good conditions for field work and harvesting."
	case "Clouds":
		return "Cloudy conditions. Monitor crops for adequate sunlight."
	case "Extreme":
		return "Extreme weather warning! Take necessary precautions to protect crops and livestock."
	default:
		return "Normal weather conditions. Proceed with regular farming activities."
	}
}
