package content

// DefaultIcon is used for meetings whose title is not in the icon table.
const DefaultIcon = "📅"

var meetingIcons = map[string]string{
	"Sunday":    "☀️",
	"Monday":    "🌙",
	"Tuesday":   "🌟",
	"Wednesday": "📖",
	"Thursday":  "🙏",
	"Friday":    "👥",
	"Saturday":  "⭐",
	"Football":  "⚽",
}

// IconFor selects a meeting icon by exact match on the default-language title.
func IconFor(title string) string {
	if icon, ok := meetingIcons[title]; ok {
		return icon
	}
	return DefaultIcon
}
