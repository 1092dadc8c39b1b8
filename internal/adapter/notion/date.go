package notion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// datePattern matches the source site's date strings: "YYYY.M.D" optionally
// followed by a meridiem marker and "H:MM", e.g. "2024.3.5 오후 2:30".
var datePattern = regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})\.?\s*(오전|오후)?\s*(\d{1,2})?:?(\d{2})?`)

// normalizeDate parses a free-text date into the destination's ISO-8601
// representation, pinned to the source site's fixed UTC offset. Returns ""
// when the text doesn't match; a missing date is not an error.
func normalizeDate(text string, utcOffsetHours int) string {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if m[5] == "" {
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	hour, _ := strconv.Atoi(m[5])
	minute := 0
	if m[6] != "" {
		minute, _ = strconv.Atoi(m[6])
	}

	// Standard 12-hour convention: PM below noon adds 12, 12 AM is midnight.
	if m[4] == "오후" && hour < 12 {
		hour += 12
	}
	if m[4] == "오전" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00%+03d:00", year, month, day, hour, minute, utcOffsetHours)
}
