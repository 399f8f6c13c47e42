package video

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Duration holds the components of an ISO-8601 duration. Date components
// are parsed but media durations only ever populate the time part.
type Duration struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds float64
}

var iso8601Pattern = regexp.MustCompile(
	`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration parses an ISO-8601 duration such as "PT1H5M30S".
// Absent components are zero.
func ParseISODuration(value string) (Duration, error) {
	match := iso8601Pattern.FindStringSubmatch(value)
	if match == nil || value == "P" || value == "PT" {
		return Duration{}, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	var d Duration
	d.Years = atoiDefault(match[1])
	d.Months = atoiDefault(match[2])
	d.Days = atoiDefault(match[3])
	d.Hours = atoiDefault(match[4])
	d.Minutes = atoiDefault(match[5])
	if match[6] != "" {
		seconds, err := strconv.ParseFloat(match[6], 64)
		if err != nil {
			return Duration{}, fmt.Errorf("invalid seconds in duration %q", value)
		}
		d.Seconds = seconds
	}
	return d, nil
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// Clock renders the duration as the zero-padded "HH.MM.SS" form used both
// in Video records and in naming templates.
func (d Duration) Clock() string {
	return fmt.Sprintf("%02d.%02d.%02d", d.Hours, d.Minutes, int(math.Round(d.Seconds)))
}

// TotalChunks estimates the duration in minutes; the downstream progress
// reporter divides transfers into one chunk per minute.
func (d Duration) TotalChunks() float64 {
	return float64(d.Hours)*60 + float64(d.Minutes) + math.Ceil(d.Seconds)/60
}

// PublishDate renders the calendar date of a publish timestamp in local
// time as "YYYY-MM-DD".
func PublishDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// PublishTime renders the wall-clock time of a publish timestamp in local
// time as "HH.MM.SS".
func PublishTime(t time.Time) string {
	return t.Local().Format("15.04.05")
}
