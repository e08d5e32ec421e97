package domain

import "fmt"

// MonthKey identifies one of the twelve monthly climate files.
type MonthKey string

const (
	MonthJan MonthKey = "jan"
	MonthFeb MonthKey = "feb"
	MonthMar MonthKey = "mar"
	MonthApr MonthKey = "apr"
	MonthMay MonthKey = "may"
	MonthJun MonthKey = "jun"
	MonthJul MonthKey = "jul"
	MonthAug MonthKey = "aug"
	MonthSep MonthKey = "sep"
	MonthOct MonthKey = "oct"
	MonthNov MonthKey = "nov"
	MonthDec MonthKey = "dec"
)

// MonthKeys lists all month keys in calendar order. Index i corresponds to
// the selection state's month index.
var MonthKeys = []MonthKey{
	MonthJan, MonthFeb, MonthMar, MonthApr, MonthMay, MonthJun,
	MonthJul, MonthAug, MonthSep, MonthOct, MonthNov, MonthDec,
}

// MonthByIndex returns the key for a month index in [0,11].
func MonthByIndex(i int) (MonthKey, error) {
	if i < 0 || i >= len(MonthKeys) {
		return "", fmt.Errorf("month index %d out of range [0,11]", i)
	}
	return MonthKeys[i], nil
}

// ParseMonthKey validates a month key string.
func ParseMonthKey(s string) (MonthKey, error) {
	for _, k := range MonthKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown month key %q", s)
}

// Index returns the calendar position of the key in [0,11], or -1 for an
// invalid key.
func (k MonthKey) Index() int {
	for i, m := range MonthKeys {
		if m == k {
			return i
		}
	}
	return -1
}
