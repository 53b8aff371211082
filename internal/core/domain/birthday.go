package domain

import "time"

// AgeAt returns the number of whole years elapsed between birthday and the
// reference date on: the calendar-year difference, reduced by one when the
// anniversary has not yet occurred in on's year.
func AgeAt(birthday, on time.Time) int {
	years := on.Year() - birthday.Year()
	if on.Month() < birthday.Month() ||
		(on.Month() == birthday.Month() && on.Day() < birthday.Day()) {
		years--
	}
	return years
}

// HasBirthdayWithin reports whether the birthday anniversary falls within the
// next horizonDays days after today.
//
// It uses the age-shift technique: shifting the birthday back by horizonDays
// bumps the whole-year age exactly when the anniversary sits inside the
// window. The comparison is strictly greater-than, so horizonDays == 0 is
// always false, as is an anniversary falling on today itself.
func HasBirthdayWithin(birthday time.Time, horizonDays int, today time.Time) bool {
	shifted := birthday.AddDate(0, 0, -horizonDays)
	return AgeAt(shifted, today) > AgeAt(birthday, today)
}
