package date

import "math"

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// DaysIn returns the length of month in year. Out of range months count
// as 31 days.
func DaysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Next returns the following calendar day. A day past the end of its month
// rolls to the 1st of the next month, and a month past December rolls to
// January of the next year.
func (f Fixed) Next() Fixed {
	next := f
	next.date.day++
	if next.date.day > DaysIn(next.date.month, next.year) {
		next.date.day = 1
		next.date.month++
	}
	if next.date.month > 12 {
		if next.year == math.MaxInt {
			panic("date: year overflow")
		}
		next.date.day = 1
		next.date.month = 1
		next.year++
	}
	return next
}

// NextMatch returns the only date in [today, today+1 year) with the same
// day and month as f. A 29/02 falling in a non leap year becomes 28/02.
func (f Fixed) NextMatch(today Fixed) Fixed {
	next := f.date.In(today.year)
	if next.Before(today) {
		next.year++
	}
	if next.date == NewRecurring(29, 2) && !IsLeap(next.year) {
		next.date = NewRecurring(28, 2)
	}
	return next
}

// NextMatch anchors r to today's year and resolves its next occurrence.
func (r Recurring) NextMatch(today Fixed) Fixed {
	return r.In(today.year).NextMatch(today)
}

// YearDiff returns target.Year() - f.Year(). Called with
// target = f.NextMatch(today) it yields an age or an anniversary count.
func (f Fixed) YearDiff(target Fixed) int {
	return target.year - f.year
}

// To returns the number of days from f to target. It is zero when target
// is not after f.
func (f Fixed) To(target Fixed) int {
	if !f.Before(target) {
		return 0
	}
	return target.dayNumber() - f.dayNumber()
}

// dayNumber counts days since 1970-01-01 in the proleptic Gregorian
// calendar (days_from_civil).
func (f Fixed) dayNumber() int {
	y, m, d := f.year, f.date.month, f.date.day
	if m <= 2 {
		y--
	}
	era := y
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}
