package validator

import "unicode/utf8"

func ClubName(name string) bool {
	return utf8.RuneCountInString(name) >= 3 && utf8.RuneCountInString(name) <= 30
}

func ItemName(name string) bool {
	return utf8.RuneCountInString(name) >= 1 && utf8.RuneCountInString(name) <= 100
}

func Description(description string) bool {
	return utf8.RuneCountInString(description) <= 400
}
