package controller

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/view"
)

// InputFromFields builds the request body from the form as typed. There
// is no validation: an age that is not a number is sent as null.
func InputFromFields(f view.FormFields) types.StudentInput {
	return types.StudentInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Age:       ParseAge(f.Age),
		Course:    f.Course,
	}
}

// formTarget resolves the hidden id field against the student being
// edited. An empty field means create (nil target) and is only valid in
// create mode; otherwise it must name the edited student.
func formTarget(hidden string, editing *int64) (*int64, bool) {
	if hidden == "" {
		return nil, editing == nil
	}

	id, err := strconv.ParseInt(hidden, 10, 64)
	if err != nil || editing == nil || *editing != id {
		return nil, false
	}
	return &id, true
}

// ParseAge reads a leading integer the way a lenient number parser does:
// leading whitespace and a sign are allowed and parsing stops at the
// first non-digit, so "21 years" is 21 and "3.9" is 3. Input without a
// leading digit, or out of int range, is not a number and yields nil.
func ParseAge(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}
