// Package types holds the data structures shared by the students API,
// the REST client and the web front end. Keeping them in one place
// prevents import cycles between those layers.
package types

// Student is a student record as the API returns it.
//
// Optional fields are pointers so that a missing value encodes as JSON
// null and decodes back to nil, instead of collapsing into "" or 0.
type Student struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Age       *int    `json:"age"`
	Course    *string `json:"course"`
}

// StudentInput is the body of a create (POST) or update (PUT) request.
//
// The web form always sends email and course as strings (possibly
// empty). Age is nil when the form value did not parse as a number,
// which encodes as null.
type StudentInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Age       *int   `json:"age"       validate:"omitempty,min=0"`
	Course    string `json:"course"`
}

// Student converts the input into a record with the given id. Empty
// optional strings become nil.
func (in StudentInput) Student(id int64) Student {
	return Student{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     nonEmpty(in.Email),
		Age:       in.Age,
		Course:    nonEmpty(in.Course),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
