package v1handler

import (
	"usersvc/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DateLayout is the format of registration dates in responses.
const DateLayout = "02/01/2006, 15:04:05"

func encodeUser(e *jx.Encoder, u domain.User) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(int64(u.ID))
	e.FieldStart("username")
	e.Str(u.Username)
	e.FieldStart("email")
	e.Str(u.Email)
	e.FieldStart("registration_date")
	e.Str(u.RegistrationDate.UTC().Format(DateLayout))
	e.ObjEnd()
}

func encodeUsers(e *jx.Encoder, users []domain.User) {
	e.ArrStart()
	for _, u := range users {
		encodeUser(e, u)
	}
	e.ArrEnd()
}

func encodeMessage(e *jx.Encoder, msg string) {
	e.ObjStart()
	e.FieldStart("message")
	e.Str(msg)
	e.ObjEnd()
}

func encodeCount(e *jx.Encoder, count int64) {
	e.ObjStart()
	e.FieldStart("count")
	e.Int64(count)
	e.ObjEnd()
}

func encodeProportion(e *jx.Encoder, emailDomain string, proportion float64) {
	e.ObjStart()
	e.FieldStart("domain")
	e.Str(emailDomain)
	e.FieldStart("proportion")
	e.Float64(proportion)
	e.ObjEnd()
}

func encodeError(e *jx.Encoder, res *ErrorResponse) {
	e.ObjStart()
	e.FieldStart("error")
	e.Str(res.Message)
	if len(res.Details) > 0 {
		e.FieldStart("details")
		e.ArrStart()
		for _, d := range res.Details {
			e.ObjStart()
			e.FieldStart("field")
			e.Str(d.Field)
			e.FieldStart("message")
			e.Str(d.Message)
			e.FieldStart("type")
			e.Str(d.Type)
			e.ObjEnd()
		}
		e.ArrEnd()
	}
	e.ObjEnd()
}

// createUserRequest is the body of POST /api/users/.
type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,min=6,max=64,email"`
}

func (r *createUserRequest) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "username":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode field username")
			}
			r.Username = v
		case "email":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode field email")
			}
			r.Email = v
		default:
			return d.Skip()
		}

		return nil
	})
}

func (r createUserRequest) Candidate() domain.UserCandidate {
	return domain.UserCandidate{Username: r.Username, Email: r.Email}
}

// updateUserRequest is the body of PATCH /api/users/{id}/. Absent and null
// fields are left unchanged.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=32"`
	Email    *string `json:"email"    validate:"omitempty,min=6,max=64,email"`
}

func decodeOptionalStr(d *jx.Decoder) (*string, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	v, err := d.Str()
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &v, nil
}

func (r *updateUserRequest) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "username":
			r.Username, err = decodeOptionalStr(d)
			if err != nil {
				return errors.Wrap(err, "decode field username")
			}
		case "email":
			r.Email, err = decodeOptionalStr(d)
			if err != nil {
				return errors.Wrap(err, "decode field email")
			}
		default:
			return d.Skip()
		}

		return nil
	})
}

func (r updateUserRequest) Update() domain.UserUpdate {
	return domain.UserUpdate{Username: r.Username, Email: r.Email}
}
