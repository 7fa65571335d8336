package httpapi

import "net/mail"

// Boundary validation runs before the auth service is invoked and produces a
// 400 with field detail, unlike the domain errors which all collapse into a
// detail-free 401. First and last name are deliberately unconstrained.

const minPasswordLength = 6

func validateRegister(req *registerRequest) map[string]string {
	fields := map[string]string{}

	if req.Email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "email must be a valid address"
	}

	if req.Username == "" {
		fields["username"] = "username is required"
	}

	if len(req.Password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}

	return fields
}

func validateLogin(req *loginRequest) map[string]string {
	fields := map[string]string{}

	if req.Username == "" {
		fields["username"] = "username is required"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}

	return fields
}
