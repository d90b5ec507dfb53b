package application

type LoginRequest struct {
	Username string
	Password string
}

type RegisterRequest struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// UpdateRequest carries optional changes; an empty string means "leave unchanged".
type UpdateRequest struct {
	Username    string
	FirstName   string
	LastName    string
	OldPassword string
	NewPassword string
}

func (r UpdateRequest) empty() bool {
	return r.FirstName == "" && r.LastName == "" && r.Username == "" && r.NewPassword == ""
}
