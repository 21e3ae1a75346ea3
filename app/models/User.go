package models

type User struct {
	Id       string `pg:",pk"`
	Email    string
	Password string
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
