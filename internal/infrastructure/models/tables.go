package models

func (Student) TableName() string {
	return "students"
}

func (Professor) TableName() string {
	return "professors"
}

func (Hod) TableName() string {
	return "hods"
}

// All lists the models migrated at startup, parents first.
func All() []interface{} {
	return []interface{}{
		&Department{},
		&User{},
		&Student{},
		&Professor{},
		&Hod{},
		&VerificationRequest{},
	}
}
