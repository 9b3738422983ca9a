package models

// Student defines the borrower model based on the 'students' table
type Student struct {
	ID         int64  `json:"id" db:"id" example:"1"`                          // Unique identifier for the student record
	Name       string `json:"name" db:"name" example:"Ayse Kaya"`              // Full name
	RollNumber string `json:"rollNumber" db:"roll_number" example:"R102"`      // Unique roll number
	Department string `json:"department" db:"department" example:"CENG"`       // Department the student belongs to
	Semester   int    `json:"semester" db:"semester" example:"4"`              // Current semester
	Phone      string `json:"phone" db:"phone" example:"+905551234567"`        // Unique phone number
	Email      string `json:"email" db:"email" example:"ayse@example.edu.tr"`  // Unique email address
}
