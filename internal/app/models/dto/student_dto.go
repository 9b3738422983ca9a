package dto

import "github.com/eren/shelfmate/internal/app/models"

// CreateStudentRequest represents a student registration request
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100" example:"Ayse Kaya"`
	RollNumber string `json:"rollNumber" binding:"required" example:"R102"`
	Department string `json:"department" binding:"required" example:"CENG"`
	Semester   int    `json:"semester" binding:"required,min=1" example:"4"`
	Phone      string `json:"phone" binding:"required" example:"+905551234567"`
	Email      string `json:"email" binding:"required,email" example:"ayse@example.edu.tr"`
}

// ToStudent converts the request into a model
func (r *CreateStudentRequest) ToStudent() *models.Student {
	return &models.Student{
		Name:       r.Name,
		RollNumber: r.RollNumber,
		Department: r.Department,
		Semester:   r.Semester,
		Phone:      r.Phone,
		Email:      r.Email,
	}
}

// StudentResponse represents student information returned to clients
type StudentResponse struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Ayse Kaya"`
	RollNumber string `json:"rollNumber" example:"R102"`
	Department string `json:"department" example:"CENG"`
	Semester   int    `json:"semester" example:"4"`
	Phone      string `json:"phone" example:"+905551234567"`
	Email      string `json:"email" example:"ayse@example.edu.tr"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	return StudentResponse{
		ID:         student.ID,
		Name:       student.Name,
		RollNumber: student.RollNumber,
		Department: student.Department,
		Semester:   student.Semester,
		Phone:      student.Phone,
		Email:      student.Email,
	}
}
