package models

// Records resolved through the entity lookup gateway. These collections
// are owned by the surrounding ERP modules; this service only reads the
// fields it needs for referential checks and notification payloads.

// Company represents a client company.
type Company struct {
	ID     int64  `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Status string `bson:"status" json:"status"`
}

// Project represents an optional project a task is billed against.
type Project struct {
	ID        int64  `bson:"_id" json:"id"`
	CompanyID int64  `bson:"company_id" json:"company_id"`
	Name      string `bson:"name" json:"name"`
}

// Employee represents a worker eligible to ride on a fleet task.
type Employee struct {
	ID           int64  `bson:"_id" json:"id"`
	CompanyID    int64  `bson:"company_id" json:"company_id"`
	EmployeeName string `bson:"employee_name" json:"employee_name"`
	EmployeeCode string `bson:"employee_code" json:"employee_code"`
	Department   string `bson:"department" json:"department"`
	Status       string `bson:"status" json:"status"`
}

// Vehicle represents a company vehicle assignable to a task.
type Vehicle struct {
	ID        int64  `bson:"_id" json:"id"`
	CompanyID int64  `bson:"company_id" json:"company_id"`
	PlateNo   string `bson:"plate_no" json:"plate_no"`
	Model     string `bson:"model" json:"model"`
	Capacity  int    `bson:"capacity" json:"capacity"`
	Status    string `bson:"status" json:"status"`
}

// Driver represents a company driver assignable to a task.
type Driver struct {
	ID        int64  `bson:"_id" json:"id"`
	CompanyID int64  `bson:"company_id" json:"company_id"`
	Name      string `bson:"name" json:"name"`
	LicenseNo string `bson:"license_no" json:"license_no"`
	Status    string `bson:"status" json:"status"`
}
