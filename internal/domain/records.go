package domain

import "time"

// Resource records as returned by the clinic API. Each page re-fetches its
// collection on every render; nothing here is cached across requests except
// the dashboard summary (see the UI handler).

// Account is a dashboard user account (API resource /api/users/).
type Account struct {
	ID          int64   `json:"id"`
	LoginName   string  `json:"loginName"`
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"isActive"`
	Groups      []Group `json:"groups"`
}

// GroupDetail is a permission group as managed on the groups page
// (/api/groups/). The compact Group embedded in accounts and principals
// carries only the name.
type GroupDetail struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Patient is a registered patient (/api/patients/).
type Patient struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Gender    string `json:"gender"`
	BirthYear int    `json:"birthYear"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// WaitingEntry is one row of today's waiting list (/api/waiting-list/).
type WaitingEntry struct {
	ID           int64     `json:"id"`
	Number       int       `json:"number"`
	Patient      Patient   `json:"patient"`
	RegisteredAt time.Time `json:"registeredAt"`
	Status       string    `json:"status"` // waiting | examining | done
}

// DiseaseType is a diagnosis category (/api/disease-types/).
type DiseaseType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Unit is a medicine unit of measure (/api/units/).
type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Usage is a usage instruction for prescriptions (/api/usages/).
type Usage struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Medicine is an inventory item (/api/thuoc/).
type Medicine struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Unit  Unit    `json:"unit"`
	Usage Usage   `json:"usage"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// PrescriptionLine is one prescribed medicine on an examination record.
type PrescriptionLine struct {
	ID       int64    `json:"id"`
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
	Dosage   string   `json:"dosage"`
}

// ExamRecord is an examination record (/api/medical-records/).
type ExamRecord struct {
	ID            int64              `json:"id"`
	Patient       Patient            `json:"patient"`
	ExamDate      time.Time          `json:"examDate"`
	Symptoms      string             `json:"symptoms"`
	Disease       DiseaseType        `json:"disease"`
	Doctor        string             `json:"doctor"`
	Prescriptions []PrescriptionLine `json:"prescriptions"`
}

// Invoice is a billing document (/api/invoices/).
type Invoice struct {
	ID          int64     `json:"id"`
	Record      int64     `json:"record"`
	Patient     Patient   `json:"patient"`
	ExamFee     float64   `json:"examFee"`
	MedicineFee float64   `json:"medicineFee"`
	Total       float64   `json:"total"`
	Paid        bool      `json:"paid"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RevenueRow is one day of the monthly revenue report.
type RevenueRow struct {
	Date         string  `json:"date"`
	PatientCount int     `json:"patientCount"`
	Revenue      float64 `json:"revenue"`
	Percentage   float64 `json:"percentage"`
}

// MedicationUsageRow is one medicine's aggregate in the monthly usage report.
type MedicationUsageRow struct {
	MedicineID        int64  `json:"medicineId"`
	MedicineName      string `json:"medicineName"`
	Unit              string `json:"unit"`
	TotalQuantityUsed int    `json:"totalQuantityUsed"`
	PrescriptionCount int    `json:"prescriptionCount"`
}

// DashboardSummary is the aggregate snapshot behind the home page.
type DashboardSummary struct {
	PatientsToday     int     `json:"patientsToday"`
	WaitingCount      int     `json:"waitingCount"`
	RecordsThisMonth  int     `json:"recordsThisMonth"`
	RevenueThisMonth  float64 `json:"revenueThisMonth"`
	MedicinesLowStock int     `json:"medicinesLowStock"`
}
