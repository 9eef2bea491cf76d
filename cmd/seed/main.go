package main

import (
	"log"
	"os"

	"healthlink-be/internal/model"
	"healthlink-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var weekdayAvailability = datatypes.JSON([]byte(`{
	"monday":    ["09:00", "09:30", "10:00", "10:30", "11:00"],
	"tuesday":   ["09:00", "09:30", "10:00", "10:30", "11:00"],
	"wednesday": ["14:00", "14:30", "15:00", "15:30"],
	"thursday":  ["09:00", "09:30", "10:00", "10:30", "11:00"],
	"friday":    ["14:00", "14:30", "15:00", "15:30"]
}`))

type doctorSeed struct {
	Name            string
	Email           string
	Specialization  string
	ConsultationFee float64
	ExperienceYears int
	Location        string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding doctors...")
	seedDoctors(db)

	color.Cyan("Seeding medicines...")
	seedMedicines(db)

	color.Green("✅ Seeding completed")
}

func seedDoctors(db *gorm.DB) {
	doctors := []doctorSeed{
		{"Dr. Asha Patel", "asha.patel@healthlink.dev", "Cardiology", 120, 12, "Mumbai"},
		{"Dr. Rohan Mehta", "rohan.mehta@healthlink.dev", "Dermatology", 80, 7, "Delhi"},
		{"Dr. Lina Gomez", "lina.gomez@healthlink.dev", "Pediatrics", 90, 9, "Bangalore"},
		{"Dr. Samuel Okoye", "samuel.okoye@healthlink.dev", "Neurology", 150, 15, "Mumbai"},
		{"Dr. Mei Chen", "mei.chen@healthlink.dev", "General Medicine", 60, 5, "Pune"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: bcrypt failed: %v", err)
		os.Exit(1)
	}

	for _, d := range doctors {
		user := model.User{
			Name:         d.Name,
			Email:        d.Email,
			Role:         "doctor",
			PasswordHash: string(hash),
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user)
		if res.Error != nil {
			color.Red("Error: failed to seed doctor %s: %v", d.Email, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			color.Yellow("Skip: doctor %s already exists", d.Email)
			continue
		}

		profile := model.DoctorProfile{
			UserId:          user.Id,
			Specialization:  d.Specialization,
			ConsultationFee: d.ConsultationFee,
			ExperienceYears: d.ExperienceYears,
			Location:        d.Location,
			Availability:    weekdayAvailability,
		}
		if err := db.Create(&profile).Error; err != nil {
			color.Red("Error: failed to seed profile for %s: %v", d.Email, err)
			continue
		}
		color.Green("Seeded doctor %s (%s)", d.Name, d.Specialization)
	}
}

func seedMedicines(db *gorm.DB) {
	medicines := []model.Medicine{
		{Name: "Paracetamol 500mg", Price: 2.50, ShortDesc: "Pain reliever and fever reducer", Image: "https://images.healthlink.dev/medicines/paracetamol.jpg", Category: "Pain Relief"},
		{Name: "Ibuprofen 400mg", Price: 3.20, ShortDesc: "Anti-inflammatory pain relief", Image: "https://images.healthlink.dev/medicines/ibuprofen.jpg", Category: "Pain Relief"},
		{Name: "Cetirizine 10mg", Price: 1.80, ShortDesc: "Antihistamine for allergy relief", Image: "https://images.healthlink.dev/medicines/cetirizine.jpg", Category: "Allergy"},
		{Name: "Amoxicillin 250mg", Price: 5.40, ShortDesc: "Broad-spectrum antibiotic", Image: "https://images.healthlink.dev/medicines/amoxicillin.jpg", Category: "Antibiotics"},
		{Name: "Omeprazole 20mg", Price: 4.10, ShortDesc: "Reduces stomach acid production", Image: "https://images.healthlink.dev/medicines/omeprazole.jpg", Category: "Digestive"},
		{Name: "Vitamin D3 1000IU", Price: 6.00, ShortDesc: "Daily vitamin D supplement", Image: "https://images.healthlink.dev/medicines/vitamin-d3.jpg", Category: "Vitamins"},
		{Name: "Cough Syrup 100ml", Price: 3.75, ShortDesc: "Relief from dry and wet cough", Image: "https://images.healthlink.dev/medicines/cough-syrup.jpg", Category: "Cold & Flu"},
		{Name: "ORS Sachets", Price: 0.90, ShortDesc: "Oral rehydration salts", Image: "https://images.healthlink.dev/medicines/ors.jpg", Category: "Digestive"},
	}

	for _, m := range medicines {
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&m)
		if res.Error != nil {
			color.Red("Error: failed to seed medicine %s: %v", m.Name, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			color.Yellow("Skip: medicine %s already exists", m.Name)
			continue
		}
		color.Green("Seeded medicine %s", m.Name)
	}
}
