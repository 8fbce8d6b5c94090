package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/carhive/carhive-backend/config"
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a car catalog from an XLSX export. Expected columns:
//
//	0 company_name  1 model  2 year  3 price  4 color
//	5 fuel_type     6 mileage  7 description  8 image_url
//
// Companies are matched by name; unknown ones are created without an owning
// login, the way manufacturer catalogs arrive before the seller signs up.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	carRepo := repository.NewCarRepository(db.GetDB())
	companyRepo := repository.NewCompanyRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	cars, err := readCarsFromXLSX(filePath, companyRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total cars to import: %d\n", len(cars))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := carRepo.BulkCreate(cars, batchSize); err != nil {
		log.Fatal("Failed to bulk create cars:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total cars imported: %d\n", len(cars))
}

func readCarsFromXLSX(filePath string, companyRepo repository.CompanyRepository) ([]model.Car, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	// Existing companies, matched case-insensitively by name.
	existing, err := companyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	companyIDs := make(map[string]uint, len(existing))
	for _, company := range existing {
		companyIDs[strings.ToLower(company.Name)] = company.ID
	}

	var cars []model.Car
	seenCars := make(map[string]bool) // dedupe on company|model|year|color
	skippedCount := 0
	invalidFuelCount := 0
	createdCompanies := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 6 {
			skippedCount++
			continue
		}

		companyName := strings.TrimSpace(row[0])
		carModel := strings.TrimSpace(row[1])
		yearStr := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		color := strings.TrimSpace(row[4])
		fuelType := model.FuelType(strings.ToLower(strings.TrimSpace(row[5])))

		mileage := 0
		description := ""
		imageURL := ""
		if len(row) > 6 {
			mileage, _ = strconv.Atoi(strings.TrimSpace(row[6]))
		}
		if len(row) > 7 {
			description = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			imageURL = strings.TrimSpace(row[8])
		}

		if companyName == "" || carModel == "" || color == "" {
			skippedCount++
			continue
		}

		year, errYear := strconv.Atoi(yearStr)
		price, errPrice := strconv.ParseFloat(priceStr, 64)
		if errYear != nil || errPrice != nil || year < 1900 || price <= 0 {
			skippedCount++
			continue
		}

		if !model.ValidFuelType(fuelType) {
			invalidFuelCount++
			skippedCount++
			continue
		}

		key := fmt.Sprintf("%s|%s|%d|%s", strings.ToLower(companyName), strings.ToLower(carModel), year, strings.ToLower(color))
		if seenCars[key] {
			skippedCount++
			continue
		}
		seenCars[key] = true

		companyID, ok := companyIDs[strings.ToLower(companyName)]
		if !ok {
			company := &model.Company{
				Name:    companyName,
				Country: "Unknown",
				UserID:  nil, // catalog-only seller, claimable later
			}
			if err := companyRepo.Create(company); err != nil {
				return nil, fmt.Errorf("failed to create company %q: %w", companyName, err)
			}
			companyID = company.ID
			companyIDs[strings.ToLower(companyName)] = companyID
			createdCompanies++
		}

		cars = append(cars, model.Car{
			CompanyID:   companyID,
			Model:       carModel,
			Year:        year,
			Price:       price,
			Color:       color,
			FuelType:    fuelType,
			Mileage:     mileage,
			Description: description,
			ImageURL:    imageURL,
			Status:      model.CarStatusAvailable,
		})

		if len(cars)%500 == 0 {
			fmt.Printf("Processed %d cars...\n", len(cars))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid cars: %d\n", len(cars))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with invalid fuel type: %d\n", invalidFuelCount)
	fmt.Printf("  Companies created: %d\n", createdCompanies)

	return cars, nil
}
