package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/db"
)

// Imports places and their branches from an XLSX export. Expected columns:
// place name, description, category name, branch name, address, city,
// country, longitude, latitude, phone.
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

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed baseline data:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	imports, err := readPlacesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total places to import: %d\n", len(imports))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	placeRepo := repository.NewPlaceRepository(db.GetDB())
	branchRepo := repository.NewBranchRepository(db.GetDB())

	imported := 0
	failed := 0
	for i := range imports {
		entry := &imports[i]
		if err := placeRepo.Create(&entry.place); err != nil {
			failed++
			continue
		}
		entry.branch.PlaceID = entry.place.ID
		if err := branchRepo.Create(&entry.branch); err != nil {
			failed++
			continue
		}
		imported++
		if imported%100 == 0 {
			fmt.Printf("Imported %d places...\n", imported)
		}
	}

	fmt.Println("Import completed.")
	fmt.Printf("  Imported: %d\n", imported)
	fmt.Printf("  Failed:   %d\n", failed)
}

type placeImport struct {
	place  model.Place
	branch model.Branch
}

func readPlacesFromXLSX(filePath string) ([]placeImport, error) {
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

	categoryIDs, err := loadCategoryIDs()
	if err != nil {
		return nil, err
	}

	var imports []placeImport
	seen := make(map[string]bool)
	skipped := 0
	invalidCoords := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 10 {
			skipped++
			continue
		}

		placeName := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		categoryName := strings.TrimSpace(row[2])
		branchName := strings.TrimSpace(row[3])
		address := strings.TrimSpace(row[4])
		city := strings.TrimSpace(row[5])
		country := strings.TrimSpace(row[6])
		longitudeStr := strings.TrimSpace(row[7])
		latitudeStr := strings.TrimSpace(row[8])
		phone := strings.TrimSpace(row[9])

		if len([]rune(placeName)) < 2 || city == "" {
			skipped++
			continue
		}

		key := fmt.Sprintf("%s|%s|%s", placeName, city, address)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		var latitude, longitude *float64
		if longitudeStr != "" || latitudeStr != "" {
			lng, errLng := strconv.ParseFloat(longitudeStr, 64)
			lat, errLat := strconv.ParseFloat(latitudeStr, 64)
			if errLng != nil || errLat != nil {
				invalidCoords++
				skipped++
				continue
			}
			longitude = &lng
			latitude = &lat
		}

		place := model.Place{
			Name:     placeName,
			IsActive: true,
		}
		if description != "" {
			place.Description = &description
		}
		if id, ok := categoryIDs[strings.ToLower(categoryName)]; ok {
			place.CategoryID = &id
		}

		if branchName == "" {
			branchName = placeName
		}
		branch := model.Branch{
			Name:         branchName,
			City:         &city,
			Latitude:     latitude,
			Longitude:    longitude,
			IsMainBranch: true,
			IsActive:     true,
		}
		if address != "" {
			branch.AddressLine1 = &address
		}
		if country != "" {
			branch.Country = &country
		}
		if phone != "" {
			branch.Phone = &phone
		}

		imports = append(imports, placeImport{place: place, branch: branch})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid places: %d\n", len(imports))
	fmt.Printf("  Skipped rows: %d\n", skipped)
	fmt.Printf("  Rows with invalid coordinates: %d\n", invalidCoords)

	return imports, nil
}

// loadCategoryIDs maps lowercase category names to ids so rows can
// reference the seeded categories by name.
func loadCategoryIDs() (map[string]uint, error) {
	var categories []model.Category
	if err := db.GetDB().Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	ids := make(map[string]uint, len(categories))
	for _, category := range categories {
		ids[strings.ToLower(category.Name)] = category.ID
	}
	return ids, nil
}
