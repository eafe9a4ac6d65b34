// Command seed writes a small set of sample scraped-data files (RedBus fare
// JSON, an hourly weather CSV and a destination-image CSV) into the configured
// data directories, so a pipeline run works on a fresh checkout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/observability"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/config"
)

type seedRoute struct {
	origin      string
	destination string
	companies   []seedCompany
	baseTemp    float64
	imageURL    string
}

type seedCompany struct {
	name   string
	price  float64
	seats  int
	rating float64
}

var routes = []seedRoute{
	{
		origin:      "Lima",
		destination: "Cusco",
		baseTemp:    10.5,
		imageURL:    "https://images.example.com/cusco.jpg",
		companies: []seedCompany{
			{"Civa", 85.5, 24, 4.2},
			{"Cruz del Sur", 120.0, 31, 4.6},
			{"Oltursa", 98.0, 12, 4.0},
		},
	},
	{
		origin:      "Lima",
		destination: "Piura",
		baseTemp:    25.0,
		imageURL:    "https://images.example.com/piura.jpg",
		companies: []seedCompany{
			{"Tepsa", 70.0, 18, 3.8},
			{"Oltursa", 90.0, 35, 4.1},
		},
	},
	{
		origin:      "Lima",
		destination: "Arequipa",
		baseTemp:    17.0,
		imageURL:    "https://images.example.com/arequipa.jpg",
		companies: []seedCompany{
			{"Cruz del Sur", 110.0, 28, 4.5},
			{"Civa", 75.0, 8, 3.9},
		},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("chaskiway-seed", cfg.Env)

	start := time.Now().AddDate(0, 0, 1)
	days := 7

	if err := writeFareFiles(cfg.Data.FaresDir, start, days); err != nil {
		log.Fatal().Err(err).Msg("failed to write fare files")
	}
	if err := writeWeatherCSV(cfg.Data.WeatherCSV, start, days); err != nil {
		log.Fatal().Err(err).Msg("failed to write weather csv")
	}
	if err := writeImagesCSV(cfg.Data.ImagesCSV); err != nil {
		log.Fatal().Err(err).Msg("failed to write images csv")
	}

	log.Info().
		Str("fares_dir", cfg.Data.FaresDir).
		Str("weather_csv", cfg.Data.WeatherCSV).
		Str("images_csv", cfg.Data.ImagesCSV).
		Msg("sample data written")
}

func writeFareFiles(dir string, start time.Time, days int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, route := range routes {
		inventories := make([]map[string]interface{}, 0, len(route.companies)*days)
		for day := 0; day < days; day++ {
			travelDate := start.AddDate(0, 0, day)
			for i, company := range route.companies {
				// Vary prices a little across the week so date-shift
				// suggestions have something to find.
				price := company.price + float64((day+i)%3)*5
				fareList := []interface{}{price, price + 15.0}
				if day%4 == 3 {
					fareList = append(fareList, "consultar")
				}
				inventories = append(inventories, map[string]interface{}{
					"departureTime":  travelDate.Format("2006-01-02") + " 08:30:00",
					"travelsName":    company.name,
					"fareList":       fareList,
					"availableSeats": company.seats,
					"totalRatings":   company.rating,
				})
			}
		}

		payload := map[string]interface{}{
			"parentSrcCityName": route.origin,
			"parentDstCityName": route.destination,
			"inventories":       inventories,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}

		name := fmt.Sprintf("%s_%s.json", route.origin, route.destination)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeWeatherCSV(path string, start time.Time, days int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, "time,temperature_c,destination"); err != nil {
		return err
	}
	for _, route := range routes {
		for day := 0; day < days; day++ {
			date := start.AddDate(0, 0, day)
			for hour := 0; hour < 24; hour += 6 {
				temp := route.baseTemp + float64(hour%12)/2
				_, err := fmt.Fprintf(file, "%sT%02d:00,%.1f,%s\n",
					date.Format("2006-01-02"), hour, temp, route.destination)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeImagesCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, "city,image_url"); err != nil {
		return err
	}
	for _, route := range routes {
		if _, err := fmt.Fprintf(file, "%s,%s\n", route.destination, route.imageURL); err != nil {
			return err
		}
	}
	return nil
}
