// Command seed populates a running API instance with demo data through the
// HTTP interface, exercising the same validation the frontend would hit.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	apiURL    string
	authToken string
)

func post(path string, payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s failed with status %d: %v", path, resp.StatusCode, result["message"])
	}
	return result, nil
}

func login(email, password string) error {
	result, err := post("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	token, ok := result["token"].(string)
	if !ok {
		return fmt.Errorf("no token in login response")
	}
	authToken = token
	return nil
}

func idOf(result map[string]interface{}) string {
	if id, ok := result["id"].(string); ok {
		return id
	}
	return ""
}

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.StringVar(&apiURL, "url", "http://localhost:5000", "API base URL")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: seed -email EMAIL -password PASSWORD [-url http://localhost:5000]")
	}
	if err := login(*email, *password); err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Info("Logged in")

	supplier, err := post("/api/suppliers", map[string]interface{}{
		"shopName":      "AutoParts Central",
		"contactPerson": "Mehmet Demir",
		"phone":         "+90 555 123 4567",
		"address":       "Sanayi Sitesi No 14",
	})
	if err != nil {
		log.Fatalf("Failed to create supplier: %v", err)
	}
	log.WithField("supplier_id", idOf(supplier)).Info("Created supplier")

	purchases := []map[string]interface{}{
		{"supplier": idOf(supplier), "partName": "Oil Filter", "quantity": 20, "price": 8.5},
		{"supplier": idOf(supplier), "partName": "Engine Oil 5W-30", "quantity": 40, "price": 12.0},
		{"supplier": idOf(supplier), "partName": "Brake Pads", "quantity": 10, "price": 35.0},
	}
	for _, p := range purchases {
		if _, err := post("/api/purchases", p); err != nil {
			log.Fatalf("Failed to create purchase: %v", err)
		}
		log.WithField("part", p["partName"]).Info("Created purchase")
	}

	vehicle, err := post("/api/customerVehicles", map[string]interface{}{
		"customerName":  "Ali Yilmaz",
		"customerPhone": "+90 555 987 6543",
		"brand":         "Toyota",
		"model":         "Corolla",
		"year":          2019,
		"plate":         "34 abc 123",
	})
	if err != nil {
		log.Fatalf("Failed to create vehicle: %v", err)
	}
	vehicleID := idOf(vehicle)
	log.WithField("vehicle_id", vehicleID).Info("Created vehicle")

	repairs := []map[string]interface{}{
		{
			"customerVehicle": vehicleID,
			"description":     "Oil and filter change",
			"currentKm":       82000,
			"isOilChange":     true,
			"laborCost":       25.0,
			"parts": []map[string]interface{}{
				{"partName": "Oil Filter", "quantity": 1, "price": 15.0},
				{"partName": "Engine Oil 5W-30", "quantity": 4, "price": 20.0},
			},
		},
		{
			"customerVehicle": vehicleID,
			"description":     "Front brake pad replacement",
			"currentKm":       84500,
			"currentIssues":   "Squealing on braking",
			"laborCost":       60.0,
			"parts": []map[string]interface{}{
				{"partName": "Brake Pads", "quantity": 1, "price": 55.0},
			},
		},
	}
	for _, r := range repairs {
		if _, err := post("/api/repairs", r); err != nil {
			log.Fatalf("Failed to create repair: %v", err)
		}
		log.WithField("description", r["description"]).Info("Created repair")
	}

	expenses := []map[string]interface{}{
		{"name": "Workshop lunch", "category": "food", "quantity": 4, "price": 9.0},
		{"name": "Degreaser", "category": "materials", "quantity": 2, "price": 14.5},
	}
	for _, e := range expenses {
		if _, err := post("/api/expenses", e); err != nil {
			log.Fatalf("Failed to create expense: %v", err)
		}
		log.WithField("name", e["name"]).Info("Created expense")
	}

	log.Info("Seed complete")
}
