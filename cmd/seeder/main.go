package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/touchlineapp/touchline/internal/database"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "touchline.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	store := team.New(db)

	roster := []team.PlayerInfo{
		{FirstName: "Ada", LastName: "Nwosu", Number: "7"},
		{FirstName: "Liv", LastName: "Berg", Number: "10"},
		{FirstName: "Maya", LastName: "Okafor", Number: "4"},
		{FirstName: "June", LastName: "Park", Number: "9"},
		{FirstName: "Rosa", LastName: "Silva", Number: "1"},
		{FirstName: "Tess", LastName: "Vermeer", Number: "11"},
		{FirstName: "Ingrid", LastName: "Dahl", Number: "5"},
		{FirstName: "Noor", LastName: "Haddad", Number: "8"},
	}

	ids := make([]string, 0, len(roster))
	for _, p := range roster {
		p.ID = uuid.NewString()
		if err := store.AddPlayer(p); err != nil {
			log.Fatalf("Failed to insert player %s %s: %s", p.FirstName, p.LastName, err)
		}
		ids = append(ids, p.ID)
	}
	log.Info("Seeded roster", "players", len(roster))

	lineup := make([]game.LineupEntry, len(ids))
	for i, id := range ids {
		lineup[i] = game.LineupEntry{PlayerID: id, Location: game.LocationBench}
	}

	g := &game.Game{
		ID:          uuid.NewString(),
		Opponent:    "Rovers",
		Date:        "2026-09-05",
		Time:        "14:00",
		Venue:       game.VenueHome,
		TimerStatus: game.TimerStopped,
		Lineup:      lineup,
	}
	if err := store.CreateGame(g); err != nil {
		log.Fatalf("Failed to insert game: %s", err)
	}

	log.Info("Seeded game", "gameID", g.ID, "opponent", g.Opponent)
}
