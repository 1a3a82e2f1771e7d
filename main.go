/* main.go
 * The "main" method for running the classroom random-tools service. For details see `readme.md`
 * Usage: go run . -scopeId="<scope id>" [-addr=":8080"]
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	api "classtools/api/api"
	"classtools/api/shared"
	"classtools/web"
)

func main() {
	err := godotenv.Load()

	// Flags
	dbPtr := flag.String("db", "classtools", "Mongo database name")
	addrPtr := flag.String("addr", ":8080", "Address the HTTP server listens on")
	scopeTypePtr := flag.String("scopeType", "class", "Scope type the fairness history is keyed on (class, group, team)")
	scopeIDPtr := flag.String("scopeId", "", "Scope id the fairness history is keyed on")
	scopeNamePtr := flag.String("scopeName", "", "Human readable scope name")
	itemsPtr := flag.String("items", "", "Demo item list, space separated with double quotes for multi-word items")
	demoPtr := flag.String("demo", "false", "Run a sample of the api functions before serving: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Println("no .env file loaded, relying on process environment")
	}

	if *scopeIDPtr == "" {
		log.Fatal("scopeId is required")
	}

	scope := shared.Scope{
		Type: *scopeTypePtr,
		ID:   *scopeIDPtr,
		Name: *scopeNamePtr,
	}

	a, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_URI"), scope)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = a.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	demo, err := convertStrToBool(*demoPtr)
	if err != nil {
		fmt.Println("Invalid \"demo\" flag. Should be true or false")
		return
	}
	if demo {
		ApiDemo(a, *itemsPtr)
	}

	if err := web.Start(web.Config{Addr: *addrPtr, API: a}); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// ApiDemo provides a sample of how the api functions work and how they can be incorporated into a front end
func ApiDemo(a *api.API, rawItems string) {
	roster := []shared.Participant{
		{ID: "s1", DisplayName: "Ada Clarke", Gender: "female"},
		{ID: "s2", DisplayName: "Ben Okafor", Gender: "male"},
		{ID: "s3", DisplayName: "Cam Reyes"},
		{ID: "s4", DisplayName: "Dina Sato", Gender: "female"},
	}

	items, err := parseItemList(rawItems)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(items) == 0 {
		items = []string{"Broom", "Eraser", "Door Holder", "Line Leader"}
	}

	fmt.Println("Running rotating assigner")
	rotated, err := a.RunRotating(roster, items, "front-to-back", false, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range rotated {
		fmt.Printf("  %s -> %s\n", row.StudentName, row.Item)
	}

	fmt.Println("Running constrained shuffle")
	shuffled, err := a.RunShuffle(roster)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range shuffled {
		fmt.Printf("  %d. %s\n", row.Position, row.StudentName)
	}

	fmt.Println("Picking a student")
	student, position, err := a.PickStudent(roster)
	if err != nil {
		fmt.Println(err)
		return
	}
	if student == nil {
		fmt.Println("  round exhausted")
		return
	}
	fmt.Printf("  pick %d: %s\n", position, student.DisplayName)
}
