package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gcctracker-backend/services/tracker/db"
)

// creates the local state the server expects: a dev/.state directory
// and an initialized sqlite database matching config.json5.
func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	sqlite, err := sql.Open("sqlite", "dev/.state/tracker.db")
	if err != nil {
		return err
	}
	defer sqlite.Close()
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		return err
	}

	slog.Info("initialized database", "path", "dev/.state/tracker.db")
	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created sucessfully!")
}
